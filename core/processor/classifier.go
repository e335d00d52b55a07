package processor

import (
	"regexp"
	"strings"

	"github.com/scholarai/scholarai/model"
)

var (
	yearPattern  = regexp.MustCompile(`\b20\d{2}\b`)
	digitPattern = regexp.MustCompile(`\d`)
	// filename tokens are separated by underscores, dashes and dots
	separatorPattern = regexp.MustCompile(`[_\-.]+`)
)

// Classifier infers document metadata from filename tokens and the leading
// document text using an explicit, ordered rule set. Matching is
// first-match-wins over the ordered lists, so results are deterministic for
// a fixed rule set.
type Classifier struct {
	rules           model.ClassifierRules
	subjectPatterns []*regexp.Regexp
}

// NewClassifier creates a classifier for the given rule set. Subject keywords
// are compiled to word-boundary patterns so short keywords like "os" never
// match inside larger words.
func NewClassifier(rules model.ClassifierRules) *Classifier {
	patterns := make([]*regexp.Regexp, len(rules.Subjects))
	for i, rule := range rules.Subjects {
		quoted := make([]string, len(rule.Keywords))
		for j, kw := range rule.Keywords {
			quoted[j] = regexp.QuoteMeta(strings.ToLower(kw))
		}
		patterns[i] = regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)
	}
	return &Classifier{rules: rules, subjectPatterns: patterns}
}

// Classify fills the document's type, company, subject, difficulty and year
// tags. The filename is scanned before the leading HeadLength characters of
// the extracted text.
func (c *Classifier) Classify(doc *model.Document) {
	name := normalizeTokens(doc.FileName)
	head := strings.ToLower(leading(doc.Content, c.rules.HeadLength))
	haystacks := []string{name, head}

	doc.Company = c.matchCompany(haystacks)
	doc.Subject = c.matchSubject(haystacks)
	doc.Type = c.matchType(haystacks, doc.Company != nil)
	doc.Difficulty = c.matchDifficulty(haystacks)

	if year := yearPattern.FindString(name); year != "" {
		doc.Year = &year
	}
}

// matchCompany returns the first company from the ordered list found as a
// case-insensitive substring, filename first.
func (c *Classifier) matchCompany(haystacks []string) *string {
	for _, haystack := range haystacks {
		for _, company := range c.rules.Companies {
			if strings.Contains(haystack, strings.ToLower(company)) {
				name := company
				return &name
			}
		}
	}
	return nil
}

// matchSubject returns the first subject whose keyword pattern matches,
// filename first.
func (c *Classifier) matchSubject(haystacks []string) *string {
	for _, haystack := range haystacks {
		for i, pattern := range c.subjectPatterns {
			if pattern.MatchString(haystack) {
				subject := c.rules.Subjects[i].Subject
				return &subject
			}
		}
	}
	return nil
}

// matchType applies the document type policy:
// placement keyword plus a known company wins, then a mock/test keyword next
// to a numeric marker, then a learning-material keyword.
func (c *Classifier) matchType(haystacks []string, hasCompany bool) model.DocumentType {
	if hasCompany && containsAny(haystacks, c.rules.PlacementKeywords) {
		return model.DocumentTypePlacementPaper
	}
	if containsAny(haystacks, c.rules.MockTestKeywords) && matchesAny(haystacks, digitPattern) {
		return model.DocumentTypeMockTest
	}
	if containsAny(haystacks, c.rules.LearningKeywords) {
		return model.DocumentTypeLearningMaterial
	}
	return model.DocumentTypeUnknown
}

// matchDifficulty checks the marker lists in fixed order: easy, hard, medium.
func (c *Classifier) matchDifficulty(haystacks []string) model.Difficulty {
	if containsAny(haystacks, c.rules.EasyMarkers) {
		return model.DifficultyEasy
	}
	if containsAny(haystacks, c.rules.HardMarkers) {
		return model.DifficultyHard
	}
	if containsAny(haystacks, c.rules.MediumMarkers) {
		return model.DifficultyMedium
	}
	return model.DifficultyUnknown
}

func containsAny(haystacks []string, keywords []string) bool {
	for _, haystack := range haystacks {
		for _, kw := range keywords {
			if strings.Contains(haystack, strings.ToLower(kw)) {
				return true
			}
		}
	}
	return false
}

func matchesAny(haystacks []string, pattern *regexp.Regexp) bool {
	for _, haystack := range haystacks {
		if pattern.MatchString(haystack) {
			return true
		}
	}
	return false
}

// normalizeTokens lowercases a filename and turns token separators into
// spaces so word-boundary matching works on its tokens.
func normalizeTokens(filename string) string {
	return separatorPattern.ReplaceAllString(strings.ToLower(filename), " ")
}

// leading returns the first n bytes of text, whole text when shorter.
func leading(text string, n int) string {
	if n <= 0 || len(text) <= n {
		return text
	}
	return text[:n]
}
