package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/scholarai/scholarai"
	"github.com/scholarai/scholarai/helper"
	"github.com/scholarai/scholarai/provider"
)

const embeddingDim = 384

func main() {
	// Start a test PostgreSQL container with pgvector
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	embedder, err := provider.NewLocalEmbedder(provider.DefaultEmbeddingModel)
	if err != nil {
		log.Fatalf("Failed to create embedder: %v", err)
	}
	defer embedder.Close()

	var generator provider.Generator
	if os.Getenv("OPENAI_API_KEY") != "" {
		client, err := provider.NewOpenAIClient(provider.OpenAIConfig{})
		if err != nil {
			log.Fatalf("Failed to create generator: %v", err)
		}
		generator = client
	}

	s, err := scholarai.NewWithPostgres(dbConfig, embedder, generator, embeddingDim)
	if err != nil {
		log.Fatalf("Failed to create scholarai: %v", err)
	}
	defer s.Close()

	// Ingest a small corpus
	dir, err := os.MkdirTemp("", "scholarai-pg-example")
	if err != nil {
		log.Fatalf("Failed to create corpus dir: %v", err)
	}
	defer os.RemoveAll(dir)

	corpus := map[string]string{
		"TCS_placement_paper_2023.txt": "Placement aptitude questions. A train travels 60 km in 45 minutes. Find its speed in km/h.",
		"dbms_notes.txt":               "Normalization removes redundancy. 1NF requires atomic values, 2NF removes partial dependencies, 3NF removes transitive dependencies.",
	}
	for name, content := range corpus {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			log.Fatalf("Failed to write corpus file: %v", err)
		}
	}

	fmt.Println("Ingesting corpus...")
	result, numChunks, err := s.IngestDirectory(context.Background(), dir)
	if err != nil {
		log.Fatalf("Failed to ingest directory: %v", err)
	}
	fmt.Printf("Ingested %d documents into %d chunks\n", len(result.Documents), numChunks)

	stats, err := s.Stats(context.Background())
	if err != nil {
		log.Fatalf("Failed to read stats: %v", err)
	}
	fmt.Printf("Store holds %d chunks, filters: %v\n", stats.TotalChunks, stats.AvailableFilters)

	// Filtered search: only dbms material
	results, err := s.Search(context.Background(), "explain normalization", 3, map[string]string{
		"subject": "dbms",
	})
	if err != nil {
		log.Fatalf("Failed to search: %v", err)
	}

	fmt.Printf("\nFound %d results for the dbms filter:\n", len(results))
	for i, result := range results {
		fmt.Printf("\n--- Result %d ---\n", i+1)
		fmt.Printf("Similarity: %.4f\n", result.Similarity)
		fmt.Printf("Content: %s\n", result.Chunk.Content)
	}

	if generator != nil {
		answer, err := s.Query(context.Background(), "What does 3NF remove?")
		if err != nil {
			log.Fatalf("Failed to query: %v", err)
		}
		fmt.Printf("\nAnswer (%s confidence): %s\n", answer.Confidence, answer.Text)
	}

	fmt.Println("\nPostgres example completed successfully!")
}
