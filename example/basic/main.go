package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/scholarai/scholarai"
	"github.com/scholarai/scholarai/model"
	"github.com/scholarai/scholarai/provider"
)

const sampleMaterial = `Operating system processes and scheduling.

A process is a program in execution. The scheduler decides which process runs next.
Round robin scheduling gives each process a fixed time slice and cycles through the ready queue.

Deadlocks occur when processes wait on each other in a cycle. The four conditions are
mutual exclusion, hold and wait, no preemption and circular wait.`

func main() {
	// Prepare a small corpus on disk
	dir, err := os.MkdirTemp("", "scholarai-example")
	if err != nil {
		log.Fatalf("Failed to create corpus dir: %v", err)
	}
	defer os.RemoveAll(dir)

	err = os.WriteFile(filepath.Join(dir, "operating_systems_notes.txt"), []byte(sampleMaterial), 0644)
	if err != nil {
		log.Fatalf("Failed to write corpus file: %v", err)
	}

	// Local embeddings, no API key needed (downloads the model on first run)
	embedder, err := provider.NewLocalEmbedder(provider.DefaultEmbeddingModel)
	if err != nil {
		log.Fatalf("Failed to create embedder: %v", err)
	}
	defer embedder.Close()

	// Generation uses an OpenAI-compatible backend when a key is available
	var generator provider.Generator
	if os.Getenv("OPENAI_API_KEY") != "" {
		client, err := provider.NewOpenAIClient(provider.OpenAIConfig{})
		if err != nil {
			log.Fatalf("Failed to create generator: %v", err)
		}
		generator = client
	}

	s := scholarai.NewInMemory(embedder, generator)
	defer s.Close()

	// Ingest the corpus
	fmt.Println("Ingesting corpus...")
	result, numChunks, err := s.IngestDirectory(context.Background(), dir)
	if err != nil {
		log.Fatalf("Failed to ingest directory: %v", err)
	}
	fmt.Printf("Ingested %d documents into %d chunks (%d failures)\n",
		len(result.Documents), numChunks, len(result.Failures))

	// Show the discovered metadata filters
	filters, err := s.AvailableFilters(context.Background())
	if err != nil {
		log.Fatalf("Failed to list filters: %v", err)
	}
	fmt.Printf("Available filters: %v\n", filters)

	// Retrieve the most relevant chunks
	queryText := "What are the conditions for a deadlock?"
	fmt.Printf("\nQuerying: %s\n", queryText)

	results, err := s.RelevantDocuments(context.Background(), queryText, 3)
	if err != nil {
		log.Fatalf("Failed to retrieve: %v", err)
	}

	fmt.Printf("\nFound %d results:\n", len(results))
	for i, result := range results {
		fmt.Printf("\n--- Result %d ---\n", i+1)
		fmt.Printf("Similarity: %.4f\n", result.Similarity)
		fmt.Printf("File: %s\n", result.Chunk.Metadata.String(model.FieldFileName))
		fmt.Printf("Content: %s\n", result.Chunk.Content)
	}

	// Generate a full answer when a generation backend is configured
	if generator != nil {
		answer, err := s.Query(context.Background(), queryText)
		if err != nil {
			log.Fatalf("Failed to query: %v", err)
		}
		fmt.Printf("\nAnswer (%s confidence): %s\n", answer.Confidence, answer.Text)
		fmt.Printf("Cited %d sources\n", len(answer.Sources))
	} else {
		fmt.Println("\nSet OPENAI_API_KEY to also generate an answer.")
	}

	fmt.Println("\nBasic example completed successfully!")
}
