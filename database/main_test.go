package database

import (
	"context"
	"log"
	"testing"

	"github.com/scholarai/scholarai/helper"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

var dbPort string

func TestMain(m *testing.M) {
	var teardown func(ctx context.Context, opts ...testcontainers.TerminateOption) error
	var err error
	teardown, dbPort, err = helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("error starting postgres container: %v", err)
	}

	m.Run()

	if teardown != nil && teardown(context.Background()) != nil {
		log.Fatalf("error tearing down postgres container: %v", err)
	}
}

func initTestHandler(t *testing.T, embeddingDim int) *ChunksDBHandler {
	helper.SetTestDatabaseConfigEnvs(t, dbPort)
	dbConfig, err := helper.NewDatabaseConfiguration()
	require.NoError(t, err, "failed to create database configuration")
	database := helper.NewTestDatabase(dbConfig)

	handler, err := NewChunksDBHandler(database, embeddingDim, true)
	require.NoError(t, err, "failed to create chunks handler")

	// Start from an empty table so tests don't see each other's rows
	err = handler.Reset(context.Background())
	require.NoError(t, err, "failed to reset chunks")

	return handler
}
