//go:build integration

package history

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestOpenPostgres_MigratesAndRoundTrips spins up a disposable Postgres
// container, runs the embedded migrations against it, and verifies a
// recorded entry round-trips through Recent.
func TestOpenPostgres_MigratesAndRoundTrips(t *testing.T) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("ignitectl_history"),
		tcpostgres.WithUsername("ignitectl"),
		tcpostgres.WithPassword("ignitectl"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	store, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("OpenPostgres: %v", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Record(Entry{Command: "cache get", Args: "mycache --key hello", Success: true}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].Command != "cache get" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}
