// Package dbtest starts a disposable postgres for integration tests.
package dbtest

import (
	"context"
	"fmt"

	"screentime/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Postgres is a migrated database running in a container.
type Postgres struct {
	Pool      *pgxpool.Pool
	container *postgres.PostgresContainer
}

func Start(ctx context.Context, dbName string) (*Postgres, error) {
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		pgContainer.Terminate(ctx)
		return nil, err
	}

	return &Postgres{Pool: pool, container: pgContainer}, nil
}

// Reset empties every table so a test can assert on the full user listing.
func (p *Postgres) Reset(ctx context.Context) error {
	_, err := p.Pool.Exec(ctx, `TRUNCATE screen_time_updates, sessions, users RESTART IDENTITY CASCADE`)
	return err
}

func (p *Postgres) Terminate(ctx context.Context) error {
	p.Pool.Close()
	return p.container.Terminate(ctx)
}
