package checkers

import (
	"context"
	"time"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PostgresChecker pings the status-check database with a one second budget.
type PostgresChecker struct {
	db Pinger
}

func NewPostgresChecker(db Pinger) *PostgresChecker {
	return &PostgresChecker{db: db}
}

func (c *PostgresChecker) Name() string { return "postgres" }

func (c *PostgresChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return c.db.Ping(ctx)
}
