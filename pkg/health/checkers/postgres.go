package checkers

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/resumebuilder/pkg/health"
)

// Postgres checks the pool can reach the database.
func Postgres(pool *pgxpool.Pool) health.Checker {
	return pingChecker{name: "postgres", ping: pool.Ping}
}
