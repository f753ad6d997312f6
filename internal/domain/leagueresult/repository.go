package leagueresult

import "context"

type Repository interface {
	// UpsertBatch writes rows idempotently on their composite key and
	// returns the number of rows handed to successful statements.
	UpsertBatch(ctx context.Context, rows []EventResult) (int, error)
}
