package cupresult

import "context"

type Repository interface {
	UpsertBatch(ctx context.Context, rows []Result) (int, error)
}
