package entry

import "context"

type Repository interface {
	ListByIDs(ctx context.Context, entryIDs []int64) ([]Info, error)
}
