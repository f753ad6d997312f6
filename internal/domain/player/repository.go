package player

import "context"

type Repository interface {
	ListByIDs(ctx context.Context, ids []int64) ([]Player, error)
}
