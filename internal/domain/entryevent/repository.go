package entryevent

import "context"

type Repository interface {
	ListByEventAndEntryIDs(ctx context.Context, eventID int, entryIDs []int64) ([]Result, error)
}
