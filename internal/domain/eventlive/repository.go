package eventlive

import "context"

type Repository interface {
	ListByEvent(ctx context.Context, eventID int) ([]Stat, error)
}
