package tournament

import "context"

type Repository interface {
	FindByID(ctx context.Context, id int64) (Tournament, bool, error)
	ListActive(ctx context.Context) ([]Tournament, error)
}

// EntryRepository reads the persisted participant roster for a tournament.
type EntryRepository interface {
	ListEntryIDsByTournament(ctx context.Context, tournamentID int64) ([]int64, error)
}
