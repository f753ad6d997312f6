package usecase

import (
	"context"

	"github.com/fpltools/fpl-tournament/internal/domain/entryevent"
)

// FPLProvider is the upstream fantasy API surface the sync services consume.
// The concrete client lives in external/fplapi.
type FPLProvider interface {
	FetchEntryEventPicks(ctx context.Context, entryID int64, eventID int) (EntryPicksResponse, error)
	FetchClassicStandingsPage(ctx context.Context, leagueID int64, page int) (StandingsPage, error)
	FetchH2HStandingsPage(ctx context.Context, leagueID int64, page int) (StandingsPage, error)
	FetchEntryCup(ctx context.Context, entryID int64) (CupResponse, error)
}

// EntryPicksResponse is one entry's gameweek team sheet with its embedded
// history block, already mapped from the upstream wire format.
type EntryPicksResponse struct {
	ActiveChip    string
	AutomaticSubs []entryevent.AutoSub
	History       *EntryEventHistory
	Picks         []entryevent.Pick
}

type EntryEventHistory struct {
	EventPoints        int
	EventTransfers     int
	EventTransfersCost int
	EventBenchPoints   int
	EventRank          int
	OverallPoints      int
	OverallRank        int
	TeamValue          int
	Bank               int
}

// StandingsPage is one page of league standings, reduced to the entry ids
// in rank order plus the upstream pagination flag.
type StandingsPage struct {
	EntryIDs []int64
	HasNext  bool
}

type CupResponse struct {
	Matches []CupMatch
}

type CupMatch struct {
	Event            int
	Entry1ID         int64
	Entry1Name       string
	Entry1PlayerName string
	Entry1Points     int
	Entry2ID         int64
	Entry2Name       string
	Entry2PlayerName string
	Entry2Points     int
	// Winner is the winning entry id, or 0 while the upstream has not
	// decided the tie (scores settle it in that case).
	Winner int64
}
