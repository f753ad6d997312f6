package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fpltools/fpl-tournament/internal/domain/cupresult"
	"github.com/fpltools/fpl-tournament/internal/domain/tournament"
	"github.com/fpltools/fpl-tournament/internal/platform/logging"
)

// The FPL cup only runs in the back half of the season.
const (
	cupFirstEventID = 17
	cupLastEventID  = maxEventID
)

const skipReasonNoCupMatch = "no cup match for event"

type CupResultSyncSummary struct {
	EventID      int `json:"event_id"`
	TotalEntries int `json:"total_entries"`
	Upserted     int `json:"upserted"`
	Skipped      int `json:"skipped"`
	Errors       int `json:"errors"`
}

// CupResultService resolves per-entry cup outcomes for a gameweek across
// every active tournament's participants.
type CupResultService struct {
	provider       FPLProvider
	tournamentRepo tournament.Repository
	rosterRepo     tournament.EntryRepository
	resultRepo     cupresult.Repository
	logger         *logging.Logger
	now            func() time.Time
}

func NewCupResultService(
	provider FPLProvider,
	tournamentRepo tournament.Repository,
	rosterRepo tournament.EntryRepository,
	resultRepo cupresult.Repository,
	logger *logging.Logger,
) *CupResultService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CupResultService{
		provider:       provider,
		tournamentRepo: tournamentRepo,
		rosterRepo:     rosterRepo,
		resultRepo:     resultRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// SyncCupResults fetches cup-match data for every entry across active
// tournaments and persists a win/loss row per entry for eventID. Outside the
// cup phase it returns a zeroed summary without touching anything upstream.
func (s *CupResultService) SyncCupResults(
	ctx context.Context,
	eventID int,
	concurrency int,
) (CupResultSyncSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "CupResultService.SyncCupResults")
	defer span.End()

	summary := CupResultSyncSummary{EventID: eventID}
	if eventID < cupFirstEventID || eventID > cupLastEventID {
		s.logger.DebugContext(ctx, "event outside cup phase, nothing to sync", "event_id", eventID)
		return summary, nil
	}

	tournaments, err := s.tournamentRepo.ListActive(ctx)
	if err != nil {
		return summary, fmt.Errorf("list active tournaments: %w", err)
	}

	resolver := entryResolver{provider: s.provider, rosterRepo: s.rosterRepo}
	seen := make(map[int64]struct{})
	var entryIDs []int64
	for _, tourney := range tournaments {
		ids, resolveErr := resolver.Resolve(ctx, tourney)
		if resolveErr != nil {
			return summary, fmt.Errorf("resolve entries tournament_id=%d: %w", tourney.ID, resolveErr)
		}
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			entryIDs = append(entryIDs, id)
		}
	}
	if len(entryIDs) == 0 {
		s.logger.InfoContext(ctx, "no entries across active tournaments", "event_id", eventID)
		return summary, nil
	}
	summary.TotalEntries = len(entryIDs)

	results, err := runFetchPool(ctx, entryIDs, concurrency,
		func(ctx context.Context, entryID int64) (CupResponse, error) {
			return s.provider.FetchEntryCup(ctx, entryID)
		})
	if err != nil {
		return summary, err
	}

	now := s.now()
	rows := make([]cupresult.Result, 0, len(entryIDs))
	for i := range results {
		entryID := entryIDs[i]
		if results[i].Err != nil {
			summary.Errors++
			s.logger.WarnContext(ctx, "fetch entry cup failed",
				"entry_id", entryID, "event_id", eventID, "error", results[i].Err)
			continue
		}
		match, found := findCupMatch(results[i].Value.Matches, eventID, entryID)
		if !found {
			summary.Skipped++
			s.logger.WarnContext(ctx, "skipping entry",
				"reason", skipReasonNoCupMatch, "entry_id", entryID, "event_id", eventID)
			continue
		}
		rows = append(rows, buildCupResult(match, entryID, now))
	}

	if len(rows) > 0 {
		written, upsertErr := s.resultRepo.UpsertBatch(ctx, rows)
		summary.Upserted = written
		if upsertErr != nil {
			return summary, fmt.Errorf("upsert cup results: %w", upsertErr)
		}
	}

	s.logger.InfoContext(ctx, "cup results synced",
		"event_id", eventID, "total_entries", summary.TotalEntries,
		"upserted", summary.Upserted, "skipped", summary.Skipped, "errors", summary.Errors)
	return summary, nil
}

func findCupMatch(matches []CupMatch, eventID int, entryID int64) (CupMatch, bool) {
	for _, match := range matches {
		if match.Event != eventID {
			continue
		}
		if match.Entry1ID == entryID || match.Entry2ID == entryID {
			return match, true
		}
	}
	return CupMatch{}, false
}

// buildCupResult renders the match from entryID's perspective. A non-zero
// winner decides the tie outright; otherwise the scores settle it, with the
// entry taking a draw as a win.
func buildCupResult(match CupMatch, entryID int64, now time.Time) cupresult.Result {
	row := cupresult.Result{
		EntryID:   entryID,
		EventID:   match.Event,
		UpdatedAt: now,
	}
	if match.Entry1ID == entryID {
		row.EntryName = match.Entry1Name
		row.PlayerName = match.Entry1PlayerName
		row.EventPoints = match.Entry1Points
		row.AgainstEntryID = match.Entry2ID
		row.AgainstEntryName = match.Entry2Name
		row.AgainstPlayerName = match.Entry2PlayerName
		row.AgainstEventPoints = match.Entry2Points
	} else {
		row.EntryName = match.Entry2Name
		row.PlayerName = match.Entry2PlayerName
		row.EventPoints = match.Entry2Points
		row.AgainstEntryID = match.Entry1ID
		row.AgainstEntryName = match.Entry1Name
		row.AgainstPlayerName = match.Entry1PlayerName
		row.AgainstEventPoints = match.Entry1Points
	}

	row.Outcome = cupresult.OutcomeLoss
	switch {
	case match.Winner != 0:
		if match.Winner == entryID {
			row.Outcome = cupresult.OutcomeWin
		}
	case row.EventPoints >= row.AgainstEventPoints:
		row.Outcome = cupresult.OutcomeWin
	}
	return row
}
