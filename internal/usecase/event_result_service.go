package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/fpltools/fpl-tournament/internal/domain/entry"
	"github.com/fpltools/fpl-tournament/internal/domain/entryevent"
	"github.com/fpltools/fpl-tournament/internal/domain/eventlive"
	"github.com/fpltools/fpl-tournament/internal/domain/leagueresult"
	"github.com/fpltools/fpl-tournament/internal/domain/player"
	"github.com/fpltools/fpl-tournament/internal/domain/tournament"
	"github.com/fpltools/fpl-tournament/internal/platform/logging"
)

const (
	minEventID = 1
	maxEventID = 38
)

type EventResultSyncSummary struct {
	TournamentID int64 `json:"tournament_id"`
	EventID      int   `json:"event_id"`
	TotalEntries int   `json:"total_entries"`
	Updated      int   `json:"updated"`
	Skipped      int   `json:"skipped"`
}

// EventResultService computes and persists enriched per-entry league results
// for one tournament and gameweek.
type EventResultService struct {
	provider       FPLProvider
	tournamentRepo tournament.Repository
	rosterRepo     tournament.EntryRepository
	entryRepo      entry.Repository
	entryEventRepo entryevent.Repository
	liveRepo       eventlive.Repository
	playerRepo     player.Repository
	resultRepo     leagueresult.Repository
	logger         *logging.Logger
	now            func() time.Time
}

func NewEventResultService(
	provider FPLProvider,
	tournamentRepo tournament.Repository,
	rosterRepo tournament.EntryRepository,
	entryRepo entry.Repository,
	entryEventRepo entryevent.Repository,
	liveRepo eventlive.Repository,
	playerRepo player.Repository,
	resultRepo leagueresult.Repository,
	logger *logging.Logger,
) *EventResultService {
	if logger == nil {
		logger = logging.Default()
	}
	return &EventResultService{
		provider:       provider,
		tournamentRepo: tournamentRepo,
		rosterRepo:     rosterRepo,
		entryRepo:      entryRepo,
		entryEventRepo: entryEventRepo,
		liveRepo:       liveRepo,
		playerRepo:     playerRepo,
		resultRepo:     resultRepo,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *EventResultService) resolver() entryResolver {
	return entryResolver{provider: s.provider, rosterRepo: s.rosterRepo}
}

// SyncLeagueEventResults recomputes all result rows for (tournamentID,
// eventID). Entries with a stored authoritative result keep it; the rest get
// their picks fetched live under the given concurrency (<=0 uses the
// default). Per-entry fetch failures are counted as skips, never raised.
func (s *EventResultService) SyncLeagueEventResults(
	ctx context.Context,
	tournamentID int64,
	eventID int,
	concurrency int,
) (EventResultSyncSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "EventResultService.SyncLeagueEventResults")
	defer span.End()

	summary := EventResultSyncSummary{TournamentID: tournamentID, EventID: eventID}
	if tournamentID <= 0 {
		return summary, fmt.Errorf("%w: tournament id must be greater than zero", ErrInvalidInput)
	}
	if eventID < minEventID || eventID > maxEventID {
		return summary, fmt.Errorf("%w: event id %d is outside %d..%d", ErrInvalidInput, eventID, minEventID, maxEventID)
	}

	tourney, found, err := s.tournamentRepo.FindByID(ctx, tournamentID)
	if err != nil {
		return summary, fmt.Errorf("find tournament %d: %w", tournamentID, err)
	}
	if !found {
		return summary, fmt.Errorf("%w: tournament %d", ErrNotFound, tournamentID)
	}
	if err := tourney.Validate(); err != nil {
		return summary, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	entryIDs, err := s.resolver().Resolve(ctx, tourney)
	if err != nil {
		return summary, err
	}
	if len(entryIDs) == 0 {
		s.logger.WarnContext(ctx, "no entries resolved for tournament",
			"tournament_id", tournamentID, "event_id", eventID)
		return summary, nil
	}

	var (
		infos     []entry.Info
		existing  []entryevent.Result
		liveStats []eventlive.Stat
	)
	loads := pool.New().WithErrors().WithContext(ctx)
	loads.Go(func(ctx context.Context) error {
		var loadErr error
		infos, loadErr = s.entryRepo.ListByIDs(ctx, entryIDs)
		if loadErr != nil {
			return fmt.Errorf("list entry info: %w", loadErr)
		}
		return nil
	})
	loads.Go(func(ctx context.Context) error {
		var loadErr error
		existing, loadErr = s.entryEventRepo.ListByEventAndEntryIDs(ctx, eventID, entryIDs)
		if loadErr != nil {
			return fmt.Errorf("list existing entry event results: %w", loadErr)
		}
		return nil
	})
	loads.Go(func(ctx context.Context) error {
		var loadErr error
		liveStats, loadErr = s.liveRepo.ListByEvent(ctx, eventID)
		if loadErr != nil {
			return fmt.Errorf("list live stats: %w", loadErr)
		}
		return nil
	})
	if err := loads.Wait(); err != nil {
		return summary, err
	}

	if len(liveStats) == 0 {
		// Nothing is computable without live data; report a clean no-op.
		s.logger.WarnContext(ctx, "no live stats for event, skipping sync",
			"tournament_id", tournamentID, "event_id", eventID)
		return summary, nil
	}
	summary.TotalEntries = len(entryIDs)

	liveByElement := make(map[int64]eventlive.Stat, len(liveStats))
	elementIDs := make([]int64, 0, len(liveStats))
	for _, stat := range liveStats {
		liveByElement[stat.ElementID] = stat
		elementIDs = append(elementIDs, stat.ElementID)
	}

	players, err := s.playerRepo.ListByIDs(ctx, elementIDs)
	if err != nil {
		return summary, fmt.Errorf("list players for live elements: %w", err)
	}
	elementTypes := make(map[int64]int, len(players))
	for _, p := range players {
		elementTypes[p.ID] = p.ElementType
	}

	infoByEntry := make(map[int64]entry.Info, len(infos))
	for _, info := range infos {
		infoByEntry[info.EntryID] = info
	}
	existingByEntry := make(map[int64]*entryevent.Result, len(existing))
	for i := range existing {
		existingByEntry[existing[i].EntryID] = &existing[i]
	}

	missing := make([]int64, 0, len(entryIDs))
	for _, entryID := range entryIDs {
		if _, ok := existingByEntry[entryID]; !ok {
			missing = append(missing, entryID)
		}
	}

	fetched := make(map[int64]*EntryPicksResponse, len(missing))
	if len(missing) > 0 {
		results, poolErr := runFetchPool(ctx, missing, concurrency,
			func(ctx context.Context, entryID int64) (EntryPicksResponse, error) {
				return s.provider.FetchEntryEventPicks(ctx, entryID, eventID)
			})
		if poolErr != nil {
			return summary, poolErr
		}
		for i := range results {
			if results[i].Err != nil {
				s.logger.WarnContext(ctx, "fetch entry picks failed",
					"entry_id", missing[i], "event_id", eventID, "error", results[i].Err)
				continue
			}
			value := results[i].Value
			fetched[missing[i]] = &value
		}
	}

	now := s.now()
	queued := make([]leagueresult.EventResult, 0, len(entryIDs))
	for _, entryID := range entryIDs {
		info, ok := infoByEntry[entryID]
		if !ok {
			summary.Skipped++
			s.logger.WarnContext(ctx, "skipping entry",
				"reason", skipReasonNoEntryInfo, "entry_id", entryID, "event_id", eventID)
			continue
		}
		row, skip := computeLeagueEventResult(computeInput{
			Tournament:      tourney,
			EventID:         eventID,
			Entry:           info,
			Existing:        existingByEntry[entryID],
			Fetched:         fetched[entryID],
			LiveByElement:   liveByElement,
			ElementTypeByID: elementTypes,
			Now:             now,
		})
		if skip != nil {
			summary.Skipped++
			s.logger.WarnContext(ctx, "skipping entry",
				"reason", skip.Reason, "entry_id", entryID, "event_id", eventID)
			continue
		}
		queued = append(queued, row)
	}

	if len(queued) > 0 {
		written, upsertErr := s.resultRepo.UpsertBatch(ctx, queued)
		summary.Updated = written
		if upsertErr != nil {
			return summary, fmt.Errorf("upsert league event results: %w", upsertErr)
		}
	}

	s.logger.InfoContext(ctx, "league event results synced",
		"tournament_id", tournamentID, "event_id", eventID,
		"total_entries", summary.TotalEntries, "updated", summary.Updated, "skipped", summary.Skipped)
	return summary, nil
}
