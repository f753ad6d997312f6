package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/fpltools/fpl-tournament/internal/domain/cupresult"
	"github.com/fpltools/fpl-tournament/internal/domain/tournament"
	"github.com/fpltools/fpl-tournament/internal/platform/logging"
	"github.com/fpltools/fpl-tournament/internal/usecase"
)

type noTournamentsRepo struct{}

func (noTournamentsRepo) FindByID(context.Context, int64) (tournament.Tournament, bool, error) {
	return tournament.Tournament{}, false, nil
}

func (noTournamentsRepo) ListActive(context.Context) ([]tournament.Tournament, error) {
	return nil, nil
}

type emptyRosterRepo struct{}

func (emptyRosterRepo) ListEntryIDsByTournament(context.Context, int64) ([]int64, error) {
	return nil, nil
}

type discardCupRepo struct{}

func (discardCupRepo) UpsertBatch(_ context.Context, rows []cupresult.Result) (int, error) {
	return len(rows), nil
}

type unusedProvider struct{}

func (unusedProvider) FetchEntryEventPicks(context.Context, int64, int) (usecase.EntryPicksResponse, error) {
	return usecase.EntryPicksResponse{}, nil
}

func (unusedProvider) FetchClassicStandingsPage(context.Context, int64, int) (usecase.StandingsPage, error) {
	return usecase.StandingsPage{}, nil
}

func (unusedProvider) FetchH2HStandingsPage(context.Context, int64, int) (usecase.StandingsPage, error) {
	return usecase.StandingsPage{}, nil
}

func (unusedProvider) FetchEntryCup(context.Context, int64) (usecase.CupResponse, error) {
	return usecase.CupResponse{}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cupService := usecase.NewCupResultService(
		unusedProvider{}, noTournamentsRepo{}, emptyRosterRepo{}, discardCupRepo{}, logging.NewNop(),
	)
	handler := NewHandler(nil, cupService, slog.New(slog.DiscardHandler), 2)
	return NewRouter(handler, slog.New(slog.DiscardHandler), "job-secret")
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestInternalJobRoutes_RequireToken(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/sync-cup-results",
		strings.NewReader(`{"event_id":20}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/sync-cup-results",
		strings.NewReader(`{"event_id":20}`))
	req.Header.Set("X-Internal-Job-Token", "wrong")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong token: status = %d, want 401", rec.Code)
	}
}

func TestRunSyncCupResults_ValidRequest(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/sync-cup-results",
		strings.NewReader(`{"event_id":20,"concurrency":2}`))
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data usecase.CupResultSyncSummary `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.EventID != 20 || envelope.Data.TotalEntries != 0 {
		t.Fatalf("summary = %+v", envelope.Data)
	}
}

type fixedTournamentsRepo struct {
	active []tournament.Tournament
}

func (r fixedTournamentsRepo) FindByID(context.Context, int64) (tournament.Tournament, bool, error) {
	return tournament.Tournament{}, false, nil
}

func (r fixedTournamentsRepo) ListActive(context.Context) ([]tournament.Tournament, error) {
	return r.active, nil
}

type fixedRosterRepo struct {
	entryIDs []int64
}

func (r fixedRosterRepo) ListEntryIDsByTournament(context.Context, int64) ([]int64, error) {
	return r.entryIDs, nil
}

// gaugingProvider records the peak number of concurrent cup fetches.
type gaugingProvider struct {
	unusedProvider
	inFlight atomic.Int64
	peak     atomic.Int64
}

func (p *gaugingProvider) FetchEntryCup(_ context.Context, entryID int64) (usecase.CupResponse, error) {
	current := p.inFlight.Add(1)
	defer p.inFlight.Add(-1)
	for {
		peak := p.peak.Load()
		if current <= peak || p.peak.CompareAndSwap(peak, current) {
			break
		}
	}
	time.Sleep(20 * time.Millisecond)

	return usecase.CupResponse{Matches: []usecase.CupMatch{{
		Event:        20,
		Entry1ID:     entryID,
		Entry1Points: 50,
		Entry2ID:     entryID + 1000,
		Entry2Points: 40,
		Winner:       entryID,
	}}}, nil
}

func TestRunSyncCupResults_OmittedConcurrencyUsesConfiguredWorkers(t *testing.T) {
	t.Parallel()

	provider := &gaugingProvider{}
	cupService := usecase.NewCupResultService(
		provider,
		fixedTournamentsRepo{active: []tournament.Tournament{
			{ID: 1, LeagueID: 100, LeagueType: tournament.LeagueTypeClassic, IsActive: true},
		}},
		fixedRosterRepo{entryIDs: []int64{11, 22, 33, 44, 55, 66}},
		discardCupRepo{},
		logging.NewNop(),
	)
	handler := NewHandler(nil, cupService, slog.New(slog.DiscardHandler), 2)
	router := NewRouter(handler, slog.New(slog.DiscardHandler), "job-secret")

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/sync-cup-results",
		strings.NewReader(`{"event_id":20}`))
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if peak := provider.peak.Load(); peak > 2 {
		t.Fatalf("peak concurrent fetches = %d, want <= 2", peak)
	}

	var envelope struct {
		Data usecase.CupResultSyncSummary `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TotalEntries != 6 || envelope.Data.Upserted != 6 {
		t.Fatalf("summary = %+v", envelope.Data)
	}
}

func TestRunSyncCupResults_RejectsBadPayload(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	cases := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"malformed json", `{"event_id":`},
		{"event id out of range", `{"event_id":99}`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/sync-cup-results",
				strings.NewReader(tc.body))
			req.Header.Set("X-Internal-Job-Token", "job-secret")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body = %s", rec.Code, rec.Body.String())
			}
		})
	}
}
