package httpapi

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/fpltools/fpl-tournament/internal/usecase"
)

const maxRequestBodyLen = 1 << 20

type Handler struct {
	eventResultService *usecase.EventResultService
	cupResultService   *usecase.CupResultService
	logger             *slog.Logger
	validator          *validator.Validate
	syncWorkers        int
}

func NewHandler(
	eventResultService *usecase.EventResultService,
	cupResultService *usecase.CupResultService,
	logger *slog.Logger,
	syncWorkers int,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		eventResultService: eventResultService,
		cupResultService:   cupResultService,
		logger:             logger,
		validator:          validator.New(),
		syncWorkers:        syncWorkers,
	}
}

// concurrencyFor applies the configured worker count when the request leaves
// concurrency unset.
func (h *Handler) concurrencyFor(requested int) int {
	if requested > 0 {
		return requested
	}
	return h.syncWorkers
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type syncEventResultsRequest struct {
	TournamentID int64 `json:"tournament_id" validate:"required,gt=0"`
	EventID      int   `json:"event_id" validate:"required,gte=1,lte=38"`
	Concurrency  int   `json:"concurrency" validate:"gte=0,lte=64"`
}

func (h *Handler) RunSyncEventResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncEventResults")
	defer span.End()

	var req syncEventResultsRequest
	if err := h.decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.eventResultService.SyncLeagueEventResults(ctx, req.TournamentID, req.EventID, h.concurrencyFor(req.Concurrency))
	if err != nil {
		h.logger.WarnContext(ctx, "sync event results job failed",
			"tournament_id", req.TournamentID, "event_id", req.EventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

type syncCupResultsRequest struct {
	EventID     int `json:"event_id" validate:"required,gte=1,lte=38"`
	Concurrency int `json:"concurrency" validate:"gte=0,lte=64"`
}

func (h *Handler) RunSyncCupResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncCupResults")
	defer span.End()

	var req syncCupResultsRequest
	if err := h.decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.cupResultService.SyncCupResults(ctx, req.EventID, h.concurrencyFor(req.Concurrency))
	if err != nil {
		h.logger.WarnContext(ctx, "sync cup results job failed",
			"event_id", req.EventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) decodeJSONBody(r *http.Request, target any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyLen))
	if err != nil {
		return fmt.Errorf("%w: read request body", usecase.ErrInvalidInput)
	}
	if len(body) == 0 {
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}
	if err := sonic.Unmarshal(body, target); err != nil {
		return fmt.Errorf("%w: malformed json body", usecase.ErrInvalidInput)
	}
	if err := h.validator.Struct(target); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
