package fplapi

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/fpltools/fpl-tournament/internal/platform/logging"
	"github.com/fpltools/fpl-tournament/internal/platform/resilience"
	"github.com/fpltools/fpl-tournament/internal/usecase"
)

const (
	defaultBaseURL     = "https://fantasy.premierleague.com/api"
	defaultTimeout     = 15 * time.Second
	maxResponseBodyLen = 6 << 20
)

var errFPLTransient = crerr.New("fpl transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the public Fantasy Premier League API. All methods map the
// raw wire envelopes into the usecase provider types.
type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	timeout        time.Duration
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

var _ usecase.FPLProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			MaxResponseBodySize: maxResponseBodyLen,
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		timeout:        timeout,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) FetchEntryEventPicks(ctx context.Context, entryID int64, eventID int) (usecase.EntryPicksResponse, error) {
	if entryID <= 0 {
		return usecase.EntryPicksResponse{}, fmt.Errorf("entry id must be greater than zero")
	}

	var envelope entryPicksEnvelope
	path := fmt.Sprintf("/entry/%d/event/%d/picks/", entryID, eventID)
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		return usecase.EntryPicksResponse{}, fmt.Errorf("fetch entry picks entry_id=%d event_id=%d: %w", entryID, eventID, err)
	}
	return mapEntryPicks(envelope), nil
}

func (c *Client) FetchClassicStandingsPage(ctx context.Context, leagueID int64, page int) (usecase.StandingsPage, error) {
	return c.fetchStandingsPage(ctx, "leagues-classic", leagueID, page)
}

func (c *Client) FetchH2HStandingsPage(ctx context.Context, leagueID int64, page int) (usecase.StandingsPage, error) {
	return c.fetchStandingsPage(ctx, "leagues-h2h", leagueID, page)
}

func (c *Client) fetchStandingsPage(ctx context.Context, kind string, leagueID int64, page int) (usecase.StandingsPage, error) {
	if leagueID <= 0 {
		return usecase.StandingsPage{}, fmt.Errorf("league id must be greater than zero")
	}
	if page < 1 {
		page = 1
	}

	var envelope standingsEnvelope
	path := fmt.Sprintf("/%s/%d/standings/?page_standings=%d", kind, leagueID, page)
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		return usecase.StandingsPage{}, fmt.Errorf("fetch standings league_id=%d page=%d: %w", leagueID, page, err)
	}
	return mapStandingsPage(envelope), nil
}

func (c *Client) FetchEntryCup(ctx context.Context, entryID int64) (usecase.CupResponse, error) {
	if entryID <= 0 {
		return usecase.CupResponse{}, fmt.Errorf("entry id must be greater than zero")
	}

	var envelope cupEnvelope
	path := fmt.Sprintf("/entry/%d/cup/", entryID)
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		return usecase.CupResponse{}, fmt.Errorf("fetch entry cup entry_id=%d: %w", entryID, err)
	}
	return mapCupResponse(envelope), nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "fpl circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: fantasy api is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errFPLTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode fpl payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, retryable, err := c.doOnce(fullURL)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !retryable || attempt == c.maxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("fpl request failed")
	}
	c.logger.WarnContext(ctx, "fpl request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) doOnce(fullURL string) ([]byte, bool, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, true, fmt.Errorf("%w: send request: %v", errFPLTransient, err)
	}

	status := resp.StatusCode()
	body := append([]byte(nil), resp.Body()...)
	switch {
	case status >= 200 && status < 300:
		return body, false, nil
	case isRetryableStatus(status):
		return nil, true, fmt.Errorf("%w: fpl status=%d body=%s", errFPLTransient, status, abbreviateBody(body))
	default:
		return nil, false, fmt.Errorf("fpl status=%d body=%s", status, abbreviateBody(body))
	}
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(raw))
	if len(text) > limit {
		return text[:limit] + "..."
	}
	return text
}
