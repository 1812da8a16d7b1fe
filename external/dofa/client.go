package dofa

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/fcvenelles/club-results/internal/domain/match"
	"github.com/fcvenelles/club-results/internal/domain/ranking"
	"github.com/fcvenelles/club-results/internal/domain/team"
	"github.com/fcvenelles/club-results/internal/platform/cache"
	"github.com/fcvenelles/club-results/internal/platform/logging"
	"github.com/fcvenelles/club-results/internal/platform/resilience"
	"github.com/fcvenelles/club-results/internal/usecase"
)

const defaultBaseURL = "https://api-dofa.fff.fr/api"

var errDOFATransient = crerr.New("dofa transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	Cache          *cache.Store
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the federation open-data API. All fetches share a circuit
// breaker, in-flight deduplication and an optional TTL payload cache.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	cache          *cache.Store
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

var _ usecase.FederationGateway = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		cache:          cfg.Cache,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) ClubInfo(ctx context.Context, clubID string) (usecase.ClubInfo, error) {
	payload, err := c.getJSON(ctx, "/clubs/"+url.PathEscape(clubID), nil)
	if err != nil {
		return usecase.ClubInfo{}, err
	}
	doc, ok := payload.(map[string]any)
	if !ok {
		return usecase.ClubInfo{}, fmt.Errorf("unexpected club payload type %T", payload)
	}
	return usecase.ClubInfo{
		Number: extractClubNumber(doc),
		Name:   extractClubName(doc),
	}, nil
}

func (c *Client) ClubResults(ctx context.Context, clubID string) ([]match.Match, error) {
	payload, err := c.getJSON(ctx, "/clubs/"+url.PathEscape(clubID)+"/resultat", nil)
	if err != nil {
		return nil, err
	}
	return normalizeMatches(payload), nil
}

func (c *Client) ClubCalendar(ctx context.Context, clubID string) ([]match.Match, error) {
	payload, err := c.getJSON(ctx, "/clubs/"+url.PathEscape(clubID)+"/calendrier", nil)
	if err != nil {
		return nil, err
	}
	return normalizeMatches(payload), nil
}

func (c *Client) ClubTeams(ctx context.Context, clubID string) ([]team.Team, error) {
	payload, err := c.getJSON(ctx, "/clubs/"+url.PathEscape(clubID)+"/equipes.json", nil)
	if err != nil {
		return nil, err
	}
	return normalizeTeams(payload), nil
}

func (c *Client) CompetitionRanking(ctx context.Context, cpNo string) ([]ranking.Entry, error) {
	payload, err := c.getJSON(ctx, "/competitions/"+url.PathEscape(cpNo)+"/classement", nil)
	if err != nil {
		return nil, err
	}
	return normalizeRanking(payload), nil
}

// getJSON serves a decoded payload from the TTL cache when one is
// configured, loading through doJSON on a miss. Errors are never cached.
func (c *Client) getJSON(ctx context.Context, path string, query map[string]string) (any, error) {
	if c.cache == nil {
		return c.doJSON(ctx, path, query)
	}
	return c.cache.GetOrLoad(ctx, "dofa:"+path, func(ctx context.Context) (any, error) {
		return c.doJSON(ctx, path, query)
	})
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string) (any, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "dofa circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: federation API is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isDOFACircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	var payload any
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode federation payload: %w", err)
	}

	return payload, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	var lastStatus int
	var lastBody string
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errDOFATransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errDOFATransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastStatus = resp.StatusCode
				lastBody = abbreviateBody(raw)
				lastErr = fmt.Errorf("%w: federation status=%d body=%s", errDOFATransient, resp.StatusCode, lastBody)
			} else {
				return nil, &usecase.UpstreamError{
					Status: resp.StatusCode,
					Msg:    "federation request rejected",
					Detail: abbreviateBody(raw),
				}
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * 500 * time.Millisecond
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("federation request failed")
	}
	c.logger.WarnContext(ctx, "dofa request failed", "url", fullURL, "error", lastErr)

	// A status the federation actually answered with propagates to the
	// caller; a pure transport failure surfaces as a gateway failure.
	if lastStatus != 0 {
		return nil, crerr.Mark(&usecase.UpstreamError{
			Status: lastStatus,
			Msg:    "federation request failed after retries",
			Detail: lastBody,
		}, errDOFATransient)
	}
	return nil, crerr.Mark(&usecase.UpstreamError{
		Status: http.StatusBadGateway,
		Msg:    "communication with federation failed",
		Detail: lastErr.Error(),
	}, errDOFATransient)
}

func isDOFACircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errDOFATransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
