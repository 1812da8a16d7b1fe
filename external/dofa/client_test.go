package dofa

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fcvenelles/club-results/internal/platform/cache"
	"github.com/fcvenelles/club-results/internal/platform/resilience"
	"github.com/fcvenelles/club-results/internal/usecase"
)

func newTestClient(t *testing.T, handler http.Handler, mutate func(*ClientConfig)) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := ClientConfig{
		BaseURL:    server.URL,
		Timeout:    2 * time.Second,
		MaxRetries: 0,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled: false,
		},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewClient(cfg), server
}

func TestClientClubResults_DecodesHydraPayload(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/clubs/547517/resultat" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"hydra:member": [
				{"date": "2026-03-01T15:00:00", "home_name": "FC Venelles", "away_name": "AS Aix", "home_score": 2, "away_score": 1},
				{"home_name": "sans date"}
			]
		}`))
	}), nil)

	matches, err := client.ClubResults(context.Background(), "547517")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected dateless record dropped, got=%d matches", len(matches))
	}
	if matches[0].HomeScore == nil || *matches[0].HomeScore != 2 {
		t.Fatalf("expected home score 2, got=%v", matches[0].HomeScore)
	}
}

func TestClientClubInfo_ExtractsNumberAndName(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"cl_no": 547517, "name": "FC Venelles"}`))
	}), nil)

	info, err := client.ClubInfo(context.Background(), "venelles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Number != "547517" || info.Name != "FC Venelles" {
		t.Fatalf("unexpected club info %+v", info)
	}
}

func TestClientNotFound_SurfacesUpstreamStatusWithoutRetry(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, `{"detail":"Not Found"}`, http.StatusNotFound)
	}), func(cfg *ClientConfig) {
		cfg.MaxRetries = 3
	})

	_, err := client.ClubResults(context.Background(), "999999")
	if err == nil {
		t.Fatal("expected an error")
	}
	status, ok := usecase.UpstreamStatus(err)
	if !ok || status != http.StatusNotFound {
		t.Fatalf("expected upstream 404, got=%v (status=%d ok=%t)", err, status, ok)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected a single attempt on 404, got=%d", got)
	}
}

func TestClientRetriesTransientStatusThenSucceeds(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			http.Error(w, "upstream hiccup", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"hydra:member": [{"date": "2026-03-01"}]}`))
	}), func(cfg *ClientConfig) {
		cfg.MaxRetries = 2
	})

	matches, err := client.ClubCalendar(context.Background(), "547517")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match after retry, got=%d", len(matches))
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected 2 attempts, got=%d", got)
	}
}

func TestClientExhaustedRetries_PropagatesLastUpstreamStatus(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}), func(cfg *ClientConfig) {
		cfg.MaxRetries = 1
	})

	_, err := client.ClubResults(context.Background(), "547517")
	status, ok := usecase.UpstreamStatus(err)
	if !ok || status != http.StatusServiceUnavailable {
		t.Fatalf("expected upstream 503 after exhausted retries, got=%v", err)
	}
}

func TestClientTransportFailure_SurfacesGatewayStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(ClientConfig{
		BaseURL:        server.URL,
		Timeout:        time.Second,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})

	_, err := client.ClubResults(context.Background(), "547517")
	status, ok := usecase.UpstreamStatus(err)
	if !ok || status != http.StatusBadGateway {
		t.Fatalf("expected 502 for transport failure, got=%v", err)
	}
}

func TestClientCircuitOpen_RejectsWithoutCallingUpstream(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}), func(cfg *ClientConfig) {
		cfg.CircuitBreaker = resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		}
	})

	if _, err := client.ClubResults(context.Background(), "547517"); err == nil {
		t.Fatal("expected the priming request to fail")
	}
	before := hits.Load()

	_, err := client.ClubResults(context.Background(), "547517")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable from open circuit, got=%v", err)
	}
	if hits.Load() != before {
		t.Fatal("expected no upstream call while circuit is open")
	}
}

func TestClientCache_ServesRepeatCallsWithoutRefetch(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"hydra:member": [{"date": "2026-03-01"}]}`))
	}), func(cfg *ClientConfig) {
		cfg.Cache = cache.NewStore(time.Minute)
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		matches, err := client.ClubResults(ctx, "547517")
		if err != nil {
			t.Fatalf("unexpected error on call %d: %v", i, err)
		}
		if len(matches) != 1 {
			t.Fatalf("expected 1 match on call %d, got=%d", i, len(matches))
		}
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected a single upstream fetch, got=%d", got)
	}
}
