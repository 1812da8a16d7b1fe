package app

import (
	"fmt"
	"net/http"

	"github.com/fcvenelles/club-results/external/dofa"
	"github.com/fcvenelles/club-results/internal/config"
	"github.com/fcvenelles/club-results/internal/interfaces/httpapi"
	"github.com/fcvenelles/club-results/internal/platform/cache"
	"github.com/fcvenelles/club-results/internal/platform/logging"
	"github.com/fcvenelles/club-results/internal/platform/resilience"
	"github.com/fcvenelles/club-results/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	gateway := dofa.NewClient(dofa.ClientConfig{
		BaseURL:    cfg.DOFABaseURL,
		Timeout:    cfg.DOFATimeout,
		MaxRetries: cfg.DOFAMaxRetries,
		Logger:     logger,
		Cache:      store,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.DOFACircuitEnabled,
			FailureThreshold: cfg.DOFACircuitFailureCount,
			OpenTimeout:      cfg.DOFACircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.DOFACircuitHalfOpenMaxReq,
		},
	})

	handler := httpapi.NewHandler(
		usecase.NewResultsService(gateway, logger, cfg.DefaultClubID),
		usecase.NewTeamsService(gateway, logger, cfg.DefaultClubID),
		usecase.NewRankingService(gateway, logger),
		usecase.NewIdentifierService(gateway, logger, cfg.DefaultClubID),
		usecase.NewRefreshService(gateway, logger, cfg.DefaultClubID).WithDefaultWorkers(cfg.RefreshMaxWorkers),
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
