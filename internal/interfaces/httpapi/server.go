package httpapi

import (
	"net/http"

	"github.com/fcvenelles/club-results/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	corsAllowedOrigins []string,
	internalJobToken string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /api/club/{clubID}/results", handler.GetClubResults)
	mux.HandleFunc("GET /api/club/{clubID}/teams", handler.GetClubTeams)
	mux.HandleFunc("GET /api/club/{clubID}/identifier", handler.GetClubIdentifier)
	mux.HandleFunc("GET /api/ranking", handler.GetRanking)
	mux.Handle("POST /internal/refresh", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.PostInternalRefresh)))

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
