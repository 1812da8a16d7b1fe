package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"

	"github.com/fcvenelles/club-results/internal/usecase"
)

// errorBody is the uniform failure shape of the API. Status mirrors the
// HTTP status code so browser widgets can branch without reading headers.
type errorBody struct {
	Error   bool   `json:"error"`
	Status  int    `json:"status"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func newJSONDecoder(r io.Reader) sonic.Decoder {
	return sonic.ConfigDefault.NewDecoder(r)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":true,"status":500,"message":"Erreur interne"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	status, message, detail := mapError(err)
	writeJSON(ctx, w, status, errorBody{
		Error:   true,
		Status:  status,
		Message: message,
		Detail:  detail,
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, errorBody{
		Error:   true,
		Status:  http.StatusInternalServerError,
		Message: "Erreur interne",
	})
}

// mapError translates a service error into the wire status and messages.
// An upstream HTTP status propagates as-is when the federation answered;
// transport-level failures surface as a gateway failure.
func mapError(err error) (status int, message, detail string) {
	if upstreamStatus, ok := usecase.UpstreamStatus(err); ok {
		switch upstreamStatus {
		case http.StatusNotFound:
			return http.StatusNotFound, "Identifiant club invalide", err.Error()
		default:
			return upstreamStatus, "Erreur lors de la récupération des résultats", err.Error()
		}
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return http.StatusBadRequest, "Parametre requis manquant ou invalide", err.Error()
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound, "Ressource introuvable", err.Error()
	case errors.Is(err, usecase.ErrUnauthorized):
		return http.StatusUnauthorized, "Acces refuse", err.Error()
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return http.StatusServiceUnavailable, "Service federal indisponible", err.Error()
	default:
		return http.StatusInternalServerError, "Erreur interne", ""
	}
}
