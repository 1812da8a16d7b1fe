package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fcvenelles/club-results/internal/domain/ranking"
	"github.com/fcvenelles/club-results/internal/platform/logging"
	"github.com/fcvenelles/club-results/internal/usecase"
)

type Handler struct {
	resultsService    *usecase.ResultsService
	teamsService      *usecase.TeamsService
	rankingService    *usecase.RankingService
	identifierService *usecase.IdentifierService
	refreshService    *usecase.RefreshService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	resultsService *usecase.ResultsService,
	teamsService *usecase.TeamsService,
	rankingService *usecase.RankingService,
	identifierService *usecase.IdentifierService,
	refreshService *usecase.RefreshService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		resultsService:    resultsService,
		teamsService:      teamsService,
		rankingService:    rankingService,
		identifierService: identifierService,
		refreshService:    refreshService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetClubResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClubResults")
	defer span.End()

	req := clubResultsRequest{
		ClubID:        strings.TrimSpace(r.PathValue("clubID")),
		CompetitionID: strings.TrimSpace(r.URL.Query().Get("competitionId")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	payload, err := h.resultsService.ResolveClubResults(ctx, usecase.ResultsInput{
		ClubID:        req.ClubID,
		CompetitionID: req.CompetitionID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "resolve club results failed", "club_id", req.ClubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, payload)
}

func (h *Handler) GetClubTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClubTeams")
	defer span.End()

	clubID := strings.TrimSpace(r.PathValue("clubID"))
	if err := h.validateRequest(ctx, clubIdentifierRequest{ClubID: clubID}); err != nil {
		writeError(ctx, w, err)
		return
	}

	payload, err := h.teamsService.ResolveClubTeams(ctx, clubID)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve club teams failed", "club_id", clubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, payload)
}

func (h *Handler) GetClubIdentifier(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClubIdentifier")
	defer span.End()

	clubID := strings.TrimSpace(r.PathValue("clubID"))
	if err := h.validateRequest(ctx, clubIdentifierRequest{ClubID: clubID}); err != nil {
		writeError(ctx, w, err)
		return
	}

	canonical, err := h.identifierService.ResolveClubIdentifier(ctx, clubID)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve club identifier failed", "club_id", clubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, clubIdentifierDTO{
		ProvidedID: clubID,
		ClubID:     canonical,
	})
}

func (h *Handler) GetRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRanking")
	defer span.End()

	query := r.URL.Query()
	req := rankingRequest{
		CpNo:         strings.TrimSpace(query.Get("cpNo")),
		ClubNameHint: strings.TrimSpace(query.Get("club")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.rankingService.ResolveRanking(ctx, req.CpNo, req.ClubNameHint)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve ranking failed", "cp_no", req.CpNo, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, rankingDTO{
		CpNo:    req.CpNo,
		Ranking: summary,
	})
}

func (h *Handler) PostInternalRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PostInternalRefresh")
	defer span.End()

	var req refreshRequest
	if r.Body != nil && r.ContentLength != 0 {
		decoder := newJSONDecoder(r.Body)
		if err := decoder.Decode(&req); err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
			return
		}
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.refreshService.Refresh(ctx, usecase.RefreshInput{
		ClubIDs:    req.ClubIDs,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "cache refresh failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type clubResultsRequest struct {
	ClubID        string `validate:"required,max=32"`
	CompetitionID string `validate:"omitempty,max=32"`
}

type clubIdentifierRequest struct {
	ClubID string `validate:"required,max=32"`
}

type rankingRequest struct {
	CpNo         string `validate:"required,max=32"`
	ClubNameHint string `validate:"omitempty,max=120"`
}

type refreshRequest struct {
	ClubIDs    []string `json:"clubIds" validate:"omitempty,max=50,dive,required,max=32"`
	MaxWorkers int      `json:"maxWorkers" validate:"omitempty,min=1,max=16"`
}

type clubIdentifierDTO struct {
	ProvidedID string `json:"providedId"`
	ClubID     string `json:"clubId"`
}

type rankingDTO struct {
	CpNo    string           `json:"cpNo"`
	Ranking *ranking.Summary `json:"ranking"`
}
