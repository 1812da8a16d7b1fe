package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/fcvenelles/club-results/internal/domain/match"
	"github.com/fcvenelles/club-results/internal/domain/ranking"
	"github.com/fcvenelles/club-results/internal/platform/logging"
)

type EnrichmentStatus string

const (
	EnrichmentOK       EnrichmentStatus = "ok"
	EnrichmentAbsent   EnrichmentStatus = "absent"
	EnrichmentDegraded EnrichmentStatus = "degraded"
)

// Enrichment records the outcome of one best-effort lookup so callers can
// tell "unavailable right now" apart from "legitimately absent".
type Enrichment struct {
	Status EnrichmentStatus `json:"status"`
	Reason string           `json:"reason,omitempty"`
}

type Enrichments struct {
	ClubName Enrichment `json:"clubName"`
	Calendar Enrichment `json:"calendar"`
	Ranking  Enrichment `json:"ranking"`
}

// MatchView is the wire form of a canonical match. Pointer fields marshal
// as null when the upstream record did not carry them.
type MatchView struct {
	Date            time.Time `json:"date"`
	Time            string    `json:"time,omitempty"`
	HomeName        *string   `json:"homeName"`
	AwayName        *string   `json:"awayName"`
	HomeScore       *int      `json:"homeScore"`
	AwayScore       *int      `json:"awayScore"`
	CompetitionName string    `json:"competitionName,omitempty"`
	CompetitionID   *string   `json:"competitionId"`
	VenueCity       string    `json:"venueCity,omitempty"`
}

// ClubResultsPayload is the terminal object of one resolution call. Note is
// set exactly when both matches are null.
type ClubResultsPayload struct {
	ClubID      string           `json:"clubId"`
	ClubName    string           `json:"clubName,omitempty"`
	LastMatch   *MatchView       `json:"lastMatch"`
	NextMatch   *MatchView       `json:"nextMatch"`
	Ranking     *ranking.Summary `json:"ranking,omitempty"`
	Enrichments Enrichments      `json:"enrichments"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	Note        string           `json:"note,omitempty"`
}

type ResultsInput struct {
	ClubID        string
	CompetitionID string
}

// ResultsService orchestrates one club results resolution: identifier
// reconciliation, the primary results fetch with its bounded not-found
// fallback, best-effort enrichments and final selection.
type ResultsService struct {
	gateway       FederationGateway
	logger        *logging.Logger
	defaultClubID string
	now           func() time.Time
}

func NewResultsService(gateway FederationGateway, logger *logging.Logger, defaultClubID string) *ResultsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ResultsService{
		gateway:       gateway,
		logger:        logger,
		defaultClubID: defaultClubID,
		now:           time.Now,
	}
}

func (s *ResultsService) ResolveClubResults(ctx context.Context, input ResultsInput) (ClubResultsPayload, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultsService.ResolveClubResults")
	defer span.End()

	candidate := strings.TrimSpace(input.ClubID)
	if candidate == "" {
		return ClubResultsPayload{}, fmt.Errorf("%w: club identifier is required", ErrInvalidInput)
	}

	clubID := resolveClubID(ctx, s.gateway, s.logger, candidate, s.defaultClubID)
	results, clubID, err := s.fetchResultsWithFallback(ctx, candidate, clubID)
	if err != nil {
		return ClubResultsPayload{}, err
	}

	// The calendar feed and the club document do not depend on each other,
	// only the ranking lookup needs the club name first.
	var (
		calendar []match.Match
		calErr   error
		info     ClubInfo
		infoErr  error
	)
	var wg conc.WaitGroup
	wg.Go(func() {
		calendar, calErr = s.gateway.ClubCalendar(ctx, clubID)
	})
	wg.Go(func() {
		info, infoErr = s.gateway.ClubInfo(ctx, clubID)
	})
	wg.Wait()

	enrichments := Enrichments{
		ClubName: Enrichment{Status: EnrichmentOK},
		Calendar: Enrichment{Status: EnrichmentOK},
		Ranking:  Enrichment{Status: EnrichmentAbsent},
	}
	if calErr != nil {
		s.logger.WarnContext(ctx, "calendar fetch degraded, selecting from results feed only", "club", clubID, "error", calErr)
		enrichments.Calendar = Enrichment{Status: EnrichmentDegraded, Reason: calErr.Error()}
		calendar = nil
	}
	if infoErr != nil {
		s.logger.WarnContext(ctx, "club info fetch degraded, payload carries no club name", "club", clubID, "error", infoErr)
		enrichments.ClubName = Enrichment{Status: EnrichmentDegraded, Reason: infoErr.Error()}
	}

	now := s.now().UTC()
	cpNo := strings.TrimSpace(input.CompetitionID)
	selection := match.Select(results, calendar, cpNo, now)

	payload := ClubResultsPayload{
		ClubID:    clubID,
		LastMatch: matchView(selection.Last),
		NextMatch: matchView(selection.Next),
		UpdatedAt: now,
	}
	if infoErr == nil {
		payload.ClubName = strings.TrimSpace(info.Name)
		if payload.ClubName == "" {
			enrichments.ClubName = Enrichment{Status: EnrichmentAbsent}
		}
	}

	if cpNo != "" {
		summary, outcome := s.lookupRanking(ctx, cpNo, payload.ClubName)
		payload.Ranking = summary
		enrichments.Ranking = outcome
	}
	payload.Enrichments = enrichments

	if payload.LastMatch == nil && payload.NextMatch == nil {
		payload.Note = NoteNoMatches
	}
	return payload, nil
}

// fetchResultsWithFallback performs the primary results fetch. On a
// not-found answer the original candidate is resolved a second time; when
// that yields a different club number the fetch is retried exactly once. A
// second not-found propagates, there is no further loop.
func (s *ResultsService) fetchResultsWithFallback(ctx context.Context, candidate, clubID string) ([]match.Match, string, error) {
	results, err := s.gateway.ClubResults(ctx, clubID)
	if err == nil {
		return results, clubID, nil
	}
	if !IsUpstreamNotFound(err) {
		return nil, clubID, fmt.Errorf("fetch club results club=%s: %w", clubID, err)
	}

	retryID := resolveClubID(ctx, s.gateway, s.logger, candidate, s.defaultClubID)
	if retryID == clubID {
		return nil, clubID, fmt.Errorf("fetch club results club=%s: %w", clubID, err)
	}

	s.logger.InfoContext(ctx, "results fetch returned not found, retrying with re-resolved club number", "club", clubID, "retry_club", retryID)
	results, retryErr := s.gateway.ClubResults(ctx, retryID)
	if retryErr != nil {
		return nil, retryID, fmt.Errorf("fetch club results club=%s: %w", retryID, retryErr)
	}
	return results, retryID, nil
}

func (s *ResultsService) lookupRanking(ctx context.Context, cpNo, clubNameHint string) (*ranking.Summary, Enrichment) {
	entries, err := s.gateway.CompetitionRanking(ctx, cpNo)
	if err != nil {
		s.logger.WarnContext(ctx, "ranking fetch degraded, payload carries no ranking", "cp_no", cpNo, "error", err)
		return nil, Enrichment{Status: EnrichmentDegraded, Reason: err.Error()}
	}

	entry := ranking.Pick(entries, clubNameHint)
	if entry == nil {
		return nil, Enrichment{Status: EnrichmentAbsent}
	}
	summary := entry.Summarize()
	return &summary, Enrichment{Status: EnrichmentOK}
}

func matchView(m *match.Match) *MatchView {
	if m == nil {
		return nil
	}
	return &MatchView{
		Date:            m.Date,
		Time:            m.Time,
		HomeName:        m.HomeName,
		AwayName:        m.AwayName,
		HomeScore:       m.HomeScore,
		AwayScore:       m.AwayScore,
		CompetitionName: m.CompetitionName,
		CompetitionID:   m.CompetitionID,
		VenueCity:       m.VenueCity,
	}
}
