package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fcvenelles/club-results/internal/domain/team"
	"github.com/fcvenelles/club-results/internal/platform/logging"
)

type CompetitionView struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Type  string `json:"type,omitempty"`
	Level string `json:"level,omitempty"`
}

type TeamView struct {
	Key           string            `json:"key"`
	Label         string            `json:"label"`
	CategoryCode  string            `json:"categoryCode,omitempty"`
	CategoryLabel string            `json:"categoryLabel,omitempty"`
	Number        string            `json:"number,omitempty"`
	Code          string            `json:"code,omitempty"`
	Competitions  []CompetitionView `json:"competitions"`
}

type ClubTeamsPayload struct {
	ClubID      string     `json:"clubId"`
	Teams       []TeamView `json:"teams"`
	DefaultTeam *TeamView  `json:"defaultTeam"`
}

// TeamsService resolves a club's normalized team catalog and its default
// team selection.
type TeamsService struct {
	gateway       FederationGateway
	logger        *logging.Logger
	defaultClubID string
}

func NewTeamsService(gateway FederationGateway, logger *logging.Logger, defaultClubID string) *TeamsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamsService{
		gateway:       gateway,
		logger:        logger,
		defaultClubID: defaultClubID,
	}
}

func (s *TeamsService) ResolveClubTeams(ctx context.Context, clubID string) (ClubTeamsPayload, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamsService.ResolveClubTeams")
	defer span.End()

	candidate := strings.TrimSpace(clubID)
	if candidate == "" {
		return ClubTeamsPayload{}, fmt.Errorf("%w: club identifier is required", ErrInvalidInput)
	}

	resolved := resolveClubID(ctx, s.gateway, s.logger, candidate, s.defaultClubID)
	teams, err := s.gateway.ClubTeams(ctx, resolved)
	if err != nil {
		return ClubTeamsPayload{}, fmt.Errorf("fetch club teams club=%s: %w", resolved, err)
	}

	payload := ClubTeamsPayload{
		ClubID: resolved,
		Teams:  make([]TeamView, 0, len(teams)),
	}
	for _, t := range teams {
		payload.Teams = append(payload.Teams, teamView(t))
	}
	if picked := team.SelectDefault(teams); picked != nil {
		view := teamView(*picked)
		payload.DefaultTeam = &view
	}
	return payload, nil
}

func teamView(t team.Team) TeamView {
	competitions := make([]CompetitionView, 0, len(t.Competitions))
	for _, c := range t.Competitions {
		competitions = append(competitions, CompetitionView{
			ID:    c.ID,
			Name:  c.Name,
			Type:  c.Type,
			Level: c.Level,
		})
	}
	return TeamView{
		Key:           t.Key,
		Label:         t.Label,
		CategoryCode:  t.CategoryCode,
		CategoryLabel: t.CategoryLabel,
		Number:        t.Number,
		Code:          t.Code,
		Competitions:  competitions,
	}
}
