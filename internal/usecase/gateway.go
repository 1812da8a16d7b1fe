package usecase

import (
	"context"

	"github.com/fcvenelles/club-results/internal/domain/match"
	"github.com/fcvenelles/club-results/internal/domain/ranking"
	"github.com/fcvenelles/club-results/internal/domain/team"
)

// ClubInfo is the slice of the federation club document the services need.
type ClubInfo struct {
	Number string
	Name   string
}

// FederationGateway abstracts the federation API. Implementations return
// normalized domain entities and surface upstream HTTP statuses through
// UpstreamError.
type FederationGateway interface {
	ClubInfo(ctx context.Context, clubID string) (ClubInfo, error)
	ClubResults(ctx context.Context, clubID string) ([]match.Match, error)
	ClubCalendar(ctx context.Context, clubID string) ([]match.Match, error)
	ClubTeams(ctx context.Context, clubID string) ([]team.Team, error)
	CompetitionRanking(ctx context.Context, cpNo string) ([]ranking.Entry, error)
}
