package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fcvenelles/club-results/internal/domain/team"
)

func TestResolveClubTeams_CatalogWithDefaultSelection(t *testing.T) {
	t.Parallel()

	gateway := &stubFederationGateway{
		teamsByID: map[string][]team.Team{
			testDefaultClubID: {
				{Key: "SEM-2-B", Label: "Senior B"},
				{Key: "SEM-1-A", Label: "Senior A", Competitions: []team.Competition{
					{ID: "420289", Name: "D2 Seniors"},
				}},
				{Key: "U15", Label: "U15"},
			},
		},
	}
	service := NewTeamsService(gateway, nil, testDefaultClubID)

	payload, err := service.ResolveClubTeams(context.Background(), testDefaultClubID)
	if err != nil {
		t.Fatalf("ResolveClubTeams error: %v", err)
	}
	if len(payload.Teams) != 3 {
		t.Fatalf("expected 3 teams, got %d", len(payload.Teams))
	}
	if payload.DefaultTeam == nil || payload.DefaultTeam.Label != "Senior A" {
		t.Fatalf("expected Senior A default, got %+v", payload.DefaultTeam)
	}
	if len(payload.DefaultTeam.Competitions) != 1 || payload.DefaultTeam.Competitions[0].ID != "420289" {
		t.Fatalf("expected competitions carried through, got %+v", payload.DefaultTeam.Competitions)
	}
}

func TestResolveClubTeams_EmptyCatalogHasNullDefault(t *testing.T) {
	t.Parallel()

	gateway := &stubFederationGateway{
		teamsByID: map[string][]team.Team{testDefaultClubID: {}},
	}
	service := NewTeamsService(gateway, nil, testDefaultClubID)

	payload, err := service.ResolveClubTeams(context.Background(), testDefaultClubID)
	if err != nil {
		t.Fatalf("ResolveClubTeams error: %v", err)
	}
	if len(payload.Teams) != 0 {
		t.Fatalf("expected empty catalog, got %d teams", len(payload.Teams))
	}
	if payload.DefaultTeam != nil {
		t.Fatalf("expected null default team, got %+v", payload.DefaultTeam)
	}
}

func TestResolveClubTeams_UpstreamFailurePropagates(t *testing.T) {
	t.Parallel()

	upstreamDown := errors.New("federation down")
	gateway := &stubFederationGateway{teamsErr: upstreamDown}
	service := NewTeamsService(gateway, nil, testDefaultClubID)

	_, err := service.ResolveClubTeams(context.Background(), testDefaultClubID)
	if !errors.Is(err, upstreamDown) {
		t.Fatalf("expected propagated upstream failure, got %v", err)
	}
}

func TestResolveClubTeams_MissingClubIDIsInvalidInput(t *testing.T) {
	t.Parallel()

	service := NewTeamsService(&stubFederationGateway{}, nil, testDefaultClubID)

	_, err := service.ResolveClubTeams(context.Background(), "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
