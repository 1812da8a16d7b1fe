package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fcvenelles/club-results/internal/domain/ranking"
	"github.com/fcvenelles/club-results/internal/platform/logging"
)

// RankingService resolves a single ranking line out of a competition
// standings table.
type RankingService struct {
	gateway FederationGateway
	logger  *logging.Logger
}

func NewRankingService(gateway FederationGateway, logger *logging.Logger) *RankingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RankingService{
		gateway: gateway,
		logger:  logger,
	}
}

// ResolveRanking returns nil without error when no competition number is
// supplied or when the standings hold no valid entry.
func (s *RankingService) ResolveRanking(ctx context.Context, cpNo, clubNameHint string) (*ranking.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.ResolveRanking")
	defer span.End()

	cpNo = strings.TrimSpace(cpNo)
	if cpNo == "" {
		return nil, nil
	}

	entries, err := s.gateway.CompetitionRanking(ctx, cpNo)
	if err != nil {
		return nil, fmt.Errorf("fetch competition ranking cp_no=%s: %w", cpNo, err)
	}

	entry := ranking.Pick(entries, strings.TrimSpace(clubNameHint))
	if entry == nil {
		return nil, nil
	}
	summary := entry.Summarize()
	return &summary, nil
}
