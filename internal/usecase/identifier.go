package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/fcvenelles/club-results/internal/platform/logging"
)

// Club numbers in the federation referential carry at least six digits. A
// shorter value cannot be an alternate club number and is never probed.
var clubNumberPattern = regexp.MustCompile(`^\d{6,}$`)

// IdentifierService reconciles caller-supplied club identifiers with the
// federation's canonical club number.
type IdentifierService struct {
	gateway       FederationGateway
	logger        *logging.Logger
	defaultClubID string
}

func NewIdentifierService(gateway FederationGateway, logger *logging.Logger, defaultClubID string) *IdentifierService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IdentifierService{
		gateway:       gateway,
		logger:        logger,
		defaultClubID: defaultClubID,
	}
}

func (s *IdentifierService) ResolveClubIdentifier(ctx context.Context, candidate string) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IdentifierService.ResolveClubIdentifier")
	defer span.End()

	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return "", fmt.Errorf("%w: club identifier is required", ErrInvalidInput)
	}

	return resolveClubID(ctx, s.gateway, s.logger, candidate, s.defaultClubID), nil
}

// resolveClubID maps a caller-supplied identifier to the canonical federation
// club number. Resolution is best-effort and never a hard failure: a failed
// probe falls back to the candidate unchanged. Only a plausible alternate
// number, six or more digits and different from the configured default, is
// probed at all.
func resolveClubID(ctx context.Context, gateway FederationGateway, logger *logging.Logger, candidate, defaultClubID string) string {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return defaultClubID
	}
	if !clubNumberPattern.MatchString(candidate) || candidate == defaultClubID {
		return candidate
	}

	info, err := gateway.ClubInfo(ctx, candidate)
	if err != nil {
		logger.WarnContext(ctx, "club identifier probe failed, keeping candidate", "candidate", candidate, "error", err)
		return candidate
	}
	if number := strings.TrimSpace(info.Number); number != "" {
		return number
	}
	return candidate
}
