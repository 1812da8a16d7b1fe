package dofa

import (
	"sort"
	"strings"

	"github.com/fcvenelles/club-results/internal/domain/match"
	"github.com/fcvenelles/club-results/internal/domain/ranking"
	"github.com/fcvenelles/club-results/internal/domain/team"
)

// Container keys under which the upstream nests its list payloads. The API
// is API Platform backed, so hydra:member comes first; the rest are legacy
// shapes still seen on older endpoints.
var (
	matchContainerKeys       = []string{"hydra:member", "resultats", "resultat", "matchs", "matches", "rencontres"}
	teamContainerKeys        = []string{"hydra:member", "equipes", "teams"}
	rankingContainerKeys     = []string{"hydra:member", "classement", "standings", "ranking"}
	competitionContainerKeys = []string{"competitions", "engagements"}
)

// collectRecords flattens a decoded list payload into raw records, whether
// the payload is a bare array or nested under one of the container keys.
func collectRecords(payload any, containerKeys []string) []map[string]any {
	switch typed := payload.(type) {
	case []any:
		out := make([]map[string]any, 0, len(typed))
		for _, item := range typed {
			if rec, ok := item.(map[string]any); ok {
				out = append(out, rec)
			}
		}
		return out
	case map[string]any:
		for _, key := range containerKeys {
			if nested, ok := typed[key]; ok {
				if records := collectRecords(nested, nil); records != nil {
					return records
				}
			}
		}
		return nil
	default:
		return nil
	}
}

// normalizeMatch maps one raw record to a canonical Match. A record without
// a parseable date is unusable and yields nil; every other field is
// best-effort. A competition id that is empty after trimming is treated as
// absent, never stored as "".
func normalizeMatch(rec map[string]any) *match.Match {
	date := firstTime(rec, dateKeys)
	if date == nil {
		return nil
	}

	out := &match.Match{
		Date:            *date,
		Time:            firstString(rec, timeKeys),
		HomeScore:       firstInt(rec, homeScoreKeys),
		AwayScore:       firstInt(rec, awayScoreKeys),
		CompetitionName: firstString(rec, competitionNameKeys),
		VenueCity:       firstString(rec, venueCityKeys),
	}
	if name := firstString(rec, homeNameKeys); name != "" {
		out.HomeName = &name
	}
	if name := firstString(rec, awayNameKeys); name != "" {
		out.AwayName = &name
	}
	if cpNo := firstString(rec, competitionIDKeys); cpNo != "" {
		out.CompetitionID = &cpNo
	}
	return out
}

// normalizeMatches applies the normalizer across a raw list payload,
// silently dropping unusable records.
func normalizeMatches(payload any) []match.Match {
	records := collectRecords(payload, matchContainerKeys)
	out := make([]match.Match, 0, len(records))
	for _, rec := range records {
		if m := normalizeMatch(rec); m != nil {
			out = append(out, *m)
		}
	}
	return out
}

// extractClubNumber pulls the canonical federation club number out of a club
// info document, or "" when none is derivable.
func extractClubNumber(doc map[string]any) string {
	return firstString(doc, clubNumberKeys)
}

func extractClubName(doc map[string]any) string {
	return firstString(doc, clubNameKeys)
}

// normalizeTeam maps one raw roster entry to a Team, or nil when no label
// can be derived. The label falls back to assembling category and number
// parts so a display name always exists for kept teams.
func normalizeTeam(rec map[string]any) *team.Team {
	categoryCode := firstString(rec, teamCategoryCodeKeys)
	number := firstString(rec, teamNumberKeys)
	code := firstString(rec, teamCodeKeys)

	label := firstString(rec, teamLabelKeys)
	if label == "" {
		parts := make([]string, 0, 2)
		if categoryLabel := firstString(rec, teamCategoryLabelKeys); categoryLabel != "" {
			parts = append(parts, categoryLabel)
		} else if categoryCode != "" {
			parts = append(parts, categoryCode)
		}
		if number != "" {
			parts = append(parts, number)
		}
		label = strings.TrimSpace(strings.Join(parts, " "))
	}
	if label == "" {
		return nil
	}

	return &team.Team{
		Key:           team.BuildKey(categoryCode, number, code, label),
		Label:         label,
		CategoryCode:  categoryCode,
		CategoryLabel: firstString(rec, teamCategoryLabelKeys),
		Number:        number,
		Code:          code,
		Competitions:  normalizeCompetitions(rec),
	}
}

// normalizeCompetitions extracts the competitions a team is engaged in.
// Entries lacking a competition number are dropped.
func normalizeCompetitions(rec map[string]any) []team.Competition {
	var raw any
	for _, key := range competitionContainerKeys {
		if nested, ok := rec[key]; ok {
			raw = nested
			break
		}
	}

	records := collectRecords(raw, nil)
	out := make([]team.Competition, 0, len(records))
	for _, item := range records {
		id := firstString(item, competitionIDKeys)
		if id == "" {
			continue
		}
		out = append(out, team.Competition{
			ID:    id,
			Name:  firstString(item, []string{"name", "nom", "libelle"}),
			Type:  firstString(item, []string{"type", "cp_type"}),
			Level: firstString(item, []string{"level", "niveau"}),
		})
	}
	return out
}

// normalizeTeams maps a raw roster payload into the club catalog, sorted by
// label the way the widget displays it.
func normalizeTeams(payload any) []team.Team {
	records := collectRecords(payload, teamContainerKeys)
	out := make([]team.Team, 0, len(records))
	for _, rec := range records {
		if t := normalizeTeam(rec); t != nil {
			out = append(out, *t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Label < out[j].Label
	})
	return out
}

// normalizeRanking extracts the valid standings rows out of a classement
// payload. A row without a parseable position is not a ranking entry and is
// silently dropped.
func normalizeRanking(payload any) []ranking.Entry {
	records := collectRecords(payload, rankingContainerKeys)
	out := make([]ranking.Entry, 0, len(records))
	for _, rec := range records {
		position := firstInt(rec, rankingPositionKeys)
		if position == nil || *position <= 0 {
			continue
		}
		out = append(out, ranking.Entry{
			Position:        *position,
			Points:          firstInt(rec, rankingPointsKeys),
			ClubName:        firstString(rec, rankingClubKeys),
			CompetitionName: firstString(rec, competitionNameKeys),
		})
	}
	return out
}
