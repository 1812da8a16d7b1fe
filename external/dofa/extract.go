package dofa

import (
	"strconv"
	"strings"
	"time"
)

// The upstream has gone through several schema generations and the same
// concept shows up under different key names depending on the endpoint and
// its age. Each semantic field therefore carries an ordered candidate list:
// the first key that yields a usable value wins, even when a later key would
// also match. Dotted candidates probe nested objects (API Platform relations
// like competition.cp_no). Reordering any of these lists changes observable
// behavior against live data.
var (
	dateKeys      = []string{"date", "dateMatch", "journee", "jour"}
	timeKeys      = []string{"time", "heure", "horaire"}
	homeNameKeys  = []string{"home_name", "homeName", "home.short_name", "home.name", "equipeDomicile"}
	awayNameKeys  = []string{"away_name", "awayName", "away.short_name", "away.name", "equipeExterieur"}
	homeScoreKeys = []string{"home_score", "homeScore", "butsPour", "score_domicile"}
	awayScoreKeys = []string{"away_score", "awayScore", "butsContre", "score_exterieur"}

	competitionNameKeys = []string{"competition.name", "competition", "competitionLibelle", "competitionLabel"}
	competitionIDKeys   = []string{"competition.cp_no", "cp_no", "cpNo", "competitionId", "cpno"}
	venueCityKeys       = []string{"terrain.city", "terrain.libelle", "ville", "venueCity"}

	clubNumberKeys = []string{"cl_no", "clNo", "club.cl_no", "numero"}
	clubNameKeys   = []string{"name", "nom", "club.name"}

	teamLabelKeys         = []string{"nomEquipe", "libelleEquipe", "libelle", "name", "equipe"}
	teamCategoryCodeKeys  = []string{"category_code", "categorie", "categorieCode"}
	teamCategoryLabelKeys = []string{"category_label", "categorieLibelle", "categoryLabel"}
	teamNumberKeys        = []string{"number", "numero"}
	teamCodeKeys          = []string{"code"}

	rankingPositionKeys = []string{"rank", "position", "rang", "classement"}
	rankingPointsKeys   = []string{"point_count", "points", "pts", "totalPoints"}
	rankingClubKeys     = []string{"equipe.short_name", "equipe.club.name", "club_name", "nom", "name"}
)

// lookup resolves one candidate key against a raw record. Dotted keys walk
// nested maps; API Platform sometimes wraps relations one level deeper under
// "data", which is unwrapped transparently.
func lookup(rec map[string]any, key string) any {
	if rec == nil {
		return nil
	}

	current := any(rec)
	for _, part := range strings.Split(key, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		if nested, ok := node["data"].(map[string]any); ok {
			if _, direct := node[part]; !direct {
				node = nested
			}
		}
		current = node[part]
		if current == nil {
			return nil
		}
	}
	return current
}

// firstString returns the first non-empty string among the candidate keys.
func firstString(rec map[string]any, keys []string) string {
	for _, key := range keys {
		if value := asString(lookup(rec, key)); value != "" {
			return value
		}
	}
	return ""
}

// firstInt returns the first value among the candidate keys that reads as an
// integer, accepting both numeric and numeric-string representations.
func firstInt(rec map[string]any, keys []string) *int {
	for _, key := range keys {
		if value, ok := asInt(lookup(rec, key)); ok {
			return &value
		}
	}
	return nil
}

// firstTime returns the first candidate value that parses as a date. Values
// that are present but unparseable are skipped, never defaulted.
func firstTime(rec map[string]any, keys []string) *time.Time {
	for _, key := range keys {
		if parsed := parseUpstreamDate(asString(lookup(rec, key))); parsed != nil {
			return parsed
		}
	}
	return nil
}

func asString(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		if typed == float64(int64(typed)) {
			return strconv.FormatInt(int64(typed), 10)
		}
		return ""
	default:
		return ""
	}
}

func asInt(value any) (int, bool) {
	switch typed := value.(type) {
	case float64:
		return int(typed), true
	case int:
		return typed, true
	case int64:
		return int(typed), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(typed))
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func parseUpstreamDate(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			utc := parsed.UTC()
			return &utc
		}
	}
	return nil
}
