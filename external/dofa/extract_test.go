package dofa

import (
	"testing"
	"time"
)

func TestFirstString_HonorsKeyOrder(t *testing.T) {
	t.Parallel()

	rec := map[string]any{
		"dateMatch": "2026-03-02",
		"date":      "2026-03-01",
	}

	if got := firstString(rec, dateKeys); got != "2026-03-01" {
		t.Fatalf("expected primary key to win, got=%q", got)
	}
}

func TestFirstString_SkipsEmptyAndWhitespace(t *testing.T) {
	t.Parallel()

	rec := map[string]any{
		"time":  "   ",
		"heure": "15:00",
	}

	if got := firstString(rec, timeKeys); got != "15:00" {
		t.Fatalf("expected fallback key value, got=%q", got)
	}
}

func TestLookup_WalksDottedPathsThroughDataWrappers(t *testing.T) {
	t.Parallel()

	rec := map[string]any{
		"competition": map[string]any{
			"data": map[string]any{
				"cp_no": float64(420289),
			},
		},
	}

	if got := firstString(rec, competitionIDKeys); got != "420289" {
		t.Fatalf("expected nested cp_no, got=%q", got)
	}
}

func TestFirstInt_CoercesNumericShapes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		rec  map[string]any
		want int
	}{
		{"float64", map[string]any{"home_score": float64(2)}, 2},
		{"numeric string", map[string]any{"home_score": "3"}, 3},
		{"zero is a value", map[string]any{"home_score": float64(0)}, 0},
	}

	for _, tc := range cases {
		got := firstInt(tc.rec, homeScoreKeys)
		if got == nil || *got != tc.want {
			t.Fatalf("%s: expected %d, got=%v", tc.name, tc.want, got)
		}
	}
}

func TestFirstInt_ReturnsNilWhenAbsentOrUnparseable(t *testing.T) {
	t.Parallel()

	if got := firstInt(map[string]any{}, homeScoreKeys); got != nil {
		t.Fatalf("expected nil for absent score, got=%v", *got)
	}
	if got := firstInt(map[string]any{"home_score": "abandonné"}, homeScoreKeys); got != nil {
		t.Fatalf("expected nil for unparseable score, got=%v", *got)
	}
}

func TestParseUpstreamDate_Layouts(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2026-03-01T15:00:00+01:00", time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)},
		{"2026-03-01T15:00:00", time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)},
		{"2026-03-01 15:00:00", time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)},
		{"2026-03-01", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		got := parseUpstreamDate(tc.raw)
		if got == nil {
			t.Fatalf("%q: expected a parsed date", tc.raw)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("%q: expected %s, got=%s", tc.raw, tc.want, got)
		}
	}

	if got := parseUpstreamDate("demain"); got != nil {
		t.Fatalf("expected nil for garbage date, got=%s", got)
	}
}
