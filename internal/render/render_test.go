package render

import (
	"strings"
	"testing"
	"time"

	"github.com/oceanlens/oceanlens/internal/analysis"
)

func TestHumanizeType(t *testing.T) {
	cases := map[string]string{
		"CORE_TRAIT":    "core trait",
		"WARNING":       "warning",
		"COMMUNICATION": "communication",
	}
	for in, want := range cases {
		if got := HumanizeType(in); got != want {
			t.Errorf("HumanizeType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAnalysisOutput(t *testing.T) {
	res := analysis.Result{
		AnalyzedAt:     time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
		Username:       "somebody",
		TweetsAnalyzed: 5,
		TraitScores: map[string]float64{
			"openness":          7.456,
			"conscientiousness": 5,
			"extraversion":      3.21,
			"agreeableness":     8,
			"neuroticism":       2,
		},
		InsightGroups: []analysis.InsightGroup{
			{Type: "CORE_TRAIT", Texts: []string{"X", "Y"}},
		},
	}

	out := Analysis(res, 1)
	for _, want := range []string{
		"Analysis #1 - somebody",
		"5 tweets analyzed",
		"7.456", // full precision, no rounding
		"core trait",
		"X",
		"Y",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAnalysisNoInsights(t *testing.T) {
	out := Analysis(analysis.Result{TraitScores: map[string]float64{}}, 0)
	if !strings.Contains(out, "No insights available") {
		t.Errorf("output missing no-insights notice:\n%s", out)
	}
}

func TestAveragesTwoDecimals(t *testing.T) {
	out := Averages(map[string]float64{
		"openness":          6.25,
		"conscientiousness": 5,
		"extraversion":      3.5,
		"agreeableness":     8,
		"neuroticism":       2.33,
	}, 3)
	for _, want := range []string{"Average across 3 analyses", "6.25", "5.00", "2.33"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
