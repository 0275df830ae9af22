// Package analysis converts raw analysis-service payloads into the canonical
// display model: five trait scores plus insight texts grouped by type.
package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Traits are the five OCEAN personality dimensions, in display order.
var Traits = []string{
	"openness",
	"conscientiousness",
	"extraversion",
	"agreeableness",
	"neuroticism",
}

// InsightGroup is one insight type with its texts in source order.
type InsightGroup struct {
	Type  string
	Texts []string
}

// Result is the canonical display model for one analysis. Immutable once
// built.
type Result struct {
	AnalyzedAt     time.Time
	Username       string // only present on history records
	TweetsAnalyzed int
	TraitScores    map[string]float64
	InsightGroups  []InsightGroup
}

// AnalyzeResponse is the raw payload of the analyze endpoint. Summary stays
// raw because its key order is meaningful and a map would lose it.
type AnalyzeResponse struct {
	TweetsAnalyzed int                `json:"tweets_analyzed"`
	AverageScores  map[string]float64 `json:"average_scores"`
	Summary        json.RawMessage    `json:"summary"`
}

// Insight is one flat (type, text) pair from a history record.
type Insight struct {
	Type string `json:"INSIGHT_TYPE"`
	Text string `json:"INSIGHT_TEXT"`
}

// Record is one stored analysis as returned by the history endpoint.
type Record struct {
	AnalysisID   int       `json:"ANALYSIS_ID"`
	Username     string    `json:"USERNAME"`
	TweetsCount  int       `json:"TWEETS_COUNT"`
	AnalysisDate string    `json:"ANALYSIS_DATE"`
	Openness     float64   `json:"AVERAGE_OPENNESS"`
	Conscient    float64   `json:"AVERAGE_CONSCIENTIOUSNESS"`
	Extraversion float64   `json:"AVERAGE_EXTRAVERSION"`
	Agreeable    float64   `json:"AVERAGE_AGREEABLENESS"`
	Neuroticism  float64   `json:"AVERAGE_NEUROTICISM"`
	Insights     []Insight `json:"insights"`
}

// FromAnalyze builds a Result from a fresh analysis payload. The service
// supplies no timestamp on this endpoint, so the caller passes the
// transformation time. Scores are copied at full precision.
func FromAnalyze(resp AnalyzeResponse, now time.Time) (Result, error) {
	groups, err := decodeSummary(resp.Summary)
	if err != nil {
		return Result{}, fmt.Errorf("decode summary: %w", err)
	}

	scores := make(map[string]float64, len(Traits))
	for _, trait := range Traits {
		scores[trait] = resp.AverageScores[trait]
	}

	return Result{
		AnalyzedAt:     now,
		TweetsAnalyzed: resp.TweetsAnalyzed,
		TraitScores:    scores,
		InsightGroups:  groups,
	}, nil
}

// FromRecord builds a Result from a stored history record. The flat insight
// list is grouped in one scan: each group is created on first sight of its
// type, so group order follows first occurrence.
func FromRecord(rec Record) Result {
	var groups []InsightGroup
	index := make(map[string]int)
	for _, in := range rec.Insights {
		i, ok := index[in.Type]
		if !ok {
			i = len(groups)
			index[in.Type] = i
			groups = append(groups, InsightGroup{Type: in.Type})
		}
		groups[i].Texts = append(groups[i].Texts, in.Text)
	}

	return Result{
		AnalyzedAt:     parseDate(rec.AnalysisDate),
		Username:       strings.TrimSpace(rec.Username),
		TweetsAnalyzed: rec.TweetsCount,
		TraitScores: map[string]float64{
			"openness":          rec.Openness,
			"conscientiousness": rec.Conscient,
			"extraversion":      rec.Extraversion,
			"agreeableness":     rec.Agreeable,
			"neuroticism":       rec.Neuroticism,
		},
		InsightGroups: groups,
	}
}

// Aggregate returns the per-trait mean across results, rounded to two
// decimals. This is the only place scores are rounded; single records keep
// full precision.
func Aggregate(results []Result) map[string]float64 {
	if len(results) == 0 {
		return nil
	}
	avg := make(map[string]float64, len(Traits))
	for _, trait := range Traits {
		var total float64
		for _, r := range results {
			total += r.TraitScores[trait]
		}
		avg[trait] = math.Round(total/float64(len(results))*100) / 100
	}
	return avg
}

// decodeSummary walks the summary object with a token decoder so that entry
// order is preserved; unmarshalling into a map would shuffle it.
func decodeSummary(raw json.RawMessage) ([]InsightGroup, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("summary is not an object")
	}

	var groups []InsightGroup
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("summary key is not a string")
		}
		var texts []string
		if err := dec.Decode(&texts); err != nil {
			return nil, fmt.Errorf("summary entry %q: %w", key, err)
		}
		groups = append(groups, InsightGroup{Type: key, Texts: texts})
	}
	return groups, nil
}

// dateLayouts covers the timestamps the service emits: RFC3339 from fresh
// analyses, SQL-style datetimes from stored records.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
