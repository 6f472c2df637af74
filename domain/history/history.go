// Package history groups saved training runs for side-by-side comparison.
package history

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/tidwall/gjson"
)

// UnknownDataset labels runs saved without a dataset name.
const UnknownDataset = "Unknown Dataset"

// Record is one saved run as returned by the history endpoint. Metrics may be
// a JSON object or a plain string depending on how it was stored.
type Record struct {
	DatasetName  string          `json:"dataset_name"`
	Model        string          `json:"model"`
	ModelType    string          `json:"model_type,omitempty"`
	TargetColumn string          `json:"target_column,omitempty"`
	Metric       *float64        `json:"metric,omitempty"`
	MetricValue  *float64        `json:"metric_value,omitempty"`
	Metrics      json.RawMessage `json:"metrics,omitempty"`
	CreatedAt    string          `json:"created_at,omitempty"`
}

// Group is the runs of one dataset in the order they were returned
type Group struct {
	DatasetName string        `json:"dataset_name"`
	Records     []Record      `json:"records"`
	BestModel   string        `json:"best_model,omitempty"`
	Scores      *ScoreSummary `json:"scores,omitempty"`
}

// ScoreSummary describes the spread of scores within a group. Only runs with
// a score are counted.
type ScoreSummary struct {
	Scored int     `json:"scored"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// DisplayModel returns the model name, falling back to model_type
func (r Record) DisplayModel() string {
	if r.Model != "" {
		return r.Model
	}
	return r.ModelType
}

// Score returns the comparable value for the run: metric_value, then metric,
// then accuracy, r2 or 1/mse from the metrics object. Higher is better.
func (r Record) Score() (float64, bool) {
	if r.MetricValue != nil {
		return *r.MetricValue, true
	}
	if r.Metric != nil {
		return *r.Metric, true
	}

	// Older runs stored metrics as a JSON-encoded string
	metrics := gjson.ParseBytes(r.Metrics)
	if metrics.Type == gjson.String {
		metrics = gjson.Parse(metrics.Str)
	}
	if !metrics.IsObject() {
		return 0, false
	}
	for _, key := range []string{"accuracy", "r2_score", "r2"} {
		if v := metrics.Get(key); v.Type == gjson.Number {
			return v.Float(), true
		}
	}
	if mse := metrics.Get("mse"); mse.Type == gjson.Number && mse.Float() > 0 {
		return 1 / mse.Float(), true
	}
	return 0, false
}

// GroupByDataset buckets records by dataset name in first-seen order. Blank
// names are grouped under UnknownDataset.
func GroupByDataset(records []Record) []Group {
	groups := []Group{}
	index := make(map[string]int)

	for _, rec := range records {
		name := strings.TrimSpace(rec.DatasetName)
		if name == "" {
			name = UnknownDataset
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group{DatasetName: name})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}

	for i := range groups {
		groups[i].BestModel = bestModel(groups[i].Records)
		groups[i].Scores = summarize(groups[i].Records)
	}
	return groups
}

func bestModel(records []Record) string {
	best, name := math.Inf(-1), ""
	for _, rec := range records {
		if s, ok := rec.Score(); ok && s > best {
			best, name = s, rec.DisplayModel()
		}
	}
	return name
}

// summarize returns nil when no record in the group has a score
func summarize(records []Record) *ScoreSummary {
	var scores stats.Float64Data
	for _, rec := range records {
		if s, ok := rec.Score(); ok {
			scores = append(scores, s)
		}
	}
	if len(scores) == 0 {
		return nil
	}

	summary := &ScoreSummary{Scored: len(scores)}
	var err error
	if summary.Min, err = scores.Min(); err != nil {
		return nil
	}
	if summary.Max, err = scores.Max(); err != nil {
		return nil
	}
	if summary.Mean, err = scores.Mean(); err != nil {
		return nil
	}
	if summary.Median, err = scores.Median(); err != nil {
		return nil
	}
	return summary
}
