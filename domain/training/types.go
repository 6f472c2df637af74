// Package training describes a model training run submitted to the remote API.
package training

import (
	"modelbench/domain/catalog"
	"modelbench/domain/core"
)

// DefaultUsername is used when a run is submitted without a user.
const DefaultUsername = "guest"

// Job is one training submission: the raw dataset file plus the model and
// target chosen for it.
type Job struct {
	Model        catalog.Model
	TargetColumn string
	FileName     string
	Data         []byte
	Network      *catalog.NetworkConfig // only for configurable models
}

// Result is the training API's reply for a successful run
type Result struct {
	Model              string         `json:"model"`
	ModelType          string         `json:"model_type,omitempty"`
	Message            string         `json:"message,omitempty"`
	Metrics            map[string]any `json:"metrics"`
	Coefficients       any            `json:"coefficients,omitempty"`
	Intercept          any            `json:"intercept,omitempty"`
	Parameters         map[string]any `json:"parameters,omitempty"`
	PredictionsPreview []any          `json:"predictions_preview,omitempty"`
}

// SavedRun is the record persisted for later comparison
type SavedRun struct {
	Username     string         `json:"username"`
	DatasetName  string         `json:"dataset_name"`
	ModelType    string         `json:"model_type"`
	TargetColumn string         `json:"target_column"`
	Metrics      map[string]any `json:"metrics"`
}

// Run is a completed training submission as reported to callers
type Run struct {
	ID       core.ID `json:"id"`
	Username string  `json:"username"`
	Dataset  string  `json:"dataset"`
	Checksum string  `json:"checksum"`
	Model    string  `json:"model"`
	Target   string  `json:"target_column"`
	Result   Result  `json:"result"`
	Saved    bool    `json:"saved"`
}

// ModelTypeOr returns the model name to record for this run. The API's own
// model_type wins over the display name that was requested.
func (r Result) ModelTypeOr(requested string) string {
	if r.ModelType != "" {
		return r.ModelType
	}
	return requested
}
