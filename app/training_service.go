package app

import (
	"context"
	"fmt"
	"strings"

	"modelbench/domain/catalog"
	"modelbench/domain/core"
	"modelbench/domain/training"
	"modelbench/internal"
	"modelbench/ports"
)

// TrainRequest is one training submission
type TrainRequest struct {
	Username     string
	Model        string // display name or slug
	TargetColumn string
	Upload       Upload
	Network      *catalog.NetworkConfig
}

// TrainingService validates submissions, forwards them to the training API
// and records successful runs
type TrainingService struct {
	datasets *DatasetService
	api      ports.ModelAPI
	logger   *internal.Logger
}

// NewTrainingService creates a training service
func NewTrainingService(datasets *DatasetService, api ports.ModelAPI, logger *internal.Logger) *TrainingService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &TrainingService{datasets: datasets, api: api, logger: logger}
}

// Train runs one model on the uploaded dataset. A failure to save the run
// for comparison is logged and reported through Run.Saved, not returned.
func (s *TrainingService) Train(ctx context.Context, req TrainRequest) (*training.Run, error) {
	model, err := catalog.Lookup(req.Model)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, req.Model)
	}

	var network *catalog.NetworkConfig
	if model.Configurable {
		cfg := catalog.DefaultNetworkConfig()
		if req.Network != nil {
			cfg = *req.Network
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		network = &cfg
	}

	table, err := s.datasets.Parse(ctx, req.Upload)
	if err != nil {
		return nil, err
	}
	if err := ValidateTarget(table.Columns, req.TargetColumn); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = training.DefaultUsername
	}
	log := s.logger.FromContext(ctx).With("model", model.Slug, "file", req.Upload.FileName, "user", username)
	log.Info("training submitted", "target", req.TargetColumn, "rows", len(table.Rows))

	result, err := s.api.Train(ctx, training.Job{
		Model:        model,
		TargetColumn: req.TargetColumn,
		FileName:     req.Upload.FileName,
		Data:         req.Upload.Data,
		Network:      network,
	})
	if err != nil {
		log.Error("training failed", "error", err)
		return nil, err
	}

	run := &training.Run{
		ID:       core.NewID(),
		Username: username,
		Dataset:  req.Upload.FileName,
		Checksum: core.NewHash(req.Upload.Data).String(),
		Model:    model.Name,
		Target:   req.TargetColumn,
		Result:   *result,
	}

	saveErr := s.api.SaveResult(ctx, training.SavedRun{
		Username:     username,
		DatasetName:  req.Upload.FileName,
		ModelType:    result.ModelTypeOr(model.Name),
		TargetColumn: req.TargetColumn,
		Metrics:      result.Metrics,
	})
	if saveErr != nil {
		log.Warn("run not saved", "run_id", run.ID.String(), "error", saveErr)
	} else {
		run.Saved = true
	}

	log.Info("training completed", "run_id", run.ID.String(), "saved", run.Saved)
	return run, nil
}
