package app

import (
	"context"
	"strings"

	"modelbench/domain/core"
	"modelbench/domain/history"
	"modelbench/internal"
	"modelbench/ports"
)

// Comparisons is a user's saved runs grouped by dataset
type Comparisons struct {
	Username string          `json:"username"`
	Total    int             `json:"total"`
	Groups   []history.Group `json:"groups"`
}

// HistoryService reads and clears saved runs
type HistoryService struct {
	api    ports.ModelAPI
	logger *internal.Logger
}

// NewHistoryService creates a history service
func NewHistoryService(api ports.ModelAPI, logger *internal.Logger) *HistoryService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &HistoryService{api: api, logger: logger}
}

// Comparisons fetches a user's runs and groups them by dataset
func (s *HistoryService) Comparisons(ctx context.Context, username string) (*Comparisons, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, core.NewInvalidInputError("username", "is required")
	}

	records, err := s.api.History(ctx, username)
	if err != nil {
		s.logger.FromContext(ctx).Error("history fetch failed", "user", username, "error", err)
		return nil, err
	}

	return &Comparisons{
		Username: username,
		Total:    len(records),
		Groups:   history.GroupByDataset(records),
	}, nil
}

// Clear deletes all of a user's saved runs
func (s *HistoryService) Clear(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return core.NewInvalidInputError("username", "is required")
	}

	if err := s.api.ClearHistory(ctx, username); err != nil {
		s.logger.FromContext(ctx).Error("history clear failed", "user", username, "error", err)
		return err
	}
	s.logger.FromContext(ctx).Info("history cleared", "user", username)
	return nil
}
