package container

import (
	"fmt"

	"modelbench/adapters/api"
	"modelbench/adapters/sniffer"
	"modelbench/app"
	"modelbench/internal"
	"modelbench/internal/config"
	"modelbench/ports"
	"modelbench/ui"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Adapters
	Parser   ports.TableParser
	ModelAPI ports.ModelAPI

	// Services
	Accounts *app.AccountService
	Datasets *app.DatasetService
	Training *app.TrainingService
	History  *app.HistoryService
}

// New wires adapters and services from configuration
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	client, err := api.NewClient(api.Config{
		BaseURL: cfg.ModelAPI.URL,
		Timeout: cfg.ModelAPI.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("model API client: %w", err)
	}

	c := &Container{
		Config:   cfg,
		Logger:   logger,
		Parser:   sniffer.New(sniffer.Options{PadShortRows: cfg.Upload.PadShortRows}),
		ModelAPI: client,
	}

	c.Accounts = app.NewAccountService(c.ModelAPI, logger)
	c.Datasets = app.NewDatasetService(c.Parser, app.DatasetServiceConfig{
		MaxFileSize:     cfg.Upload.MaxFileSize,
		MaxConcurrent:   cfg.Upload.MaxConcurrent,
		PreviewRowLimit: cfg.Upload.PreviewRowLimit,
	}, logger)
	c.Training = app.NewTrainingService(c.Datasets, c.ModelAPI, logger)
	c.History = app.NewHistoryService(c.ModelAPI, logger)

	logger.Debug("container initialized",
		"model_api", cfg.ModelAPI.URL,
		"max_file_size", cfg.Upload.MaxFileSize,
		"max_concurrent", cfg.Upload.MaxConcurrent)
	return c, nil
}

// Server builds the HTTP server over the container's services
func (c *Container) Server() *ui.Server {
	return ui.NewServer(ui.Services{
		Accounts: c.Accounts,
		Datasets: c.Datasets,
		Training: c.Training,
		History:  c.History,
	}, c.Config.Upload.MaxFileSize, c.Logger)
}
