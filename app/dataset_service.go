package app

import (
	"context"
	"fmt"
	"strings"

	"modelbench/domain/core"
	"modelbench/domain/tabular"
	"modelbench/internal"
	"modelbench/ports"

	"golang.org/x/sync/semaphore"
)

// Upload is one file selected by a user
type Upload struct {
	FileName string
	Data     []byte
}

// DatasetPreview is the summary shown after a file is picked. UploadID lets
// callers drop a preview that arrives after a newer file was selected.
type DatasetPreview struct {
	UploadID  core.UploadID  `json:"upload_id"`
	FileName  string         `json:"file_name"`
	Format    tabular.Format `json:"format"`
	Checksum  string         `json:"checksum"`
	Columns   []string       `json:"columns"`
	Rows      []tabular.Row  `json:"rows"`
	TotalRows int            `json:"total_rows"`
	Truncated bool           `json:"truncated"`
}

// DatasetServiceConfig bounds upload handling
type DatasetServiceConfig struct {
	MaxFileSize     int64
	MaxConcurrent   int64
	PreviewRowLimit int
}

// DatasetService parses uploads and builds previews
type DatasetService struct {
	parser ports.TableParser
	sem    *semaphore.Weighted
	cfg    DatasetServiceConfig
	logger *internal.Logger
}

// NewDatasetService creates a dataset service
func NewDatasetService(parser ports.TableParser, cfg DatasetServiceConfig, logger *internal.Logger) *DatasetService {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 1
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DatasetService{
		parser: parser,
		sem:    semaphore.NewWeighted(cfg.MaxConcurrent),
		cfg:    cfg,
		logger: logger,
	}
}

// Parse checks the upload against the size limit and parses it. At most
// MaxConcurrent parses run at once; waiting respects ctx.
func (s *DatasetService) Parse(ctx context.Context, upload Upload) (*tabular.ParsedTable, error) {
	if strings.TrimSpace(upload.FileName) == "" {
		return nil, core.NewInvalidInputError("file name", "is required")
	}
	if s.cfg.MaxFileSize > 0 && int64(len(upload.Data)) > s.cfg.MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d byte limit", core.ErrTooLarge, len(upload.Data), s.cfg.MaxFileSize)
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.sem.Release(1)

	log := s.logger.FromContext(ctx).With("file", upload.FileName, "bytes", len(upload.Data))
	table, err := s.parser.Parse(upload.FileName, upload.Data)
	if err != nil {
		if core.IsDatasetError(err) {
			log.Warn("dataset rejected", "error", err)
		} else {
			log.Error("dataset parse failed", "error", err)
		}
		return nil, err
	}
	log.Debug("dataset parsed", "columns", len(table.Columns), "rows", len(table.Rows))
	return table, nil
}

// Preview parses the upload and returns its columns and leading rows
func (s *DatasetService) Preview(ctx context.Context, upload Upload) (*DatasetPreview, error) {
	table, err := s.Parse(ctx, upload)
	if err != nil {
		return nil, err
	}

	format, _ := tabular.DetectFormat(upload.FileName)
	head := table.Head(s.cfg.PreviewRowLimit)
	preview := &DatasetPreview{
		UploadID:  core.NewUploadID(),
		FileName:  upload.FileName,
		Format:    format,
		Checksum:  core.NewHash(upload.Data).String(),
		Columns:   table.Columns,
		Rows:      head.Rows,
		TotalRows: len(table.Rows),
		Truncated: len(head.Rows) < len(table.Rows),
	}

	s.logger.FromContext(ctx).Info("dataset previewed",
		"upload_id", preview.UploadID.String(),
		"file", upload.FileName,
		"checksum", core.Hash(preview.Checksum).Short(),
		"columns", len(preview.Columns),
		"rows", preview.TotalRows)
	return preview, nil
}

// ValidateTarget checks that target names one of the columns
func ValidateTarget(columns []string, target string) error {
	if target == "" {
		return core.NewInvalidInputError("target_column", "is required")
	}
	for _, c := range columns {
		if c == target {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", core.ErrTargetNotFound, target)
}
