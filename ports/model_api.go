package ports

import (
	"context"

	"modelbench/domain/account"
	"modelbench/domain/history"
	"modelbench/domain/training"
)

// ModelAPI is the remote training backend
type ModelAPI interface {
	// Accounts
	Login(ctx context.Context, creds account.Credentials) error
	Signup(ctx context.Context, creds account.Credentials) error

	// Training
	Train(ctx context.Context, job training.Job) (*training.Result, error)

	// Run history
	SaveResult(ctx context.Context, run training.SavedRun) error
	History(ctx context.Context, username string) ([]history.Record, error)
	ClearHistory(ctx context.Context, username string) error
}
