package app

import (
	"bytes"
	"context"

	"modelbench/domain/account"
	"modelbench/domain/history"
	"modelbench/domain/training"
	"modelbench/internal"

	"github.com/stretchr/testify/mock"
)

// MockModelAPI is a testify mock of ports.ModelAPI
type MockModelAPI struct {
	mock.Mock
}

func (m *MockModelAPI) Login(ctx context.Context, creds account.Credentials) error {
	return m.Called(ctx, creds).Error(0)
}

func (m *MockModelAPI) Signup(ctx context.Context, creds account.Credentials) error {
	return m.Called(ctx, creds).Error(0)
}

func (m *MockModelAPI) Train(ctx context.Context, job training.Job) (*training.Result, error) {
	args := m.Called(ctx, job)
	if r := args.Get(0); r != nil {
		return r.(*training.Result), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockModelAPI) SaveResult(ctx context.Context, run training.SavedRun) error {
	return m.Called(ctx, run).Error(0)
}

func (m *MockModelAPI) History(ctx context.Context, username string) ([]history.Record, error) {
	args := m.Called(ctx, username)
	if r := args.Get(0); r != nil {
		return r.([]history.Record), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockModelAPI) ClearHistory(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

func quietLogger() *internal.Logger {
	return internal.NewLogger(internal.LogLevelError, "text", &bytes.Buffer{})
}
