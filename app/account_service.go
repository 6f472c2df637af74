package app

import (
	"context"
	"errors"

	"modelbench/domain/account"
	"modelbench/domain/core"
	"modelbench/internal"
	"modelbench/ports"
)

// AccountService signs users in and up through the model API
type AccountService struct {
	api    ports.ModelAPI
	logger *internal.Logger
}

// NewAccountService creates an account service
func NewAccountService(api ports.ModelAPI, logger *internal.Logger) *AccountService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &AccountService{api: api, logger: logger}
}

// Login verifies credentials and returns the session to train and compare
// runs under
func (s *AccountService) Login(ctx context.Context, creds account.Credentials) (*account.Session, error) {
	creds = creds.Normalize()
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	log := s.logger.FromContext(ctx).With("user", creds.Username)
	if err := s.api.Login(ctx, creds); err != nil {
		if errors.Is(err, core.ErrUnauthorized) {
			log.Warn("login rejected")
		} else {
			log.Error("login failed", "error", err)
		}
		return nil, err
	}
	log.Info("user logged in")
	return &account.Session{Username: creds.Username}, nil
}

// Signup registers a new user and signs them in
func (s *AccountService) Signup(ctx context.Context, creds account.Credentials) (*account.Session, error) {
	creds = creds.Normalize()
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	log := s.logger.FromContext(ctx).With("user", creds.Username)
	if err := s.api.Signup(ctx, creds); err != nil {
		if errors.Is(err, core.ErrConflict) {
			log.Warn("signup rejected", "error", err)
		} else {
			log.Error("signup failed", "error", err)
		}
		return nil, err
	}
	log.Info("user signed up")
	return &account.Session{Username: creds.Username}, nil
}
