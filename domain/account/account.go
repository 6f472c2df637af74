// Package account holds the credentials users sign in with. Training runs and
// history are kept under the signed-in username.
package account

import (
	"strings"

	"modelbench/domain/core"
)

// Credentials is a username and password pair as the model API expects it
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Normalize trims surrounding whitespace from the username. The password is
// kept as typed.
func (c Credentials) Normalize() Credentials {
	c.Username = strings.TrimSpace(c.Username)
	return c
}

// Validate requires both fields
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return core.NewInvalidInputError("username", "is required")
	}
	if c.Password == "" {
		return core.NewInvalidInputError("password", "is required")
	}
	return nil
}

// Session identifies a signed-in user
type Session struct {
	Username string `json:"username"`
}
