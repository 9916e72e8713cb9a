// Package secrets resolves database credentials from a secret store.
package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when the secret id does not exist.
var ErrNotFound = errors.New("Secret not found")

// Store returns the raw payload of a named secret.
type Store interface {
	GetSecret(ctx context.Context, id string) (string, error)
}

// Credentials is the username and password pair held by a database secret.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// String hides the password so credentials can't end up in logs by accident.
func (c Credentials) String() string {
	return fmt.Sprintf("{username: %s, password: ****}", c.Username)
}

// ParseError is returned when a secret payload is not a JSON credentials object.
type ParseError struct {
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("Failed to parse secret JSON: %v", e.Err)
}

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseCredentials decodes a secret payload of the form {"username": "...", "password": "..."}.
// Both fields must be present, although either may be empty.
func ParseCredentials(payload string) (*Credentials, error) {
	var secret struct {
		Username *string `json:"username"`
		Password *string `json:"password"`
	}

	err := json.Unmarshal([]byte(payload), &secret)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	if secret.Username == nil {
		return nil, &ParseError{Err: errors.New("Secret has no username field")}
	}

	if secret.Password == nil {
		return nil, &ParseError{Err: errors.New("Secret has no password field")}
	}

	return &Credentials{Username: *secret.Username, Password: *secret.Password}, nil
}

// Resolve fetches the secret with the given id and decodes it into credentials.
// Lookup failures are returned as is, decode failures as a *ParseError.
func Resolve(ctx context.Context, store Store, id string) (*Credentials, error) {
	payload, err := store.GetSecret(ctx, id)
	if err != nil {
		return nil, err
	}

	return ParseCredentials(payload)
}
