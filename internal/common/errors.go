// Package common defines shared constants and sentinel errors used across
// LoveLab components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Codec errors.
	ErrEncodeFailure     = errors.New("encode failure")
	ErrMalformedToken    = errors.New("malformed token")
	ErrIncorrectPassword = errors.New("incorrect password")
	// ErrPasswordRequired is a control-flow signal rather than a failure:
	// the token is encrypted and no password was supplied.
	ErrPasswordRequired = errors.New("password required")

	// Link service errors.
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidPayload   = errors.New("invalid payload")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
)
