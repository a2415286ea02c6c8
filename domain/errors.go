package domain

import "errors"

var (
	UnexpectedDatabaseError = errors.New("database-error")
	ErrDuplicateUsername    = errors.New("duplicate-username")
	ErrDuplicateEmail       = errors.New("duplicate-email")
	ErrUserNotFound         = errors.New("user-not-found")
)

var UnexpectedPasswordHashError = errors.New("hashing-error")

var (
	UnexpectedTokenGenerationError = errors.New("token-error")
	ErrInvalidSigningMethod        = errors.New("invalid-signing-method")
	ErrExpiredToken                = errors.New("expired-token")
	ErrInvalidTokenSignature       = errors.New("invalid-token-signature")
	ErrCorruptedToken              = errors.New("corrupted-token")
)
