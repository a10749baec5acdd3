package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token is malformed, its signature doesn't
	// match, or it was signed with an unexpected algorithm.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrPasswordMismatch indicates the plaintext does not match the stored hash.
	// It is an expected outcome, not a system failure.
	ErrPasswordMismatch = errors.New("password does not match")

	// ErrHashFailed indicates the password could not be hashed or compared.
	ErrHashFailed = errors.New("password hashing failed")
)
