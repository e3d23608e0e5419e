package auth

import "errors"

var (
	// ErrUnauthorized indicates the caller did not prove control of the
	// claimed identity.
	ErrUnauthorized = errors.New("auth: unauthorized")

	// ErrInvalidAddress indicates an address string is not 40 hex characters.
	ErrInvalidAddress = errors.New("auth: invalid address")

	// ErrNilKey indicates a nil private key was supplied to NewSigner.
	ErrNilKey = errors.New("auth: nil private key")
)
