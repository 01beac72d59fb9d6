package client

import "errors"

var (
	// ErrEmptyName indicates the client name is empty after trimming.
	ErrEmptyName = errors.New("client name must not be empty")
	// ErrInvalidFrequency indicates an unknown invoicing frequency.
	ErrInvalidFrequency = errors.New("invalid invoicing frequency")
	// ErrClientNotFound indicates the client doesn't exist.
	ErrClientNotFound = errors.New("client not found")
)
