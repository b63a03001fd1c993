package services

import "errors"

var (
	// ErrNoCredential refuses a turn before the model is contacted.
	ErrNoCredential = errors.New("no API key configured: store one with `key set`, pass --api-key or set the environment variable")
	ErrNoSession    = errors.New("chat session not found")
)
