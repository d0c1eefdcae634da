package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument indicates a request failed validation.
	ErrInvalidArgument = errors.New("invalid argument")
)

// InvalidArgument wraps ErrInvalidArgument with a message.
func InvalidArgument(msg string) error {
	if msg == "" {
		return ErrInvalidArgument
	}
	return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
}

// NotFound wraps ErrNotFound with the kind of record that was missing.
func NotFound(kind string) error {
	return fmt.Errorf("%s %w", kind, ErrNotFound)
}

// ProviderError is the only error kind the chat gateway returns.
// It carries the upstream message but never the SDK error value.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message
}

// EmbeddingError is the only error kind the embedding gateway returns.
type EmbeddingError struct {
	Message string
}

func (e *EmbeddingError) Error() string {
	return e.Message
}
