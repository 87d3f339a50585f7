package chat

import "fmt"

// ValidationError rejects a message before any I/O happens
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InitializationError means a conversation could not be opened or refreshed.
// No entry is left in the store for the user.
type InitializationError struct {
	Err error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("chat initialization failed: %v", e.Err)
}

func (e *InitializationError) Unwrap() error {
	return e.Err
}

// ProviderError means every dispatch attempt failed. The user's entry is evicted.
type ProviderError struct {
	Attempts uint
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
