package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserExists           = errors.New("user already exists")
	ErrIncorrectCredentials = errors.New("incorrect credentials")
	ErrCustomerNotFound     = errors.New("referenced customer does not exist")
)

// Message is a user-facing outcome of a write operation.
type Message struct {
	Text string
}

// StoreError is returned when the invoice store rejects a write. Its Message
// carries a summarized cause rather than the raw driver error, so internals
// never reach the submitter.
type StoreError struct {
	Op    string
	Cause error
}

func NewStoreError(op string, cause error) *StoreError {
	return &StoreError{Op: op, Cause: cause}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store rejected %s: %v", e.Op, e.Cause)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

func (e *StoreError) Message() Message {
	return Message{Text: fmt.Sprintf("Database Error: %s. Failed to %s.", summarize(e.Cause), e.Op)}
}

func summarize(err error) string {
	if errors.Is(err, ErrCustomerNotFound) {
		return "referenced customer does not exist"
	}

	return "the invoice store rejected the operation"
}
