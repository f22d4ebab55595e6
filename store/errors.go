package store

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

var (
	// ErrNotFound is returned when no item exists for a key, or its configured TTL has passed.
	ErrNotFound = errors.New("movies: item not found")

	// ErrUnknownRelation is returned when a relation name is not registered.
	ErrUnknownRelation = errors.New("movies: unknown relation")
)

// OpError reports a failed DynamoDB operation. Err is the SDK error and is
// reachable through errors.As / errors.Is.
type OpError struct {
	Op    string
	Table string
	Err   error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("movies: %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the DynamoDB API error code carried by err
// (e.g. "ResourceNotFoundException"), or "" when there is none.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
