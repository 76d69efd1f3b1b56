package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidTag   = errors.New("invalid tag")
	ErrNotConnector = errors.New("not a connector")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// TagError represents a flow tag that cannot address any connectors
type TagError struct {
	Tag    string
	Reason string
}

func (e *TagError) Error() string {
	return fmt.Sprintf("invalid tag string %q: %s", e.Tag, e.Reason)
}

func (e *TagError) Is(target error) bool {
	return target == ErrInvalidTag
}
