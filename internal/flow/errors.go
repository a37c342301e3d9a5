package flow

import (
	"errors"
	"fmt"
)

// Kind classifies flow failures for the transport layer.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindNotAuthorized Kind = "not_authorized"
	KindEmptyContent  Kind = "empty_content"
	KindDataAccess    Kind = "data_access"
	KindGeneration    Kind = "generation"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of a flow error, or "" for any other error.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// ErrorResult is the uniform failure shape handed to transports.
type ErrorResult struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Public converts err into an ErrorResult safe to show to the caller.
// Ownership failures are reported exactly like missing documents.
func Public(err error) ErrorResult {
	var fe *Error
	if !errors.As(err, &fe) {
		return ErrorResult{Kind: KindGeneration, Message: "flow failed"}
	}
	switch fe.Kind {
	case KindNotFound, KindNotAuthorized:
		return ErrorResult{Kind: KindNotFound, Message: notFoundMessage}
	case KindDataAccess:
		return ErrorResult{Kind: fe.Kind, Message: "failed to read documents"}
	case KindGeneration:
		return ErrorResult{Kind: fe.Kind, Message: "model call failed"}
	default:
		return ErrorResult{Kind: fe.Kind, Message: fe.Message}
	}
}

const notFoundMessage = "page not found for the current user"
