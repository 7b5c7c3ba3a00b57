package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned by the checkout backend calls. Message is user-facing
// and is shown verbatim on the finish page.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return "api error"
}

type NotFoundError struct {
	Resource string
	Msg      string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

// AsAPIError reports whether err carries a typed *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var target *APIError
	if errors.As(err, &target) && target != nil {
		return target, true
	}
	return nil, false
}

// ToAPIError converts a user-facing domain error into the shape the finish
// page understands. Internal and unknown errors are returned unchanged.
func ToAPIError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsAPIError(err); ok {
		return err
	}
	var (
		validation ValidationError
		notFound   NotFoundError
		conflict   ConflictError
	)
	switch {
	case errors.As(err, &validation):
		return &APIError{Status: http.StatusBadRequest, Code: "validation_error", Message: validation.Error()}
	case errors.As(err, &notFound):
		return &APIError{Status: http.StatusNotFound, Code: "not_found", Message: notFound.Error()}
	case errors.As(err, &conflict):
		return &APIError{Status: http.StatusConflict, Code: "conflict", Message: conflict.Error()}
	default:
		return err
	}
}
