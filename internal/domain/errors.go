package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest signals a request that cannot be decoded into a search.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnauthorized signals a missing or unknown API key.
	ErrUnauthorized = errors.New("unauthorized")
)

// InvalidParamError wraps ErrInvalidRequest with the offending parameter.
type InvalidParamError struct {
	Param  string
	Reason string
}

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidRequest.Error(), e.Param, e.Reason)
}

func (e *InvalidParamError) Unwrap() error { return ErrInvalidRequest }

// NewInvalidParam creates an invalid parameter error.
func NewInvalidParam(param, reason string) error {
	return &InvalidParamError{Param: param, Reason: reason}
}
