package query

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a programming or wiring fault: a missing
// mapping, a malformed route template, a sort target the query cannot
// resolve. It is a server fault and is never shown to clients verbatim.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return "query configuration: " + e.Msg
}

func configErrorf(format string, args ...any) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

// InvalidSortFieldError is returned when an orderBy clause names a field
// that has no mapping for the requested resource.
type InvalidSortFieldError struct {
	Field string
}

func (e *InvalidSortFieldError) Error() string {
	return fmt.Sprintf("invalid sort field %q", e.Field)
}

// UnknownFieldError is returned when a fields token does not exist on the
// shaped type.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}

// InvalidPageError is returned for paging values that are not positive integers.
type InvalidPageError struct {
	Param string
	Value string
}

func (e *InvalidPageError) Error() string {
	return fmt.Sprintf("invalid %s %q: must be a positive integer", e.Param, e.Value)
}

// AsClientError returns the innermost client error wrapped by err, if any.
func AsClientError(err error) (error, bool) {
	var sortErr *InvalidSortFieldError
	if errors.As(err, &sortErr) {
		return sortErr, true
	}
	var fieldErr *UnknownFieldError
	if errors.As(err, &fieldErr) {
		return fieldErr, true
	}
	var pageErr *InvalidPageError
	if errors.As(err, &pageErr) {
		return pageErr, true
	}
	return nil, false
}

// IsClientError reports whether err was caused by bad client input.
func IsClientError(err error) bool {
	_, ok := AsClientError(err)
	return ok
}
