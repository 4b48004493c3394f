// Package validator accumulates field-level validation errors into a map.
package validator

import (
	"strings"
	"unicode/utf8"
)

// Validator holds field names mapped to their first validation failure.
// An empty Errors map means valid.
type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records key as failing. The first failure for a key wins.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check adds an error for key only when ok is false:
//
//	v.Check(validator.NotBlank(title), "title", "must be provided")
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// Merge copies the errors of other under prefix, e.g. "books[0].title".
func (v *Validator) Merge(prefix string, other *Validator) {
	for k, msg := range other.Errors {
		v.AddError(prefix+"."+k, msg)
	}
}

// NotBlank reports whether s has any non-whitespace content.
func NotBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// MaxChars reports whether s is at most n characters long.
func MaxChars(s string, n int) bool {
	return utf8.RuneCountInString(s) <= n
}
