// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrPermission         = errors.New("permission denied")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrLoginRequired      = errors.New("login required")
)

// ValidationError reports malformed input keyed by the offending field.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	e := &ValidationError{}
	e.Add(field, message)
	return e
}

// Add records message for field, keeping the first message per field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// Merge copies other's fields into e. A nil other is ignored.
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for f, m := range other.Fields {
		e.Add(f, m)
	}
}

func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
