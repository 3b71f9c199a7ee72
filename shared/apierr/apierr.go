// Copyright 2025 OceanKit
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package apierr defines the error taxonomy shared by the gateway and its
// cloud adapters. Validation errors are caller faults and map to HTTP 400;
// dependency errors are upstream faults and map to HTTP 500. The HTTP
// mapping itself lives in the gateway response wrapper, never here.
package apierr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for status-code mapping.
type Kind int

const (
	// KindValidation marks a caller fault: missing or malformed input,
	// or a resource that was expected to exist but does not.
	KindValidation Kind = iota
	// KindDependency marks an upstream fault: a remote call failed or
	// returned something unusable.
	KindDependency
)

// Error is a typed gateway error, optionally enriched with the diagnostic
// fields the vendor exposed (an error code and a details string).
type Error struct {
	Kind    Kind
	Message string
	Code    string
	Details string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg += " (code: " + e.Code + ")"
	}
	if e.Details != "" {
		msg += " - " + e.Details
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Validationf creates a caller-fault error.
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Dependencyf creates an upstream-fault error.
func Dependencyf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindDependency, Message: fmt.Sprintf(format, args...)}
}

// Dependency creates an upstream-fault error wrapping a vendor error and
// carrying whatever diagnostics the vendor exposed.
func Dependency(message, code, details string, cause error) *Error {
	return &Error{
		Kind:    KindDependency,
		Message: message,
		Code:    code,
		Details: details,
		Cause:   cause,
	}
}

// IsValidation reports whether err is a caller-fault error.
func IsValidation(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindValidation
}

// IsDependency reports whether err is an upstream-fault error.
func IsDependency(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindDependency
}
