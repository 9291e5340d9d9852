/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"errors"
	"fmt"

	"github.com/unikorn-cloud/bookstore/pkg/openapi"
)

var (
	// ErrInvalidArgument is raised when a caller breaks a precondition.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNetwork is raised on transport failure, no response was received.
	ErrNetwork = errors.New("network error")

	// ErrUnexpectedStatusCode is raised when a status is outside the
	// expected set for a call.
	ErrUnexpectedStatusCode = errors.New("unexpected status code")

	// ErrMissingField is raised when a response lacks a required field.
	ErrMissingField = openapi.ErrMissingField

	// ErrShapeMismatch is raised when a response has the wrong shape.
	ErrShapeMismatch = openapi.ErrShapeMismatch

	// ErrEmptyResultSet is raised when a successful call yields no usable data.
	ErrEmptyResultSet = errors.New("empty result set")

	ErrUserCreationFailed       = errors.New("user creation failed")
	ErrTokenGenerationFailed    = errors.New("token generation failed")
	ErrCatalogUnavailable       = errors.New("catalog unavailable")
	ErrRentFailed               = errors.New("rent failed")
	ErrUserLookupFailed         = errors.New("user lookup failed")
	ErrUserDeletionFailed       = errors.New("user deletion failed")
	ErrAuthorizationCheckFailed = errors.New("authorization check failed")
)

// StatusError carries the context of a response whose status code was not
// one the operation accepts.  It matches both ErrUnexpectedStatusCode and
// its Kind with errors.Is.
type StatusError struct {
	Kind       error
	Method     string
	Path       string
	StatusCode int
	Body       []byte
	TraceID    string
}

func newStatusError(kind error, method, path string, resp *Response) *StatusError {
	return &StatusError{
		Kind:       kind,
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
		TraceID:    resp.TraceID,
	}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: %s %s: unexpected status code %d, body: %s (trace ID: %s)", e.Kind, e.Method, e.Path, e.StatusCode, string(e.Body), e.TraceID)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatusCode //nolint:errorlint
}

func (e *StatusError) Unwrap() error {
	return e.Kind
}
