/*
Copyright 2024-2025 the Unikorn Authors.
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

// Package api provides end-to-end test utilities for the BookStore API.
//
// # Separate Client Implementation
//
// This package maintains its own HTTP client (APIClient) rather than a
// generated one.  Every response is checked for the status code the
// operation expects, then validated against the embedded OpenAPI
// description in pkg/openapi before being decoded into a typed record.
// A change in the service's contract therefore shows up as a distinct
// ErrMissingField or ErrShapeMismatch instead of a zero value.
//
// The client includes features tailored for testing:
//   - W3C trace context propagation for request correlation
//   - Structured logging of failures with trace IDs
//   - Non-2xx responses returned as values for the caller to assert on
//   - Direct access to HTTP status codes and response bodies
//
// # Layout
//
//   - APIClient issues requests, BookStore wraps the endpoints as typed
//     operations.
//   - Expect* helpers return an *AssertionFailure, HaveStatus, HaveProperty
//     and ContainISBN adapt them to Gomega.
//   - Fixtures create per-spec users and schedule their deletion.
//   - Scenarios are the end-to-end flows as plain functions, used by the
//     smoke command; the Ginkgo suites live in the suites package.
package api
