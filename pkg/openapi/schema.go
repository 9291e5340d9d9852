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

package openapi

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

var (
	// ErrShapeMismatch is raised when a body doesn't conform to its schema.
	ErrShapeMismatch = errors.New("response shape mismatch")

	// ErrMissingField is raised when a body lacks a required property.
	ErrMissingField = errors.New("missing field")

	// ErrUnknownSchema is raised when asked to validate against a schema
	// that isn't described.
	ErrUnknownSchema = errors.New("unknown schema")
)

//go:embed bookstore.spec.yaml
var specData []byte

//nolint:gochecknoglobals
var (
	specOnce  sync.Once
	spec      *openapi3.T
	specError error
)

// Spec returns the parsed and validated BookStore OpenAPI document.
func Spec() (*openapi3.T, error) {
	specOnce.Do(func() {
		loader := openapi3.NewLoader()

		doc, err := loader.LoadFromData(specData)
		if err != nil {
			specError = fmt.Errorf("loading openapi spec: %w", err)
			return
		}

		if err := doc.Validate(context.Background()); err != nil {
			specError = fmt.Errorf("validating openapi spec: %w", err)
			return
		}

		spec = doc
	})

	return spec, specError
}

// Schema looks up a component schema by name.
func Schema(name string) (*openapi3.Schema, error) {
	doc, err := Spec()
	if err != nil {
		return nil, err
	}

	ref, ok := doc.Components.Schemas[name]
	if !ok || ref.Value == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}

	return ref.Value, nil
}

// ValidateJSON checks a raw body against the named component schema.
// Absent required properties are reported as ErrMissingField, anything
// else that fails to conform as ErrShapeMismatch.
func ValidateJSON(name string, body []byte) error {
	schema, err := Schema(name)
	if err != nil {
		return err
	}

	var value any

	if err := json.Unmarshal(body, &value); err != nil {
		return fmt.Errorf("%w: %s: body is not JSON: %w", ErrShapeMismatch, name, err)
	}

	if err := schema.VisitJSON(value); err != nil {
		var schemaErr *openapi3.SchemaError
		if errors.As(err, &schemaErr) && schemaErr.SchemaField == "required" {
			return fmt.Errorf("%w: %s: %w", ErrMissingField, name, err)
		}

		return fmt.Errorf("%w: %s: %w", ErrShapeMismatch, name, err)
	}

	return nil
}
