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

	"github.com/onsi/gomega/format"
	"github.com/onsi/gomega/types"
)

// assertionMatcher adapts an assertion helper to Gomega so suites can write
// Expect(resp).To(HaveStatus(http.StatusCreated)).
type assertionMatcher struct {
	description string
	check       func(actual any) error
	failure     *AssertionFailure
}

func (m *assertionMatcher) Match(actual any) (bool, error) {
	m.failure = nil

	err := m.check(actual)
	if err == nil {
		return true, nil
	}

	if errors.As(err, &m.failure) {
		return false, nil
	}

	return false, err
}

func (m *assertionMatcher) FailureMessage(actual any) string {
	if m.failure == nil {
		return format.Message(actual, "to "+m.description)
	}

	return format.Message(m.failure.Actual, m.failure.Message+", expected", m.failure.Expected)
}

func (m *assertionMatcher) NegatedFailureMessage(actual any) string {
	return format.Message(actual, "not to "+m.description)
}

// HaveStatus succeeds if a *Response has the status code.
func HaveStatus(expected int) types.GomegaMatcher {
	return &assertionMatcher{
		description: fmt.Sprintf("have status code %d", expected),
		check: func(actual any) error {
			resp, ok := actual.(*Response)
			if !ok {
				return fmt.Errorf("HaveStatus matcher expects a *api.Response, got %T", actual)
			}

			return ExpectStatus(resp, expected)
		},
	}
}

// HaveProperty succeeds if a JSON object, or a *Response holding one, has the
// property.
func HaveProperty(property string) types.GomegaMatcher {
	return &assertionMatcher{
		description: fmt.Sprintf("have property %q", property),
		check: func(actual any) error {
			return ExpectHasProperty(actual, property)
		},
	}
}

// ContainISBN succeeds if a *RentedCollection holds every isbn.
func ContainISBN(isbns ...string) types.GomegaMatcher {
	return &assertionMatcher{
		description: fmt.Sprintf("contain isbn %v", isbns),
		check: func(actual any) error {
			collection, ok := actual.(*RentedCollection)
			if !ok {
				return fmt.Errorf("ContainISBN matcher expects a *api.RentedCollection, got %T", actual)
			}

			return ExpectContainsISBN(collection, isbns...)
		},
	}
}
