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
	"fmt"
	"reflect"
	"strings"

	"github.com/spjmurray/go-util/pkg/set"
)

// AssertionFailure describes a failed expectation with enough context to
// reproduce the comparison.
type AssertionFailure struct {
	Expected any
	Actual   any
	Message  string
}

func (f *AssertionFailure) Error() string {
	return fmt.Sprintf("assertion failed: %s: expected %v, got %v", f.Message, f.Expected, f.Actual)
}

func fail(expected, actual any, format string, args ...any) error {
	return &AssertionFailure{
		Expected: expected,
		Actual:   actual,
		Message:  fmt.Sprintf(format, args...),
	}
}

// jsonOf unwraps a response to its decoded body, anything else is returned as is.
func jsonOf(value any) any {
	if resp, ok := value.(*Response); ok {
		return resp.JSON
	}

	return value
}

// ExpectStatus checks a response has the expected status code.
func ExpectStatus(resp *Response, expected int) error {
	if resp == nil {
		return fail(expected, nil, "expected a response")
	}

	if resp.StatusCode != expected {
		return fail(expected, resp.StatusCode, "status code mismatch, body: %s (trace ID: %s)", string(resp.Body), resp.TraceID)
	}

	return nil
}

// ExpectHasProperty checks a JSON object, or a response whose body is one,
// has the property.  Dotted names descend into nested objects.
func ExpectHasProperty(value any, property string) error {
	current := jsonOf(value)

	for _, key := range strings.Split(property, ".") {
		object, ok := current.(map[string]any)
		if !ok {
			return fail("object", reflect.TypeOf(current), "expected an object holding property %q", property)
		}

		if current, ok = object[key]; !ok {
			return fail(property, keys(object), "missing property")
		}
	}

	return nil
}

func keys(object map[string]any) []string {
	out := make([]string, 0, len(object))

	for k := range object {
		out = append(out, k)
	}

	return out
}

// ExpectNonEmptyArray checks a value is an array or slice with at least one element.
func ExpectNonEmptyArray(value any) error {
	value = jsonOf(value)

	v := reflect.ValueOf(value)

	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return fail("array", reflect.TypeOf(value), "expected an array")
	}

	if v.Len() == 0 {
		return fail("at least 1 element", 0, "expected a non-empty array")
	}

	return nil
}

// ExpectNonEmptyString checks a value is a string with content.
func ExpectNonEmptyString(value any, name string) error {
	s, ok := value.(string)
	if !ok {
		return fail("string", reflect.TypeOf(value), "expected %s to be a string", name)
	}

	if s == "" {
		return fail("non-empty string", `""`, "expected %s to be non-empty", name)
	}

	return nil
}

// ExpectEqual checks two values are deeply equal.
func ExpectEqual(expected, actual any, message string) error {
	if !reflect.DeepEqual(expected, actual) {
		return fail(expected, actual, "%s", message)
	}

	return nil
}

// ExpectContainsISBN checks every isbn is present in the collection.
func ExpectContainsISBN(collection *RentedCollection, isbns ...string) error {
	if collection == nil {
		return fail(isbns, nil, "expected a collection")
	}

	present := collection.ISBNs()

	requested := set.New[string](isbns...)
	returned := set.New[string](present...)

	missing := requested.Difference(returned)

	var absent []string

	for isbn := range missing.All() {
		absent = append(absent, isbn)
	}

	if len(absent) > 0 {
		return fail(isbns, present, "collection is missing isbn %s", strings.Join(absent, ", "))
	}

	return nil
}
