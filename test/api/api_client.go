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

package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/unikorn-cloud/bookstore/pkg/constants"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// RequestOptions are the optional parts of a request.
type RequestOptions struct {
	// Headers are set verbatim, an Authorization header here takes
	// precedence over the client's token.
	Headers map[string]string

	// Body is encoded as JSON unless Headers carries an explicit
	// Content-Type, in which case []byte, string and io.Reader values
	// are sent as is.
	Body any
}

// Response is the outcome of a request that reached the server.  Non-2xx
// status codes are ordinary responses, interpreting them is up to the caller.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	// JSON is the decoded body, or nil if the body is empty or not JSON.
	JSON any

	// TraceID correlates this request with server logs.
	TraceID string
}

// Decode unmarshals the body into out.
func (r *Response) Decode(out any) error {
	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("%w: %w", ErrShapeMismatch, err)
	}

	return nil
}

type APIClient struct {
	baseURL   string
	client    Doer
	authToken string
	config    *TestConfig
	endpoints *Endpoints
}

func NewAPIClient(config *TestConfig) *APIClient {
	return NewAPIClientWithDoer(config, &http.Client{
		Timeout: config.RequestTimeout,
	})
}

// NewAPIClientWithDoer creates a client that uses the supplied transport.
func NewAPIClientWithDoer(config *TestConfig, doer Doer) *APIClient {
	return &APIClient{
		baseURL:   strings.TrimSuffix(config.BaseURL, "/"),
		client:    doer,
		config:    config,
		endpoints: NewEndpoints(),
	}
}

func (c *APIClient) SetAuthToken(token string) {
	c.authToken = token
}

func (c *APIClient) Endpoints() *Endpoints {
	return c.endpoints
}

// generateTraceID creates a new W3C trace ID.
// we are using this to create a new trace ID for each request so if an error occurs we can find the request in the logs.
func generateTraceID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	traceID := generateTraceID()
	spanID := generateSpanID()

	return fmt.Sprintf("00-%s-%s-01", traceID, spanID)
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

// headerValue does a case insensitive header lookup.
func headerValue(headers map[string]string, key string) string {
	for k, v := range headers {
		if http.CanonicalHeaderKey(k) == http.CanonicalHeaderKey(key) {
			return v
		}
	}

	return ""
}

// encodeBody turns a request body into a reader and the content type it should
// be sent with.
func encodeBody(headers map[string]string, body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}

	if contentType := headerValue(headers, "Content-Type"); contentType != "" {
		switch t := body.(type) {
		case []byte:
			return bytes.NewReader(t), contentType, nil
		case string:
			return strings.NewReader(t), contentType, nil
		case io.Reader:
			return t, contentType, nil
		}
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: marshaling request body: %w", ErrInvalidArgument, err)
	}

	return bytes.NewReader(data), "application/json", nil
}

// decodeJSON returns the generic JSON value of a body, or nil.
func decodeJSON(body []byte) any {
	if len(body) == 0 || !json.Valid(body) {
		return nil
	}

	var value any

	if err := json.Unmarshal(body, &value); err != nil {
		return nil
	}

	return value
}

// Send issues one request and returns whatever the server responded with.
// Only a failure to get a response at all is an error, and it is not retried.
//
//nolint:cyclop // test code complexity is acceptable
func (c *APIClient) Send(ctx context.Context, method, path string, options RequestOptions) (*Response, error) {
	fullURL := c.baseURL + path

	body, contentType, err := encodeBody(options.Headers, options.Body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %w", ErrInvalidArgument, err)
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	traceID := extractTraceID(traceParent)

	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=ginkgo")
	req.Header.Set("User-Agent", constants.VersionString())
	req.Header.Set("Accept", "application/json")

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	for k, v := range options.Headers {
		req.Header.Set(k, v)
	}

	log := log.FromContext(ctx).WithValues("method", method, "path", path, "traceID", traceID)

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		log.Error(err, "http request failed", "duration", duration)
		return nil, fmt.Errorf("%w: %s %s: %w (trace ID: %s)", ErrNetwork, method, path, err, traceID)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error(err, "reading response body", "duration", duration, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: %s %s: reading response body: %w (trace ID: %s)", ErrNetwork, method, path, err, traceID)
	}

	if c.config.LogRequests || c.config.DebugLogging {
		log.Info("request complete", "status", resp.StatusCode, "duration", duration)
	}

	if c.config.LogResponses && len(respBody) > 0 {
		log.Info("response body", "status", resp.StatusCode, "body", string(respBody))
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		JSON:       decodeJSON(respBody),
		TraceID:    traceID,
	}

	return result, nil
}
