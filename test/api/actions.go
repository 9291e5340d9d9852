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
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/unikorn-cloud/bookstore/pkg/openapi"

	"k8s.io/utils/ptr"
)

// tokenStatusSuccess is the token response status of a successful login.
const tokenStatusSuccess = "Success"

// BookStore wraps the service's endpoints as typed operations.  Every
// response is checked for the status code the operation expects before
// its body is validated against the service's schema and decoded.
type BookStore struct {
	client    *APIClient
	endpoints *Endpoints
}

func NewBookStore(client *APIClient) *BookStore {
	return &BookStore{
		client:    client,
		endpoints: client.Endpoints(),
	}
}

// Client returns the underlying client for raw requests.
func (b *BookStore) Client() *APIClient {
	return b.client
}

// decodeValidated validates a body against a schema and then decodes it.
func decodeValidated(resp *Response, schema string, out any) error {
	if err := openapi.ValidateJSON(schema, resp.Body); err != nil {
		return fmt.Errorf("%w (trace ID: %s)", err, resp.TraceID)
	}

	return resp.Decode(out)
}

func bearer(token string) map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + token,
	}
}

// CreateUser registers a new user and returns the identifier assigned to it.
func (b *BookStore) CreateUser(ctx context.Context, credentials UserCredentials) (*CreatedUser, error) {
	if err := credentials.Validate(); err != nil {
		return nil, err
	}

	path := b.endpoints.CreateUser()

	resp, err := b.client.Send(ctx, http.MethodPost, path, RequestOptions{Body: credentials})
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		return nil, newStatusError(ErrUserCreationFailed, http.MethodPost, path, resp)
	}

	var result createUserResponse

	if err := decodeValidated(resp, "CreateUserResult", &result); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	user := &CreatedUser{
		UserID:   result.UserID,
		UserName: result.Username,
	}

	return user, nil
}

// GenerateToken logs in and returns a bearer token.  The service answers
// unknown credentials with a 200 and a failed status, that is an error here.
func (b *BookStore) GenerateToken(ctx context.Context, credentials UserCredentials) (*AuthToken, error) {
	if err := credentials.Validate(); err != nil {
		return nil, err
	}

	path := b.endpoints.GenerateToken()

	resp, err := b.client.Send(ctx, http.MethodPost, path, RequestOptions{Body: credentials})
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, newStatusError(ErrTokenGenerationFailed, http.MethodPost, path, resp)
	}

	var result tokenResponse

	if err := decodeValidated(resp, "TokenResult", &result); err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	token := ptr.Deref(result.Token, "")

	if result.Status != tokenStatusSuccess || token == "" {
		return nil, fmt.Errorf("%w: status %q: %s (trace ID: %s)", ErrTokenGenerationFailed, result.Status, result.Result, resp.TraceID)
	}

	authToken := &AuthToken{
		Token:   token,
		Expires: ptr.Deref(result.Expires, ""),
		Status:  result.Status,
		Result:  result.Result,
	}

	return authToken, nil
}

// Authorized reports whether the credentials belong to a user that has
// logged in.
func (b *BookStore) Authorized(ctx context.Context, credentials UserCredentials) (bool, error) {
	if err := credentials.Validate(); err != nil {
		return false, err
	}

	path := b.endpoints.Authorized()

	resp, err := b.client.Send(ctx, http.MethodPost, path, RequestOptions{Body: credentials})
	if err != nil {
		return false, fmt.Errorf("checking authorization: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return false, newStatusError(ErrAuthorizationCheckFailed, http.MethodPost, path, resp)
	}

	var authorized bool

	if err := decodeValidated(resp, "AuthorizedResult", &authorized); err != nil {
		return false, fmt.Errorf("checking authorization: %w", err)
	}

	return authorized, nil
}

// ListBooks returns the catalog in the order the service lists it.  An
// empty catalog is not an error, callers must check for it.
func (b *BookStore) ListBooks(ctx context.Context) ([]Book, error) {
	path := b.endpoints.ListBooks()

	resp, err := b.client.Send(ctx, http.MethodGet, path, RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, newStatusError(ErrCatalogUnavailable, http.MethodGet, path, resp)
	}

	var result bookListResponse

	if err := decodeValidated(resp, "BookList", &result); err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}

	if result.Books == nil {
		result.Books = []Book{}
	}

	return result.Books, nil
}

// FirstBook returns the first listed book.
func FirstBook(books []Book) (Book, error) {
	if len(books) == 0 {
		return Book{}, fmt.Errorf("%w: catalog has no books", ErrEmptyResultSet)
	}

	return books[0], nil
}

// RentBook adds a book to a user's collection.  The returned collection
// is not checked for the isbn, a missing entry is an assertion failure
// for the caller to raise with ExpectContainsISBN.
func (b *BookStore) RentBook(ctx context.Context, userID, token, isbn string) (*RentedCollection, error) {
	switch {
	case userID == "":
		return nil, fmt.Errorf("%w: user ID must not be empty", ErrInvalidArgument)
	case token == "":
		return nil, fmt.Errorf("%w: token must not be empty", ErrInvalidArgument)
	case isbn == "":
		return nil, fmt.Errorf("%w: isbn must not be empty", ErrInvalidArgument)
	}

	path := b.endpoints.AddBooks()

	request := addBooksRequest{
		UserID: userID,
		CollectionOfIsbns: []isbnReference{
			{ISBN: isbn},
		},
	}

	resp, err := b.client.Send(ctx, http.MethodPost, path, RequestOptions{Headers: bearer(token), Body: request})
	if err != nil {
		return nil, fmt.Errorf("renting book: %w", err)
	}

	// The service documents 201, older deployments answer 200.
	if !slices.Contains([]int{http.StatusOK, http.StatusCreated}, resp.StatusCode) {
		return nil, newStatusError(ErrRentFailed, http.MethodPost, path, resp)
	}

	var collection RentedCollection

	if err := decodeValidated(resp, "RentResult", &collection); err != nil {
		return nil, fmt.Errorf("renting book: %w", err)
	}

	return &collection, nil
}

// GetUser reads a user back along with their collection.
func (b *BookStore) GetUser(ctx context.Context, userID, token string) (*UserAccount, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID must not be empty", ErrInvalidArgument)
	}

	path := b.endpoints.GetUser(userID)

	resp, err := b.client.Send(ctx, http.MethodGet, path, RequestOptions{Headers: bearer(token)})
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, newStatusError(ErrUserLookupFailed, http.MethodGet, path, resp)
	}

	var account UserAccount

	if err := decodeValidated(resp, "UserAccount", &account); err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return &account, nil
}

// DeleteUser removes a user and their collection.
func (b *BookStore) DeleteUser(ctx context.Context, userID, token string) error {
	if userID == "" {
		return fmt.Errorf("%w: user ID must not be empty", ErrInvalidArgument)
	}

	path := b.endpoints.DeleteUser(userID)

	resp, err := b.client.Send(ctx, http.MethodDelete, path, RequestOptions{Headers: bearer(token)})
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	// The service answers an unknown user ID with a 200 and an error body.
	if resp.StatusCode != http.StatusNoContent {
		return newStatusError(ErrUserDeletionFailed, http.MethodDelete, path, resp)
	}

	return nil
}
