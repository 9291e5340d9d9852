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

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// ScenarioFunc runs one end-to-end flow, returning its first failure.
type ScenarioFunc func(ctx context.Context, store *BookStore, config *TestConfig) error

// Scenario is a named end-to-end flow.
type Scenario struct {
	Name        string
	Description string
	Run         ScenarioFunc
}

// Scenarios returns every flow in the order they should be run.
func Scenarios() []Scenario {
	return []Scenario{
		{
			Name:        "create-user",
			Description: "create a user with random credentials",
			Run:         CreateUserScenario,
		},
		{
			Name:        "generate-token",
			Description: "create a user and issue a token for it",
			Run:         GenerateTokenScenario,
		},
		{
			Name:        "list-books",
			Description: "list the catalog",
			Run:         ListBooksScenario,
		},
		{
			Name:        "rent-book",
			Description: "add the first listed book to a new user's collection",
			Run:         RentBookScenario,
		},
	}
}

// LookupScenario finds a scenario by name.
func LookupScenario(name string) (Scenario, error) {
	for _, scenario := range Scenarios() {
		if scenario.Name == name {
			return scenario, nil
		}
	}

	return Scenario{}, fmt.Errorf("%w: unknown scenario %q", ErrInvalidArgument, name)
}

// withUser creates a user for the duration of a callback and deletes it after.
func withUser(ctx context.Context, store *BookStore, config *TestConfig, callback func(UserCredentials, *CreatedUser) error) error {
	log := log.FromContext(ctx)

	credentials, err := NewUserCredentials(config)
	if err != nil {
		return err
	}

	user, err := store.CreateUser(ctx, credentials)
	if err != nil {
		return err
	}

	log.Info("created user", "userName", user.UserName, "userID", user.UserID)

	if config.CleanupUsers {
		defer func() {
			if err := DeleteGeneratedUser(ctx, store, credentials, user.UserID); err != nil {
				log.Error(err, "failed to delete user", "userName", user.UserName)
			}
		}()
	}

	return callback(credentials, user)
}

// CreateUserScenario creates a user and checks the response shape.
func CreateUserScenario(ctx context.Context, store *BookStore, config *TestConfig) error {
	credentials, err := NewUserCredentials(config)
	if err != nil {
		return err
	}

	resp, err := store.Client().Send(ctx, http.MethodPost, store.endpoints.CreateUser(), RequestOptions{Body: credentials})
	if err != nil {
		return err
	}

	if err := ExpectStatus(resp, http.StatusCreated); err != nil {
		return err
	}

	if err := ExpectHasProperty(resp, "userID"); err != nil {
		return err
	}

	var user createUserResponse

	if err := decodeValidated(resp, "CreateUserResult", &user); err != nil {
		return err
	}

	if config.CleanupUsers {
		defer func() {
			if err := DeleteGeneratedUser(ctx, store, credentials, user.UserID); err != nil {
				log.FromContext(ctx).Error(err, "failed to delete user", "userName", credentials.UserName)
			}
		}()
	}

	if err := ExpectNonEmptyString(user.UserID, "userID"); err != nil {
		return err
	}

	return ExpectEqual(credentials.UserName, user.Username, "username should echo the requested user name")
}

// GenerateTokenScenario issues a token for a freshly created user.
func GenerateTokenScenario(ctx context.Context, store *BookStore, config *TestConfig) error {
	return withUser(ctx, store, config, func(credentials UserCredentials, _ *CreatedUser) error {
		token, err := store.GenerateToken(ctx, credentials)
		if err != nil {
			return err
		}

		if err := ExpectNonEmptyString(token.Token, "token"); err != nil {
			return err
		}

		return ExpectEqual(tokenStatusSuccess, token.Status, "token status")
	})
}

// ListBooksScenario checks the catalog is populated with identifiable books.
func ListBooksScenario(ctx context.Context, store *BookStore, _ *TestConfig) error {
	books, err := store.ListBooks(ctx)
	if err != nil {
		return err
	}

	if err := ExpectNonEmptyArray(books); err != nil {
		return err
	}

	log.FromContext(ctx).Info("listed books", "count", len(books))

	if err := ExpectNonEmptyString(books[0].ISBN, "books[0].isbn"); err != nil {
		return err
	}

	return ExpectNonEmptyString(books[0].Title, "books[0].title")
}

// RentBookScenario adds the first listed book to a new user's collection and
// checks the service reports it as added.
func RentBookScenario(ctx context.Context, store *BookStore, config *TestConfig) error {
	return withUser(ctx, store, config, func(credentials UserCredentials, user *CreatedUser) error {
		token, err := store.GenerateToken(ctx, credentials)
		if err != nil {
			return err
		}

		books, err := store.ListBooks(ctx)
		if err != nil {
			return err
		}

		book, err := FirstBook(books)
		if err != nil {
			return err
		}

		collection, err := store.RentBook(ctx, user.UserID, token.Token, book.ISBN)
		if err != nil {
			return err
		}

		log.FromContext(ctx).Info("rented book", "isbn", book.ISBN, "userID", user.UserID)

		return ExpectContainsISBN(collection, book.ISBN)
	})
}
