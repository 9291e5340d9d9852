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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// NewUserCredentials builds fresh credentials for a single scenario, the
// user name is the configured prefix followed by a random suffix.
func NewUserCredentials(config *TestConfig) (UserCredentials, error) {
	suffix, err := GenerateRandomString(config.UsernameLength)
	if err != nil {
		return UserCredentials{}, fmt.Errorf("generating user name: %w", err)
	}

	credentials := UserCredentials{
		UserName: config.UserPrefix + suffix,
		Password: config.UserPassword,
	}

	return credentials, nil
}

// DeleteGeneratedUser logs in as a generated user and deletes it.
func DeleteGeneratedUser(ctx context.Context, store *BookStore, credentials UserCredentials, userID string) error {
	token, err := store.GenerateToken(ctx, credentials)
	if err != nil {
		return fmt.Errorf("generating cleanup token: %w", err)
	}

	return store.DeleteUser(ctx, userID, token.Token)
}

// ScheduleUserCleanup deletes the user when the spec ends, whether it passed or not.
func ScheduleUserCleanup(ctx context.Context, store *BookStore, config *TestConfig, credentials UserCredentials, userID string) {
	if !config.CleanupUsers {
		return
	}

	DeferCleanup(func() {
		GinkgoWriter.Printf("Cleaning up user: %s\n", credentials.UserName)

		if err := DeleteGeneratedUser(ctx, store, credentials, userID); err != nil {
			GinkgoWriter.Printf("Warning: Failed to delete user %s: %v\n", credentials.UserName, err)
		} else {
			GinkgoWriter.Printf("Successfully deleted user: %s\n", credentials.UserName)
		}
	})
}

// UserFixture is a user created for one spec.
type UserFixture struct {
	Credentials UserCredentials
	User        *CreatedUser
}

// CreateUserWithCleanup creates a user with fresh credentials and schedules its deletion.
func CreateUserWithCleanup(ctx context.Context, store *BookStore, config *TestConfig) *UserFixture {
	credentials, err := NewUserCredentials(config)
	Expect(err).NotTo(HaveOccurred())

	user, err := store.CreateUser(ctx, credentials)
	Expect(err).NotTo(HaveOccurred())

	GinkgoWriter.Printf("Created user %s with ID: %s\n", user.UserName, user.UserID)

	ScheduleUserCleanup(ctx, store, config, credentials, user.UserID)

	return &UserFixture{
		Credentials: credentials,
		User:        user,
	}
}

// AuthorizedUserFixture is a user that has logged in.
type AuthorizedUserFixture struct {
	*UserFixture

	Token *AuthToken
}

// CreateAuthorizedUserWithCleanup creates a user, logs in as it and schedules its deletion.
func CreateAuthorizedUserWithCleanup(ctx context.Context, store *BookStore, config *TestConfig) *AuthorizedUserFixture {
	fixture := CreateUserWithCleanup(ctx, store, config)

	token, err := store.GenerateToken(ctx, fixture.Credentials)
	Expect(err).NotTo(HaveOccurred())

	return &AuthorizedUserFixture{
		UserFixture: fixture,
		Token:       token,
	}
}

// SelectFirstBook lists the catalog and returns its first entry.
func SelectFirstBook(ctx context.Context, store *BookStore) Book {
	books, err := store.ListBooks(ctx)
	Expect(err).NotTo(HaveOccurred())
	Expect(books).NotTo(BeEmpty(), "Expected the catalog to list at least one book")

	return books[0]
}

// VerifyCatalogShape verifies every listed book is identifiable.
func VerifyCatalogShape(books []Book) {
	for i, book := range books {
		Expect(book.ISBN).NotTo(BeEmpty(), "Expected book %d to have an isbn", i)
		Expect(book.Title).NotTo(BeEmpty(), "Expected book %d to have a title", i)
	}
}

// VerifyBookPresence verifies the rented isbn came back in the collection.
func VerifyBookPresence(collection *RentedCollection, isbn string) {
	Expect(collection).To(ContainISBN(isbn), "Expected isbn %s to be present in the rented collection", isbn)
}

// VerifyAccountHoldsBook verifies the rented isbn persisted against the user.
func VerifyAccountHoldsBook(account *UserAccount, isbn string) {
	isbns := make([]string, len(account.Books))

	for i := range account.Books {
		isbns[i] = account.Books[i].ISBN
	}

	Expect(isbns).To(ContainElement(isbn), "Expected user %s to hold isbn %s", account.UserName, isbn)
}
