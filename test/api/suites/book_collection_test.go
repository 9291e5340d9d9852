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

//nolint:testpackage,revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/bookstore/test/api"
)

var _ = Describe("Book Collection", func() {
	Context("When renting books", func() {
		Describe("Given an authorized user", func() {
			It("should add the first listed book to the user's collection", func() {
				// Given: A user that has logged in
				fixture := api.CreateAuthorizedUserWithCleanup(ctx, store, config)

				// And: The first book in the catalog
				book := api.SelectFirstBook(ctx, store)

				// When: I rent the book
				collection, err := store.RentBook(ctx, fixture.User.UserID, fixture.Token.Token, book.ISBN)

				// Then: The book should be in the returned collection
				Expect(err).NotTo(HaveOccurred())
				api.VerifyBookPresence(collection, book.ISBN)

				// And: The book should be held against the user
				account, err := store.GetUser(ctx, fixture.User.UserID, fixture.Token.Token)
				Expect(err).NotTo(HaveOccurred())
				api.VerifyAccountHoldsBook(account, book.ISBN)
			})

			It("should reject renting the same book twice", func() {
				// Given: A user already holding a book
				fixture := api.CreateAuthorizedUserWithCleanup(ctx, store, config)
				book := api.SelectFirstBook(ctx, store)

				_, err := store.RentBook(ctx, fixture.User.UserID, fixture.Token.Token, book.ISBN)
				Expect(err).NotTo(HaveOccurred())

				// When: I rent it again
				_, err = store.RentBook(ctx, fixture.User.UserID, fixture.Token.Token, book.ISBN)

				// Then: The request should be rejected
				Expect(err).To(MatchError(api.ErrRentFailed))
				Expect(errorAsStatus(err).StatusCode).To(Equal(http.StatusBadRequest))
			})
		})

		Describe("Given invalid authorization", func() {
			It("should reject requests with an invalid token", func() {
				// Given: A user and a token that was never issued
				fixture := api.CreateUserWithCleanup(ctx, store, config)
				book := api.SelectFirstBook(ctx, store)

				// When: I rent a book with the bogus token
				_, err := store.RentBook(ctx, fixture.User.UserID, "not-a-token", book.ISBN)

				// Then: The request should be rejected with 401 Unauthorized
				Expect(err).To(MatchError(api.ErrRentFailed))
				Expect(errorAsStatus(err).StatusCode).To(Equal(http.StatusUnauthorized))
			})

			It("should reject requests with missing authentication", func() {
				// Given: A user and no token at all
				fixture := api.CreateUserWithCleanup(ctx, store, config)
				book := api.SelectFirstBook(ctx, store)

				body := map[string]any{
					"userId": fixture.User.UserID,
					"collectionOfIsbns": []map[string]string{
						{"isbn": book.ISBN},
					},
				}

				// When: I rent a book without an Authorization header
				resp, err := client.Send(ctx, http.MethodPost, client.Endpoints().AddBooks(), api.RequestOptions{Body: body})
				Expect(err).NotTo(HaveOccurred())

				// Then: The request should be rejected with 401 Unauthorized
				Expect(resp).To(api.HaveStatus(http.StatusUnauthorized))
			})
		})
	})
})
