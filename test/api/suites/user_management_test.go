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

var _ = Describe("User Management", func() {
	Context("When creating users", func() {
		Describe("Given fresh random credentials", func() {
			It("should create the user and echo its name", func() {
				// Given: Credentials with a randomized user name
				credentials, err := api.NewUserCredentials(config)
				Expect(err).NotTo(HaveOccurred())

				// When: I create the user
				resp, err := client.Send(ctx, http.MethodPost, client.Endpoints().CreateUser(), api.RequestOptions{Body: credentials})
				Expect(err).NotTo(HaveOccurred())

				// Then: The user should be created
				Expect(resp).To(api.HaveStatus(http.StatusCreated))
				Expect(resp).To(api.HaveProperty("userID"))
				Expect(resp).To(api.HaveProperty("username"))

				body := resp.JSON.(map[string]any) //nolint:forcetypeassert // safe: HaveProperty checked it's an object
				userID, ok := body["userID"].(string)
				Expect(ok).To(BeTrue(), "Expected userID to be a string")
				Expect(userID).NotTo(BeEmpty())

				api.ScheduleUserCleanup(ctx, store, config, credentials, userID)

				// And: The user name should be echoed back
				Expect(body["username"]).To(Equal(credentials.UserName))
			})
		})

		Describe("Given a user name that is already taken", func() {
			It("should reject the second creation", func() {
				// Given: An existing user
				fixture := api.CreateUserWithCleanup(ctx, store, config)

				// When: I create a user with the same name
				_, err := store.CreateUser(ctx, fixture.Credentials)

				// Then: The request should fail as a duplicate
				Expect(err).To(MatchError(api.ErrUserCreationFailed))

				Expect(err).To(MatchError(api.ErrUnexpectedStatusCode))
				Expect(errorAsStatus(err).StatusCode).NotTo(Equal(http.StatusCreated))
			})
		})

		Describe("Given a weak password", func() {
			It("should reject the creation", func() {
				// Given: Credentials whose password fails the password policy
				credentials, err := api.NewUserCredentials(config)
				Expect(err).NotTo(HaveOccurred())

				credentials.Password = "password"

				// When: I create the user
				resp, err := client.Send(ctx, http.MethodPost, client.Endpoints().CreateUser(), api.RequestOptions{Body: credentials})
				Expect(err).NotTo(HaveOccurred())

				// Then: The request should be rejected with 400 Bad Request
				Expect(resp).To(api.HaveStatus(http.StatusBadRequest))
				Expect(resp).To(api.HaveProperty("message"))
			})
		})
	})

	Context("When reading users back", func() {
		Describe("Given an authorized user", func() {
			It("should return the user with an empty collection", func() {
				// Given: A user that has logged in
				fixture := api.CreateAuthorizedUserWithCleanup(ctx, store, config)

				// When: I read the user
				account, err := store.GetUser(ctx, fixture.User.UserID, fixture.Token.Token)

				// Then: The user should be returned with no books
				Expect(err).NotTo(HaveOccurred())
				Expect(account.UserName).To(Equal(fixture.Credentials.UserName))
				Expect(account.Books).To(BeEmpty())
			})
		})
	})
})
