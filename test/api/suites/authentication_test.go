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

var _ = Describe("Authentication", func() {
	Context("When generating tokens", func() {
		Describe("Given a newly created user", func() {
			It("should issue a token with a success status", func() {
				// Given: A user created with fresh credentials
				fixture := api.CreateUserWithCleanup(ctx, store, config)

				// When: I generate a token with the same credentials
				resp, err := client.Send(ctx, http.MethodPost, client.Endpoints().GenerateToken(), api.RequestOptions{Body: fixture.Credentials})
				Expect(err).NotTo(HaveOccurred())

				// Then: A token should be issued
				Expect(resp).To(api.HaveStatus(http.StatusOK))
				Expect(resp).To(api.HaveProperty("token"))

				body := resp.JSON.(map[string]any) //nolint:forcetypeassert // safe: HaveProperty checked it's an object
				token, ok := body["token"].(string)
				Expect(ok).To(BeTrue(), "Expected token to be a string")
				Expect(token).NotTo(BeEmpty())

				// And: The status should report success
				Expect(body["status"]).To(Equal("Success"))
			})

			It("should report the user as authorized once logged in", func() {
				// Given: A user that has logged in
				fixture := api.CreateAuthorizedUserWithCleanup(ctx, store, config)

				// When: I check whether the credentials are authorized
				authorized, err := store.Authorized(ctx, fixture.Credentials)

				// Then: The user should be authorized
				Expect(err).NotTo(HaveOccurred())
				Expect(authorized).To(BeTrue())
			})
		})

		Describe("Given credentials that were never registered", func() {
			It("should refuse to issue a token", func() {
				// Given: Credentials for a user that doesn't exist
				credentials, err := api.NewUserCredentials(config)
				Expect(err).NotTo(HaveOccurred())

				// When: I generate a token
				token, err := store.GenerateToken(ctx, credentials)

				// Then: No token should be issued
				Expect(err).To(MatchError(api.ErrTokenGenerationFailed))
				Expect(token).To(BeNil())
			})
		})

		Describe("Given the wrong password", func() {
			It("should refuse to issue a token", func() {
				// Given: An existing user
				fixture := api.CreateUserWithCleanup(ctx, store, config)

				credentials := fixture.Credentials
				credentials.Password = "Wrong@123"

				// When: I generate a token with the wrong password
				_, err := store.GenerateToken(ctx, credentials)

				// Then: No token should be issued
				Expect(err).To(MatchError(api.ErrTokenGenerationFailed))
			})
		})
	})
})
