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

var _ = Describe("Catalog", func() {
	Context("When listing books", func() {
		Describe("Given an anonymous client", func() {
			It("should return a non-empty list of books", func() {
				// When: I request the catalog
				resp, err := client.Send(ctx, http.MethodGet, client.Endpoints().ListBooks(), api.RequestOptions{})
				Expect(err).NotTo(HaveOccurred())

				// Then: The catalog should be returned
				Expect(resp).To(api.HaveStatus(http.StatusOK))
				Expect(resp).To(api.HaveProperty("books"))

				body := resp.JSON.(map[string]any) //nolint:forcetypeassert // safe: HaveProperty checked it's an object
				Expect(api.ExpectNonEmptyArray(body["books"])).To(Succeed())

				// And: The first book should be identifiable
				books := body["books"].([]any) //nolint:forcetypeassert // safe: checked above
				Expect(books[0]).To(api.HaveProperty("isbn"))
				Expect(books[0]).To(api.HaveProperty("title"))

				GinkgoWriter.Printf("Found %d books\n", len(books))
			})

			It("should return books that all have an isbn and title", func() {
				// When: I list the catalog
				books, err := store.ListBooks(ctx)

				// Then: Every book should be identifiable
				Expect(err).NotTo(HaveOccurred())
				Expect(books).NotTo(BeEmpty())
				api.VerifyCatalogShape(books)
			})
		})
	})
})
