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

//nolint:testpackage,revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package suites

import (
	"context"
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/bookstore/test/api"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

var (
	client *api.APIClient
	store  *api.BookStore
	ctx    context.Context
	config *api.TestConfig
)

var _ = BeforeSuite(func() {
	log.SetLogger(GinkgoLogr)
})

var _ = BeforeEach(func() {
	var err error

	config, err = api.LoadTestConfig()
	if errors.Is(err, api.ErrMissingConfiguration) {
		Skip("BookStore end-to-end suites need BOOKSTORE_BASE_URL: " + err.Error())
	}

	Expect(err).NotTo(HaveOccurred())

	client = api.NewAPIClient(config)
	store = api.NewBookStore(client)
	ctx = log.IntoContext(context.Background(), GinkgoLogr)
})

// errorAsStatus extracts the status error a failed operation returned.
func errorAsStatus(err error) *api.StatusError {
	var statusErr *api.StatusError

	Expect(errors.As(err, &statusErr)).To(BeTrue(), "Expected a status error, got %v", err)

	return statusErr
}

func TestSuites(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "API Test Suites")
}
