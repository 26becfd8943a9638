package api_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/finance-tracker/api"
)

func TestAPI(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "OpenAPI Suite")
}

var _ = Describe("OpenAPI document", func() {
	It("is valid and documents every route", func() {
		doc, err := api.Load(context.Background())
		Expect(err).NotTo(HaveOccurred())

		for _, path := range []string{
			"/signup", "/login", "/health", "/health/ready",
			"/api/profiles/{id}",
			"/api/categories", "/api/categories/{id}",
			"/api/expenses", "/api/expenses/summary", "/api/expenses/{id}",
			"/api/goals", "/api/goals/{id}", "/api/goals/{id}/progress", "/api/goals/{id}/pin",
		} {
			Expect(doc.Paths.Value(path)).NotTo(BeNil(), path)
		}
	})
})
