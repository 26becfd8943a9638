package user_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/transport"
	"github.com/frahmantamala/finance-tracker/internal/user"
)

var _ = Describe("User Handler", func() {
	var (
		repo   *MockRepository
		router chi.Router
	)

	do := func(method, path, body string, caller int64) (*httptest.ResponseRecorder, map[string]interface{}) {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if caller > 0 {
			req = req.WithContext(apperrors.ContextWithUserID(context.Background(), caller))
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		var envelope map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &envelope)).To(Succeed())
		return rec, envelope
	}

	BeforeEach(func() {
		repo = &MockRepository{profiles: map[int64]*user.Profile{
			1: {ID: 1, Email: "ana@example.com", Username: "ana"},
		}}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		handler := user.NewHandler(transport.NewBaseHandler(logger), user.NewService(repo, logger))

		r := chi.NewRouter()
		r.Get("/api/profiles/{id}", handler.GetProfile)
		r.Put("/api/profiles/{id}", handler.UpdateProfile)
		router = r
	})

	It("wraps the profile in the success envelope", func() {
		rec, envelope := do(http.MethodGet, "/api/profiles/1", "", 1)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(envelope["success"]).To(BeTrue())
		Expect(envelope["data"]).To(HaveKeyWithValue("username", "ana"))
		Expect(envelope["data"]).NotTo(HaveKey("passwordHash"))
	})

	It("rejects anonymous callers", func() {
		rec, envelope := do(http.MethodGet, "/api/profiles/1", "", 0)
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		Expect(envelope["success"]).To(BeFalse())
	})

	It("rejects malformed ids", func() {
		rec, _ := do(http.MethodGet, "/api/profiles/abc", "", 1)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("updates the username", func() {
		rec, envelope := do(http.MethodPut, "/api/profiles/1", `{"username":"ana.b"}`, 1)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(envelope["data"]).To(Equal(map[string]interface{}{"id": float64(1), "username": "ana.b"}))
	})

	It("refuses unknown body fields", func() {
		rec, _ := do(http.MethodPut, "/api/profiles/1", `{"username":"x","role":"admin"}`, 1)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})
})
