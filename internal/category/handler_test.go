package category_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/category"
	categoryPostgres "github.com/frahmantamala/finance-tracker/internal/category/postgres"
	categoryDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/category"
	"github.com/frahmantamala/finance-tracker/internal/testutil"
	"github.com/frahmantamala/finance-tracker/internal/transport"
)

var _ = Describe("Category Handler Integration", func() {
	var (
		repo   *categoryPostgres.CategoryRepository
		router chi.Router
	)

	type envelope struct {
		Success bool                `json:"success"`
		Data    json.RawMessage     `json:"data"`
		Error   *apperrors.AppError `json:"error"`
	}

	do := func(method, path, body string, caller int64) (*httptest.ResponseRecorder, envelope) {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if caller > 0 {
			req = req.WithContext(apperrors.ContextWithUserID(context.Background(), caller))
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		var env envelope
		Expect(json.Unmarshal(rec.Body.Bytes(), &env)).To(Succeed())
		return rec, env
	}

	BeforeEach(func() {
		db, err := testutil.NewSQLiteDB()
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
		repo = categoryPostgres.NewCategoryRepository(db)
		handler := category.NewHandler(transport.NewBaseHandler(slogger), category.NewService(repo, slogger))

		ctx := context.Background()
		for _, cat := range []*categoryDatamodel.Category{
			{UserID: 1, Name: "makan", Description: "Meals and entertainment"},
			{UserID: 1, Name: "perjalanan", Description: "Business travel"},
			{UserID: 2, Name: "other", Description: "Someone else's"},
		} {
			Expect(repo.Create(ctx, cat)).To(Succeed())
		}

		r := chi.NewRouter()
		r.Get("/categories", handler.GetCategories)
		r.Post("/categories", handler.CreateCategory)
		r.Delete("/categories/{id}", handler.DeleteCategory)
		router = r
	})

	It("should handle GET /categories for the caller only", func() {
		rec, env := do(http.MethodGet, "/categories", "", 1)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("Content-Type")).To(ContainSubstring("application/json"))
		Expect(env.Success).To(BeTrue())

		var categories []category.Category
		Expect(json.Unmarshal(env.Data, &categories)).To(Succeed())

		names := make([]string, len(categories))
		for i, cat := range categories {
			names[i] = cat.Name
			Expect(cat.Description).NotTo(BeEmpty())
			Expect(cat.UserID).To(Equal(int64(1)))
		}
		Expect(names).To(Equal([]string{"makan", "perjalanan"}))
	})

	It("should reject a userId query naming someone else", func() {
		rec, env := do(http.MethodGet, "/categories?userId=2", "", 1)

		Expect(rec.Code).To(Equal(http.StatusForbidden))
		Expect(env.Success).To(BeFalse())
		Expect(env.Error.Code).To(Equal(apperrors.ErrCodeOwnerMismatch))
	})

	It("should create a category with the desc alias", func() {
		rec, env := do(http.MethodPost, "/categories", `{"name":"  Groceries ","desc":"weekly shop"}`, 1)

		Expect(rec.Code).To(Equal(http.StatusCreated))
		var created category.Category
		Expect(json.Unmarshal(env.Data, &created)).To(Succeed())
		Expect(created.Name).To(Equal("groceries"))
		Expect(created.Description).To(Equal("weekly shop"))
	})

	It("should answer 409 for a name differing only in case", func() {
		rec, env := do(http.MethodPost, "/categories", `{"name":"MAKAN"}`, 1)

		Expect(rec.Code).To(Equal(http.StatusConflict))
		Expect(env.Error.Code).To(Equal(apperrors.ErrCodeDuplicateCategory))
	})

	It("should not delete another owner's category", func() {
		others, err := repo.ListByOwner(context.Background(), 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(others).To(HaveLen(1))

		rec, env := do(http.MethodDelete, "/categories/"+strconv.FormatInt(others[0].ID, 10), "", 1)
		Expect(rec.Code).To(Equal(http.StatusNotFound))
		Expect(env.Error.Code).To(Equal(apperrors.ErrCodeCategoryNotFound))
	})

	It("should require a caller", func() {
		rec, env := do(http.MethodGet, "/categories", "", 0)

		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		Expect(env.Success).To(BeFalse())
	})
})

