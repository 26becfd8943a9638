package category_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	apperrors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/category"
	categoryDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/category"
)

func TestCategoryService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Service Suite")
}

// MockRepository implements category.RepositoryAPI and mimics the
// (user_id, name) unique index.
type MockRepository struct {
	categories map[int64]*categoryDatamodel.Category
	nextID     int64
	shouldFail bool
	failError  error
	// hideFromLookup simulates a concurrent insert the pre-check missed.
	hideFromLookup bool
}

func NewMockRepository() *MockRepository {
	return &MockRepository{categories: make(map[int64]*categoryDatamodel.Category)}
}

func (m *MockRepository) ListByOwner(_ context.Context, userID int64) ([]*categoryDatamodel.Category, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*categoryDatamodel.Category
	for _, cat := range m.categories {
		if cat.UserID == userID {
			result = append(result, cat)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *MockRepository) GetByName(_ context.Context, userID int64, name string) (*categoryDatamodel.Category, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	if m.hideFromLookup {
		return nil, nil
	}
	for _, cat := range m.categories {
		if cat.UserID == userID && cat.Name == name {
			return cat, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) GetByID(_ context.Context, id, userID int64) (*categoryDatamodel.Category, error) {
	if cat, ok := m.categories[id]; ok && cat.UserID == userID {
		return cat, nil
	}
	return nil, nil
}

func (m *MockRepository) Create(_ context.Context, cat *categoryDatamodel.Category) error {
	if m.shouldFail {
		return m.failError
	}
	for _, existing := range m.categories {
		if existing.UserID == cat.UserID && existing.Name == cat.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	m.nextID++
	cat.ID = m.nextID
	m.categories[cat.ID] = cat
	return nil
}

func (m *MockRepository) Delete(_ context.Context, id, userID int64) error {
	if m.shouldFail {
		return m.failError
	}
	cat, ok := m.categories[id]
	if !ok || cat.UserID != userID {
		return category.ErrNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

var _ = Describe("Category Service", func() {
	const (
		owner = int64(1)
		other = int64(2)
	)

	var (
		mockRepo *MockRepository
		service  *category.Service
		ctx      context.Context
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		service = category.NewService(mockRepo, slog.New(slog.NewTextHandler(io.Discard, nil)))
		ctx = context.Background()
	})

	Describe("Create", func() {
		It("stores the normalized name and lists it back", func() {
			created, err := service.Create(ctx, owner, category.CreateCategoryDTO{Name: "  Transport ", Desc: "bus"})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.Name).To(Equal("transport"))
			Expect(created.Description).To(Equal("bus"))

			list, err := service.List(ctx, owner)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].Name).To(Equal("transport"))
			Expect(list[0].ID).To(Equal(created.ID))
		})

		It("rejects case and whitespace variants for the same owner", func() {
			_, err := service.Create(ctx, owner, category.CreateCategoryDTO{Name: "Food"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(ctx, owner, category.CreateCategoryDTO{Name: "food "})
			Expect(apperrors.IsType(err, apperrors.ErrorTypeConflict)).To(BeTrue())
			Expect(err.Error()).To(Equal("similar category name found"))
			Expect(mockRepo.categories).To(HaveLen(1))
		})

		It("allows the same name for different owners", func() {
			_, err := service.Create(ctx, owner, category.CreateCategoryDTO{Name: "Food"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Create(ctx, other, category.CreateCategoryDTO{Name: "Food"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("maps a unique index violation to the same conflict", func() {
			_, err := service.Create(ctx, owner, category.CreateCategoryDTO{Name: "food"})
			Expect(err).NotTo(HaveOccurred())

			mockRepo.hideFromLookup = true
			_, err = service.Create(ctx, owner, category.CreateCategoryDTO{Name: "FOOD"})
			Expect(apperrors.IsType(err, apperrors.ErrorTypeConflict)).To(BeTrue())
			Expect(err.Error()).To(Equal("similar category name found"))
		})

		It("requires a name", func() {
			_, err := service.Create(ctx, owner, category.CreateCategoryDTO{Name: "   "})
			Expect(apperrors.IsType(err, apperrors.ErrorTypeValidation)).To(BeTrue())
		})

		It("prefers description over desc", func() {
			created, err := service.Create(ctx, owner, category.CreateCategoryDTO{Name: "rent", Desc: "short", Description: "long"})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Description).To(Equal("long"))
		})
	})

	Describe("List", func() {
		It("only returns the owner's categories ordered by name", func() {
			for _, name := range []string{"rent", "food", "bills"} {
				_, err := service.Create(ctx, owner, category.CreateCategoryDTO{Name: name})
				Expect(err).NotTo(HaveOccurred())
			}
			_, err := service.Create(ctx, other, category.CreateCategoryDTO{Name: "zzz"})
			Expect(err).NotTo(HaveOccurred())

			list, err := service.List(ctx, owner)
			Expect(err).NotTo(HaveOccurred())
			names := []string{}
			for _, c := range list {
				names = append(names, c.Name)
			}
			Expect(names).To(Equal([]string{"bills", "food", "rent"}))
		})

		It("wraps repository failures", func() {
			mockRepo.SetShouldFail(true, errors.New("db down"))
			_, err := service.List(ctx, owner)
			Expect(apperrors.IsType(err, apperrors.ErrorTypeInternal)).To(BeTrue())
		})
	})

	Describe("Delete", func() {
		It("returns not found on the second delete", func() {
			created, err := service.Create(ctx, owner, category.CreateCategoryDTO{Name: "food"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(ctx, created.ID, owner)).To(Succeed())

			err = service.Delete(ctx, created.ID, owner)
			Expect(apperrors.IsType(err, apperrors.ErrorTypeNotFound)).To(BeTrue())
		})

		It("does not delete another owner's category", func() {
			created, err := service.Create(ctx, owner, category.CreateCategoryDTO{Name: "food"})
			Expect(err).NotTo(HaveOccurred())

			err = service.Delete(ctx, created.ID, other)
			Expect(apperrors.IsType(err, apperrors.ErrorTypeNotFound)).To(BeTrue())
			Expect(mockRepo.categories).To(HaveKey(created.ID))
		})
	})
})
