package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/auth"
	userDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/finance-tracker/internal/core/events"
)

// MockRepository enforces email uniqueness the way the store index does.
type MockRepository struct {
	mu         sync.Mutex
	users      map[string]*userDatamodel.User
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{users: make(map[string]*userDatamodel.User)}
}

func (m *MockRepository) Create(_ context.Context, user *userDatamodel.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shouldFail {
		return m.failError
	}
	if _, exists := m.users[user.Email]; exists {
		return gorm.ErrDuplicatedKey
	}
	m.nextID++
	user.ID = m.nextID
	m.users[user.Email] = user
	return nil
}

func (m *MockRepository) GetByEmail(_ context.Context, email string) (*userDatamodel.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shouldFail {
		return nil, m.failError
	}
	user, ok := m.users[email]
	if !ok {
		return nil, auth.ErrNotFound
	}
	return user, nil
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

// countingHasher records how many verifications ran.
type countingHasher struct {
	*auth.BcryptHasher
	mu       sync.Mutex
	verified int
}

func (c *countingHasher) Verify(plaintext, digest string) bool {
	c.mu.Lock()
	c.verified++
	c.mu.Unlock()
	return c.BcryptHasher.Verify(plaintext, digest)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

var _ = Describe("Account Service", func() {
	var (
		repo      *MockRepository
		hasher    *countingHasher
		publisher *recordingPublisher
		service   *auth.Service
		ctx       context.Context
	)

	BeforeEach(func() {
		repo = NewMockRepository()
		hasher = &countingHasher{BcryptHasher: auth.NewBcryptHasher(bcrypt.MinCost)}
		publisher = &recordingPublisher{}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = auth.NewService(repo, hasher, auth.NewJWTTokenCodec(strings.Repeat("s", 32), 24*time.Hour), publisher, logger)
		ctx = context.Background()
	})

	Describe("Register", func() {
		It("returns the public profile and stores a hash", func() {
			profile, err := service.Register(ctx, auth.RegisterDTO{Email: " A@X.com ", Username: "a", Password: "secret"})
			Expect(err).NotTo(HaveOccurred())
			Expect(profile.ID).To(BeNumerically(">", 0))
			Expect(profile.Email).To(Equal("a@x.com"))
			Expect(profile.Username).To(Equal("a"))

			stored := repo.users["a@x.com"]
			Expect(stored.PasswordHash).NotTo(Equal("secret"))
			Expect(hasher.Verify("secret", stored.PasswordHash)).To(BeTrue())

			Expect(publisher.events).To(HaveLen(1))
			Expect(publisher.events[0].EventType()).To(Equal(events.EventTypeAccountRegistered))
		})

		It("rejects a second signup with the same email", func() {
			_, err := service.Register(ctx, auth.RegisterDTO{Email: "a@x.com", Username: "a", Password: "secret"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Register(ctx, auth.RegisterDTO{Email: "A@x.com", Username: "b", Password: "other"})
			Expect(apperrors.IsType(err, apperrors.ErrorTypeConflict)).To(BeTrue())
			Expect(err.Error()).To(Equal("email already registered"))
		})

		DescribeTable("rejects incomplete input",
			func(dto auth.RegisterDTO, field string) {
				_, err := service.Register(ctx, dto)
				appErr, ok := apperrors.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
				Expect(appErr.Details).To(BeAssignableToTypeOf(apperrors.ValidationErrors{}))
				Expect(appErr.Details.(apperrors.ValidationErrors).Errors[0].Field).To(Equal(field))
				Expect(repo.users).To(BeEmpty())
			},
			Entry("missing email", auth.RegisterDTO{Username: "a", Password: "p"}, "email"),
			Entry("malformed email", auth.RegisterDTO{Email: "nope", Username: "a", Password: "p"}, "email"),
			Entry("blank username", auth.RegisterDTO{Email: "a@x.com", Username: "  ", Password: "p"}, "username"),
			Entry("missing password", auth.RegisterDTO{Email: "a@x.com", Username: "a"}, "password"),
		)

		It("hides store failures behind an internal error", func() {
			repo.SetShouldFail(true, errors.New("connection reset"))
			_, err := service.Register(ctx, auth.RegisterDTO{Email: "a@x.com", Username: "a", Password: "secret"})
			Expect(apperrors.IsType(err, apperrors.ErrorTypeInternal)).To(BeTrue())
		})
	})

	Describe("Authenticate", func() {
		var profile *auth.Profile

		BeforeEach(func() {
			var err error
			profile, err = service.Register(ctx, auth.RegisterDTO{Email: "a@x.com", Username: "a", Password: "secret"})
			Expect(err).NotTo(HaveOccurred())
			hasher.verified = 0
		})

		It("issues a token bound to the account", func() {
			result, err := service.Authenticate(ctx, auth.LoginDTO{Email: "a@x.com", Password: "secret"})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Token).NotTo(BeEmpty())
			Expect(result.User.ID).To(Equal(profile.ID))

			claims, err := service.ValidateToken(result.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal(profile.ID))
		})

		It("fails identically for a wrong password and an unknown email", func() {
			_, wrongPassword := service.Authenticate(ctx, auth.LoginDTO{Email: "a@x.com", Password: "wrong"})
			_, unknownEmail := service.Authenticate(ctx, auth.LoginDTO{Email: "b@x.com", Password: "secret"})

			Expect(wrongPassword).To(Equal(unknownEmail))
			Expect(wrongPassword).To(BeIdenticalTo(apperrors.ErrInvalidCredentials))
			Expect(hasher.verified).To(Equal(2))
		})

		It("requires both fields", func() {
			_, err := service.Authenticate(ctx, auth.LoginDTO{Email: "a@x.com"})
			Expect(apperrors.IsType(err, apperrors.ErrorTypeValidation)).To(BeTrue())
		})
	})
})
