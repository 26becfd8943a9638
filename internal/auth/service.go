package auth

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"
	"sync"

	"gorm.io/gorm"

	errors "github.com/frahmantamala/finance-tracker/internal"
	userDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/finance-tracker/internal/core/events"
)

// Service registers and authenticates accounts
type Service struct {
	repo      Repository
	hasher    PasswordHasher
	tokens    TokenCodec
	publisher events.Publisher
	logger    *slog.Logger

	// dummyHash is verified against when the email is unknown so both
	// failure paths cost one hash comparison.
	dummyOnce sync.Once
	dummyHash string
}

func NewService(repo Repository, hasher PasswordHasher, tokens TokenCodec, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.Discard
	}
	return &Service{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		publisher: publisher,
		logger:    logger,
	}
}

// Register creates an account. Duplicate emails are detected by the store's
// unique index, not by a lookup beforehand.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*Profile, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		return nil, errors.NewInternalError("failed to secure password", err)
	}

	user := &userDatamodel.User{
		Email:        normalizeEmail(dto.Email),
		Username:     strings.TrimSpace(dto.Username),
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) || stderrors.Is(err, ErrEmailTaken) {
			return nil, errors.NewConflictError("email already registered", errors.ErrCodeEmailTaken)
		}
		s.logger.Error("failed to create user", "error", err)
		return nil, errors.NewInternalError("failed to create account", err)
	}

	s.logger.Info("account registered", "user_id", user.ID)
	if err := s.publisher.Publish(ctx, events.NewAccountRegistered(user.ID, user.Email)); err != nil {
		s.logger.Warn("failed to publish event", "event_type", events.EventTypeAccountRegistered, "error", err)
	}

	return toProfile(user), nil
}

// Authenticate validates credentials and returns a bearer token. Unknown
// emails and wrong passwords produce the same error.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (*LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByEmail(ctx, normalizeEmail(dto.Email))
	if err != nil {
		if !stderrors.Is(err, ErrNotFound) {
			s.logger.Error("failed to load user", "error", err)
			return nil, errors.NewInternalError("failed to authenticate", err)
		}
		s.hasher.Verify(dto.Password, s.dummyDigest())
		return nil, errors.ErrInvalidCredentials
	}

	if !s.hasher.Verify(dto.Password, user.PasswordHash) {
		return nil, errors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, errors.NewInternalError("failed to issue token", err)
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      *toProfile(user),
	}, nil
}

// ValidateToken is used by the identity middleware.
func (s *Service) ValidateToken(token string) (*Claims, error) {
	return s.tokens.Verify(token)
}

func (s *Service) dummyDigest() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("unknown-account-placeholder")
		if err != nil {
			s.logger.Error("failed to prepare dummy hash", "error", err)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
