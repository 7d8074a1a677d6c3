package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	dErrors "bfcms/pkg/domain-errors"
	"bfcms/pkg/platform/sentinel"
	"bfcms/pkg/requestcontext"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	GenerateAccessToken(userID string, now time.Time) (string, error)
}

// Service implements account registration, login and identity resolution.
type Service struct {
	store   Store
	tokens  TokenIssuer
	logger  *slog.Logger
	metrics *Metrics
}

func NewService(store Store, tokens TokenIssuer, logger *slog.Logger, metrics *Metrics) *Service {
	return &Service{store: store, tokens: tokens, logger: logger, metrics: metrics}
}

// Register creates an account and returns a signed session for it.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         req.Role,
		CreatedAt:    requestcontext.Now(ctx),
	}
	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "an account with this email already exists")
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID, "role", user.Role)
	return s.session(ctx, user)
}

// Login verifies credentials and returns a signed session.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	email := normalizeEmail(req.Email)
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.ObserveLogin("failure")
			return nil, dErrors.New(dErrors.CodeUnauthorized, "incorrect email or password")
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}
	if !VerifyPassword(req.Password, user.PasswordHash) {
		s.metrics.ObserveLogin("failure")
		return nil, dErrors.New(dErrors.CodeUnauthorized, "incorrect email or password")
	}

	s.metrics.ObserveLogin("success")
	s.logger.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return s.session(ctx, user)
}

// Me returns the account for the given user ID.
func (s *Service) Me(ctx context.Context, userID string) (*User, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}
	return user, nil
}

// ResolveIdentity loads the actor attached to a validated token. Role and
// name come from the store on every call so a role change takes effect on
// the next request, not at the next login.
func (s *Service) ResolveIdentity(ctx context.Context, userID string) (requestcontext.ActorInfo, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return requestcontext.ActorInfo{}, dErrors.New(dErrors.CodeUnauthorized, "account no longer exists")
		}
		return requestcontext.ActorInfo{}, fmt.Errorf("resolving identity: %w", err)
	}
	return requestcontext.ActorInfo{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     string(user.Role),
	}, nil
}

// EnsurePrimaryAdmin seeds the primary super admin account at startup. If the
// account already exists it is promoted back to super_admin, never downgraded.
func (s *Service) EnsurePrimaryAdmin(ctx context.Context, email, password, fullName string) error {
	email = normalizeEmail(email)
	existing, err := s.store.FindByEmail(ctx, email)
	if err == nil {
		if existing.Role != RoleSuperAdmin {
			if err := s.store.UpdateRole(ctx, existing.ID, RoleSuperAdmin); err != nil {
				return fmt.Errorf("restoring primary admin role: %w", err)
			}
			s.logger.InfoContext(ctx, "primary admin role restored", "user_id", existing.ID)
		}
		return nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return fmt.Errorf("looking up primary admin: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         RoleSuperAdmin,
		CreatedAt:    requestcontext.Now(ctx),
	}
	if err := s.store.Create(ctx, user); err != nil {
		return fmt.Errorf("seeding primary admin: %w", err)
	}
	s.logger.InfoContext(ctx, "primary admin seeded", "user_id", user.ID)
	return nil
}

func (s *Service) session(ctx context.Context, user *User) (*Session, error) {
	token, err := s.tokens.GenerateAccessToken(user.ID, requestcontext.Now(ctx))
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}
	return &Session{Token: token, User: user}, nil
}

func normalizeEmail(email string) string {
	req := RegisterRequest{Email: email}
	req.Normalize()
	return req.Email
}
