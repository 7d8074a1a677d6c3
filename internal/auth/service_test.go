package auth

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"bfcms/internal/jwttoken"
	dErrors "bfcms/pkg/domain-errors"
	"bfcms/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	now     time.Time
	store   *InMemoryStore
	service *Service
}

func (s *ServiceSuite) SetupTest() {
	s.now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.store = NewInMemoryStore()
	tokens := jwttoken.NewService("test-key", "bfcms-test", time.Hour)
	metrics := NewMetrics(prometheus.NewRegistry())
	s.service = NewService(s.store, tokens, slog.New(slog.DiscardHandler), metrics)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) TestRegisterAndLogin() {
	session, err := s.service.Register(s.ctx, RegisterRequest{
		Email:    "Alice@Example.com",
		Password: "secret-pass",
		FullName: "Alice Wanjiru",
	})
	s.Require().NoError(err)
	s.NotEmpty(session.Token)
	s.Equal("alice@example.com", session.User.Email)
	s.Equal(RoleMember, session.User.Role)
	s.Equal(s.now, session.User.CreatedAt)

	login, err := s.service.Login(s.ctx, LoginRequest{Email: "alice@example.com", Password: "secret-pass"})
	s.Require().NoError(err)
	s.Equal(session.User.ID, login.User.ID)
}

func (s *ServiceSuite) TestRegisterDuplicateEmail() {
	req := RegisterRequest{Email: "bob@example.com", Password: "secret-pass", FullName: "Bob Otieno"}
	_, err := s.service.Register(s.ctx, req)
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, req)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestRegisterValidation() {
	cases := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing email", RegisterRequest{Password: "secret-pass", FullName: "X"}},
		{"short password", RegisterRequest{Email: "x@example.com", Password: "abc", FullName: "X"}},
		{"missing name", RegisterRequest{Email: "x@example.com", Password: "secret-pass"}},
		{"bad role", RegisterRequest{Email: "x@example.com", Password: "secret-pass", FullName: "X", Role: "overlord"}},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.service.Register(s.ctx, tc.req)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func (s *ServiceSuite) TestLoginWrongPassword() {
	_, err := s.service.Register(s.ctx, RegisterRequest{Email: "carol@example.com", Password: "secret-pass", FullName: "Carol"})
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, LoginRequest{Email: "carol@example.com", Password: "wrong"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestLoginUnknownEmail() {
	_, err := s.service.Login(s.ctx, LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestResolveIdentityReflectsRoleChange() {
	session, err := s.service.Register(s.ctx, RegisterRequest{Email: "dan@example.com", Password: "secret-pass", FullName: "Dan Kip"})
	s.Require().NoError(err)

	actor, err := s.service.ResolveIdentity(s.ctx, session.User.ID)
	s.Require().NoError(err)
	s.Equal(string(RoleMember), actor.Role)

	s.Require().NoError(s.store.UpdateRole(s.ctx, session.User.ID, RoleTreasurer))

	actor, err = s.service.ResolveIdentity(s.ctx, session.User.ID)
	s.Require().NoError(err)
	s.Equal(string(RoleTreasurer), actor.Role)
}

func (s *ServiceSuite) TestResolveIdentityDeletedAccount() {
	_, err := s.service.ResolveIdentity(s.ctx, "no-such-user")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestEnsurePrimaryAdmin(t *testing.T) {
	store := NewInMemoryStore()
	tokens := jwttoken.NewService("test-key", "bfcms-test", time.Hour)
	service := NewService(store, tokens, slog.New(slog.DiscardHandler), NewMetrics(prometheus.NewRegistry()))
	ctx := context.Background()

	require.NoError(t, service.EnsurePrimaryAdmin(ctx, "admin@example.com", "bootstrap-pass", "Primary Admin"))

	admin, err := store.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, RoleSuperAdmin, admin.Role)

	// A second run is a no-op.
	require.NoError(t, service.EnsurePrimaryAdmin(ctx, "admin@example.com", "bootstrap-pass", "Primary Admin"))
	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// A demoted primary admin is restored on the next startup.
	require.NoError(t, store.UpdateRole(ctx, admin.ID, RoleMember))
	require.NoError(t, service.EnsurePrimaryAdmin(ctx, "admin@example.com", "bootstrap-pass", "Primary Admin"))
	admin, err = store.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, RoleSuperAdmin, admin.Role)
}
