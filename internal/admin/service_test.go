package admin

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"bfcms/internal/audit"
	"bfcms/internal/auth"
	"bfcms/internal/member"
	dErrors "bfcms/pkg/domain-errors"
	"bfcms/pkg/requestcontext"
)

const primaryEmail = "admin@blossomfamilychoir.org"

type recordingAuditor struct {
	actions []string
}

func (a *recordingAuditor) Publish(_ context.Context, action, subject string) {
	a.actions = append(a.actions, action+":"+subject)
}

type ServiceSuite struct {
	suite.Suite
	users   *auth.InMemoryStore
	auditor *recordingAuditor
	service *Service
}

func (s *ServiceSuite) SetupTest() {
	s.users = auth.NewInMemoryStore()
	s.auditor = &recordingAuditor{}
	s.service = NewService(s.users, member.NewInMemoryStore(), s.auditor, primaryEmail, slog.New(slog.DiscardHandler))
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) addUser(id, email string, role auth.Role) *auth.User {
	hash, err := auth.HashPassword("password123")
	s.Require().NoError(err)
	u := &auth.User{
		ID: id, Email: email, FullName: "User " + id,
		PasswordHash: hash, Role: role,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.users.Create(context.Background(), u))
	return u
}

func (s *ServiceSuite) asUser(email string) context.Context {
	return requestcontext.WithActor(context.Background(),
		requestcontext.ActorInfo{UserID: "actor", Email: email, Role: string(auth.RoleSuperAdmin)})
}

func (s *ServiceSuite) TestSystemInfo() {
	s.addUser("u1", primaryEmail, auth.RoleSuperAdmin)
	s.addUser("u2", "sec@example.com", auth.RoleSecretary)
	s.addUser("u3", "member@example.com", auth.RoleMember)

	info, err := s.service.SystemInfo(context.Background())
	s.Require().NoError(err)
	s.Equal(3, info.TotalUsers)
	s.Equal(0, info.TotalMembers)
	s.Equal(primaryEmail, info.PrimaryAdmin)
	s.Equal(1, info.RoleDistribution["super_admin"])
	s.Equal(1, info.RoleDistribution["secretary"])
	s.Equal(0, info.RoleDistribution["treasurer"])
	s.Len(info.RoleDistribution, len(auth.Roles))
}

func (s *ServiceSuite) TestUpdateRole() {
	s.addUser("u2", "sec@example.com", auth.RoleSecretary)

	err := s.service.UpdateRole(s.asUser(primaryEmail), "u2", auth.RoleTreasurer)
	s.Require().NoError(err)
	u, err := s.users.FindByID(context.Background(), "u2")
	s.Require().NoError(err)
	s.Equal(auth.RoleTreasurer, u.Role)
	s.Contains(s.auditor.actions, "user.role_updated:u2")

	err = s.service.UpdateRole(s.asUser(primaryEmail), "u2", "archbishop")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	err = s.service.UpdateRole(s.asUser(primaryEmail), "ghost", auth.RoleMember)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestResetPasswordRequiresPrimaryForSuperAdmins() {
	s.addUser("u1", primaryEmail, auth.RoleSuperAdmin)
	other := s.addUser("u2", "other-admin@example.com", auth.RoleSuperAdmin)

	err := s.service.ResetPassword(s.asUser("other-admin@example.com"), other.Email, "newpassword")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	err = s.service.ResetPassword(s.asUser(primaryEmail), other.Email, "newpassword")
	s.Require().NoError(err)

	updated, err := s.users.FindByEmail(context.Background(), other.Email)
	s.Require().NoError(err)
	s.True(auth.VerifyPassword("newpassword", updated.PasswordHash))
	s.Contains(s.auditor.actions, "user.password_reset:u2")
}

func (s *ServiceSuite) TestResetPasswordOrdinaryUser() {
	s.addUser("u2", "sec@example.com", auth.RoleSecretary)

	err := s.service.ResetPassword(s.asUser("any-admin@example.com"), "sec@example.com", "newpassword")
	s.Require().NoError(err)

	err = s.service.ResetPassword(s.asUser("any-admin@example.com"), "ghost@example.com", "newpassword")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	err = s.service.ResetPassword(s.asUser("any-admin@example.com"), "sec@example.com", "short")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestPromotePrimaryOnly() {
	s.addUser("u2", "sec@example.com", auth.RoleSecretary)

	err := s.service.PromoteToAdmin(s.asUser("other-admin@example.com"), "sec@example.com")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	err = s.service.PromoteToAdmin(s.asUser(primaryEmail), "sec@example.com")
	s.Require().NoError(err)
	u, err := s.users.FindByID(context.Background(), "u2")
	s.Require().NoError(err)
	s.Equal(auth.RoleSuperAdmin, u.Role)
	s.Contains(s.auditor.actions, "user.promoted:u2")
}

func (s *ServiceSuite) TestRemoveUserProtections() {
	primary := s.addUser("u1", primaryEmail, auth.RoleSuperAdmin)
	s.addUser("u2", "other-admin@example.com", auth.RoleSuperAdmin)
	s.addUser("u3", "sec@example.com", auth.RoleSecretary)

	err := s.service.RemoveUser(s.asUser(primaryEmail), primary.ID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	err = s.service.RemoveUser(s.asUser("other-admin@example.com"), "u2")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	err = s.service.RemoveUser(s.asUser("other-admin@example.com"), "u3")
	s.Require().NoError(err)
	s.Contains(s.auditor.actions, "user.removed:u3")

	err = s.service.RemoveUser(s.asUser(primaryEmail), "u2")
	s.Require().NoError(err)

	err = s.service.RemoveUser(s.asUser(primaryEmail), "ghost")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

var _ Auditor = (*audit.Publisher)(nil)
