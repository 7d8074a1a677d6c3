package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"bfcms/internal/auth"
	dErrors "bfcms/pkg/domain-errors"
	"bfcms/pkg/platform/sentinel"
	"bfcms/pkg/requestcontext"
)

// MemberCounter reports the member headcount for system info.
type MemberCounter interface {
	Count(ctx context.Context) (int, error)
}

// Auditor records administrative actions.
type Auditor interface {
	Publish(ctx context.Context, action, subject string)
}

// SystemInfo is the super-admin overview of accounts and roles.
type SystemInfo struct {
	TotalUsers       int            `json:"total_users"`
	TotalMembers     int            `json:"total_members"`
	RoleDistribution map[string]int `json:"role_distribution"`
	PrimaryAdmin     string         `json:"primary_admin"`
}

// Service implements the admin panel. The primary admin is the seed account
// named in configuration; it holds privileges no other super admin has.
type Service struct {
	users        auth.Store
	members      MemberCounter
	auditor      Auditor
	primaryEmail string
	logger       *slog.Logger
}

func NewService(users auth.Store, members MemberCounter, auditor Auditor, primaryEmail string, logger *slog.Logger) *Service {
	return &Service{
		users:        users,
		members:      members,
		auditor:      auditor,
		primaryEmail: strings.ToLower(primaryEmail),
		logger:       logger,
	}
}

func (s *Service) isPrimary(ctx context.Context) bool {
	return strings.EqualFold(requestcontext.Actor(ctx).Email, s.primaryEmail)
}

// SystemInfo aggregates account counts and the role distribution. Every role
// appears in the distribution, zero when unused.
func (s *Service) SystemInfo(ctx context.Context) (*SystemInfo, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}
	totalMembers, err := s.members.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting members: %w", err)
	}
	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting users by role: %w", err)
	}

	distribution := make(map[string]int, len(auth.Roles))
	for _, role := range auth.Roles {
		distribution[string(role)] = byRole[role]
	}
	return &SystemInfo{
		TotalUsers:       totalUsers,
		TotalMembers:     totalMembers,
		RoleDistribution: distribution,
		PrimaryAdmin:     s.primaryEmail,
	}, nil
}

// ListUsers returns every account. Password hashes never serialize.
func (s *Service) ListUsers(ctx context.Context) ([]*auth.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	if users == nil {
		users = []*auth.User{}
	}
	return users, nil
}

// UpdateRole changes a user's role.
func (s *Service) UpdateRole(ctx context.Context, userID string, role auth.Role) error {
	if !role.Valid() {
		return dErrors.New(dErrors.CodeValidation, "unknown role")
	}
	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return fmt.Errorf("updating user role: %w", err)
	}
	s.auditor.Publish(ctx, "user.role_updated", userID)
	s.logger.InfoContext(ctx, "user role updated", "user_id", userID, "role", role)
	return nil
}

// ResetPassword sets a new password for the account with the given email.
// Super-admin passwords can only be reset by the primary admin.
func (s *Service) ResetPassword(ctx context.Context, email, newPassword string) error {
	if len(newPassword) < 6 {
		return dErrors.New(dErrors.CodeValidation, "password must be at least 6 characters")
	}
	target, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return fmt.Errorf("finding user: %w", err)
	}
	if target.Role == auth.RoleSuperAdmin && !s.isPrimary(ctx) {
		return dErrors.New(dErrors.CodeForbidden, "only the primary administrator can reset super admin passwords")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, target.ID, hash); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	s.auditor.Publish(ctx, "user.password_reset", target.ID)
	s.logger.InfoContext(ctx, "user password reset", "user_id", target.ID)
	return nil
}

// PromoteToAdmin raises a user to super admin. Primary admin only.
func (s *Service) PromoteToAdmin(ctx context.Context, email string) error {
	if !s.isPrimary(ctx) {
		return dErrors.New(dErrors.CodeForbidden, "only the primary administrator can promote users to super admin")
	}
	target, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return fmt.Errorf("finding user: %w", err)
	}
	if err := s.users.UpdateRole(ctx, target.ID, auth.RoleSuperAdmin); err != nil {
		return fmt.Errorf("promoting user: %w", err)
	}
	s.auditor.Publish(ctx, "user.promoted", target.ID)
	s.logger.InfoContext(ctx, "user promoted to super admin", "user_id", target.ID)
	return nil
}

// RemoveUser deletes an account. The primary admin cannot be removed, and
// other super admins can only be removed by the primary admin.
func (s *Service) RemoveUser(ctx context.Context, userID string) error {
	target, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return fmt.Errorf("finding user: %w", err)
	}
	if strings.EqualFold(target.Email, s.primaryEmail) {
		return dErrors.New(dErrors.CodeForbidden, "cannot remove primary administrator")
	}
	if target.Role == auth.RoleSuperAdmin && !s.isPrimary(ctx) {
		return dErrors.New(dErrors.CodeForbidden, "only the primary administrator can remove other super admins")
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("removing user: %w", err)
	}
	s.auditor.Publish(ctx, "user.removed", userID)
	s.logger.InfoContext(ctx, "user removed", "user_id", userID, "email", target.Email)
	return nil
}
