package auth

import (
	"strings"
	"time"

	dErrors "bfcms/pkg/domain-errors"
)

// Role gates API operations. Roles are flat, not hierarchical: super_admin is
// included explicitly wherever it is allowed.
type Role string

const (
	RoleSuperAdmin       Role = "super_admin"
	RoleChairperson      Role = "chairperson"
	RoleSecretary        Role = "secretary"
	RoleDisciplinary     Role = "disciplinary"
	RoleTreasurer        Role = "treasurer"
	RoleInventoryOfficer Role = "inventory_officer"
	RoleDepartmentHead   Role = "department_head"
	RoleMember           Role = "member"
)

// Roles lists every role in declaration order, for reports that enumerate
// the full set.
var Roles = []Role{
	RoleSuperAdmin, RoleChairperson, RoleSecretary, RoleDisciplinary,
	RoleTreasurer, RoleInventoryOfficer, RoleDepartmentHead, RoleMember,
}

var validRoles = map[Role]struct{}{
	RoleSuperAdmin: {}, RoleChairperson: {}, RoleSecretary: {},
	RoleDisciplinary: {}, RoleTreasurer: {}, RoleInventoryOfficer: {},
	RoleDepartmentHead: {}, RoleMember: {},
}

func (r Role) Valid() bool {
	_, ok := validRoles[r]
	return ok
}

// User is an API account. Members of the organization are tracked separately
// in the member directory; a User is whoever can log in.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	Department   string    `json:"department,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
}

func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FullName = strings.TrimSpace(r.FullName)
	if r.Role == "" {
		r.Role = RoleMember
	}
}

func (r *RegisterRequest) Validate() error {
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return dErrors.New(dErrors.CodeValidation, "a valid email is required")
	}
	if len(r.Password) < 6 {
		return dErrors.New(dErrors.CodeValidation, "password must be at least 6 characters")
	}
	if r.FullName == "" {
		return dErrors.New(dErrors.CodeValidation, "full name is required")
	}
	if !r.Role.Valid() {
		return dErrors.New(dErrors.CodeValidation, "unknown role")
	}
	return nil
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is returned by Register and Login.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
