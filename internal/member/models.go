package member

import (
	"strings"
	"time"

	dErrors "bfcms/pkg/domain-errors"
)

// Status tracks a member's standing in the organization.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusExited    Status = "exited"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusSuspended, StatusExited:
		return true
	}
	return false
}

// Department is the section a member sings or serves in.
type Department string

const (
	DepartmentSoprano     Department = "soprano"
	DepartmentAlto        Department = "alto"
	DepartmentTenor       Department = "tenor"
	DepartmentBass        Department = "bass"
	DepartmentInstruments Department = "instruments"
	DepartmentMedia       Department = "media"
)

// Departments lists all valid departments in display order.
var Departments = []Department{
	DepartmentSoprano, DepartmentAlto, DepartmentTenor,
	DepartmentBass, DepartmentInstruments, DepartmentMedia,
}

func (d Department) Valid() bool {
	for _, known := range Departments {
		if d == known {
			return true
		}
	}
	return false
}

// Member is a registered member of the organization. Photo is an optional
// base64-encoded image kept in-record.
type Member struct {
	ID               string     `json:"id"`
	MembershipNumber string     `json:"membership_number"`
	FullName         string     `json:"full_name"`
	IDNumber         string     `json:"id_number"`
	Phone            string     `json:"phone"`
	Email            string     `json:"email"`
	Department       Department `json:"department"`
	DateJoined       time.Time  `json:"date_joined"`
	Status           Status     `json:"status"`
	Photo            string     `json:"photo,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	CreatedBy        string     `json:"created_by"`
}

// CreateRequest is the payload for registering a member. DateJoined is an
// optional YYYY-MM-DD date; it defaults to the request date.
type CreateRequest struct {
	FullName   string     `json:"full_name"`
	IDNumber   string     `json:"id_number"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email"`
	Department Department `json:"department"`
	DateJoined string     `json:"date_joined,omitempty"`
	Photo      string     `json:"photo,omitempty"`
}

func (r *CreateRequest) Validate() error {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.FullName == "" {
		return dErrors.New(dErrors.CodeValidation, "full name is required")
	}
	if r.IDNumber == "" {
		return dErrors.New(dErrors.CodeValidation, "id number is required")
	}
	if r.Phone == "" {
		return dErrors.New(dErrors.CodeValidation, "phone is required")
	}
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return dErrors.New(dErrors.CodeValidation, "a valid email is required")
	}
	if !r.Department.Valid() {
		return dErrors.New(dErrors.CodeValidation, "unknown department")
	}
	if r.DateJoined != "" {
		if _, err := time.Parse("2006-01-02", r.DateJoined); err != nil {
			return dErrors.New(dErrors.CodeValidation, "date_joined must be YYYY-MM-DD")
		}
	}
	return nil
}

// UpdateRequest carries a partial member update. Nil fields are left as-is.
type UpdateRequest struct {
	FullName   *string     `json:"full_name,omitempty"`
	IDNumber   *string     `json:"id_number,omitempty"`
	Phone      *string     `json:"phone,omitempty"`
	Email      *string     `json:"email,omitempty"`
	Department *Department `json:"department,omitempty"`
	Status     *Status     `json:"status,omitempty"`
	Photo      *string     `json:"photo,omitempty"`
}

func (r *UpdateRequest) Empty() bool {
	return r.FullName == nil && r.IDNumber == nil && r.Phone == nil &&
		r.Email == nil && r.Department == nil && r.Status == nil && r.Photo == nil
}

func (r *UpdateRequest) Validate() error {
	if r.Empty() {
		return dErrors.New(dErrors.CodeBadRequest, "no update data provided")
	}
	if r.Department != nil && !r.Department.Valid() {
		return dErrors.New(dErrors.CodeValidation, "unknown department")
	}
	if r.Status != nil && !r.Status.Valid() {
		return dErrors.New(dErrors.CodeValidation, "unknown status")
	}
	if r.Email != nil && !strings.Contains(*r.Email, "@") {
		return dErrors.New(dErrors.CodeValidation, "a valid email is required")
	}
	return nil
}

// Filter narrows member listings.
type Filter struct {
	Department string
	Status     string
	Search     string
}
