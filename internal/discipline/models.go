package discipline

import (
	"strings"
	"time"

	dErrors "bfcms/pkg/domain-errors"
)

// CaseStatus is the lifecycle of a disciplinary case.
type CaseStatus string

const (
	StatusPending  CaseStatus = "pending"
	StatusResolved CaseStatus = "resolved"
)

func (s CaseStatus) Valid() bool {
	return s == StatusPending || s == StatusResolved
}

// Case is a disciplinary case. MemberName and MembershipNumber are snapshots
// taken when the case was opened.
type Case struct {
	ID                string     `json:"id"`
	MemberID          string     `json:"member_id"`
	MemberName        string     `json:"member_name"`
	MembershipNumber  string     `json:"membership_number"`
	CaseDescription   string     `json:"case_description"`
	DateReported      string     `json:"date_reported"`
	CommitteeDecision string     `json:"committee_decision,omitempty"`
	Sanctions         string     `json:"sanctions,omitempty"`
	Status            CaseStatus `json:"status"`
	ClosureDate       string     `json:"closure_date,omitempty"`
	CreatedBy         string     `json:"created_by"`
	CreatedAt         time.Time  `json:"created_at"`
}

// CreateRequest opens a case against a member.
type CreateRequest struct {
	MemberID        string `json:"member_id"`
	CaseDescription string `json:"case_description"`
}

func (r *CreateRequest) Validate() error {
	r.CaseDescription = strings.TrimSpace(r.CaseDescription)
	if r.MemberID == "" {
		return dErrors.New(dErrors.CodeValidation, "member_id is required")
	}
	if r.CaseDescription == "" {
		return dErrors.New(dErrors.CodeValidation, "case description is required")
	}
	return nil
}

// UpdateRequest carries a partial case update. Resolving a case stamps the
// closure date.
type UpdateRequest struct {
	CaseDescription   *string     `json:"case_description,omitempty"`
	CommitteeDecision *string     `json:"committee_decision,omitempty"`
	Sanctions         *string     `json:"sanctions,omitempty"`
	Status            *CaseStatus `json:"status,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	if r.CaseDescription == nil && r.CommitteeDecision == nil && r.Sanctions == nil && r.Status == nil {
		return dErrors.New(dErrors.CodeBadRequest, "no update data provided")
	}
	if r.Status != nil && !r.Status.Valid() {
		return dErrors.New(dErrors.CodeValidation, "unknown case status")
	}
	return nil
}
