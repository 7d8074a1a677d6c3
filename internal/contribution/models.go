package contribution

import (
	"strings"
	"time"

	dErrors "bfcms/pkg/domain-errors"
)

// Contribution is a member's giving record. The member's name and number are
// snapshotted at recording time.
type Contribution struct {
	ID               string    `json:"id"`
	MemberID         string    `json:"member_id"`
	MemberName       string    `json:"member_name"`
	MembershipNumber string    `json:"membership_number"`
	Amount           float64   `json:"amount"`
	ContributionType string    `json:"contribution_type"`
	Description      string    `json:"description,omitempty"`
	Date             string    `json:"date"`
	RecordedBy       string    `json:"recorded_by"`
	CreatedAt        time.Time `json:"created_at"`
	Seq              int64     `json:"-"`
}

// CreateRequest is the payload for recording a contribution. Date defaults to
// the request date when omitted.
type CreateRequest struct {
	MemberID         string  `json:"member_id"`
	Amount           float64 `json:"amount"`
	ContributionType string  `json:"contribution_type"`
	Description      string  `json:"description,omitempty"`
	Date             string  `json:"date,omitempty"`
}

func (r *CreateRequest) Validate() error {
	if strings.TrimSpace(r.MemberID) == "" {
		return dErrors.New(dErrors.CodeValidation, "member_id is required")
	}
	if r.Amount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "amount must be positive")
	}
	if strings.TrimSpace(r.ContributionType) == "" {
		return dErrors.New(dErrors.CodeValidation, "contribution_type is required")
	}
	if r.Date != "" {
		if _, err := time.Parse("2006-01-02", r.Date); err != nil {
			return dErrors.New(dErrors.CodeValidation, "date must be YYYY-MM-DD")
		}
	}
	return nil
}

// Filter narrows a contribution listing.
type Filter struct {
	MemberID         string
	ContributionType string
}

// TypeTotal is one contribution type's aggregate.
type TypeTotal struct {
	ContributionType string  `json:"contribution_type"`
	Total            float64 `json:"total"`
	Count            int     `json:"count"`
}

// Contributor is one member's aggregate giving.
type Contributor struct {
	MemberID   string  `json:"member_id"`
	MemberName string  `json:"member_name"`
	Total      float64 `json:"total"`
}

// Summary is the contributions overview.
type Summary struct {
	TotalContributions float64       `json:"total_contributions"`
	ByType             []TypeTotal   `json:"by_type"`
	TopContributors    []Contributor `json:"top_contributors"`
}
