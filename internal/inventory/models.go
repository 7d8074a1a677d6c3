package inventory

import (
	"strings"
	"time"

	dErrors "bfcms/pkg/domain-errors"
)

// Condition describes the physical state of an item.
type Condition string

const (
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
	ConditionPoor      Condition = "poor"
)

func (c Condition) Valid() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

// Item is a tracked asset. ItemCode is generated from the category prefix and
// a per-category sequence.
type Item struct {
	ID                 string    `json:"id"`
	ItemCode           string    `json:"item_code"`
	Name               string    `json:"name"`
	Category           string    `json:"category"`
	Quantity           int       `json:"quantity"`
	Condition          Condition `json:"condition"`
	Description        string    `json:"description,omitempty"`
	AssignedTo         string    `json:"assigned_to,omitempty"`
	AssignedDepartment string    `json:"assigned_department,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	CreatedBy          string    `json:"created_by"`
}

// CreateRequest registers an item.
type CreateRequest struct {
	Name               string    `json:"name"`
	Category           string    `json:"category"`
	Quantity           int       `json:"quantity"`
	Condition          Condition `json:"condition"`
	Description        string    `json:"description,omitempty"`
	AssignedTo         string    `json:"assigned_to,omitempty"`
	AssignedDepartment string    `json:"assigned_department,omitempty"`
}

func (r *CreateRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "item name is required")
	}
	if len(r.Category) < 3 {
		return dErrors.New(dErrors.CodeValidation, "category must be at least 3 characters")
	}
	if r.Quantity < 1 {
		return dErrors.New(dErrors.CodeValidation, "quantity must be at least 1")
	}
	if !r.Condition.Valid() {
		return dErrors.New(dErrors.CodeValidation, "unknown condition")
	}
	return nil
}

// UpdateRequest carries a partial item update.
type UpdateRequest struct {
	Name               *string    `json:"name,omitempty"`
	Quantity           *int       `json:"quantity,omitempty"`
	Condition          *Condition `json:"condition,omitempty"`
	Description        *string    `json:"description,omitempty"`
	AssignedTo         *string    `json:"assigned_to,omitempty"`
	AssignedDepartment *string    `json:"assigned_department,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	if r.Name == nil && r.Quantity == nil && r.Condition == nil &&
		r.Description == nil && r.AssignedTo == nil && r.AssignedDepartment == nil {
		return dErrors.New(dErrors.CodeBadRequest, "no update data provided")
	}
	if r.Condition != nil && !r.Condition.Valid() {
		return dErrors.New(dErrors.CodeValidation, "unknown condition")
	}
	if r.Quantity != nil && *r.Quantity < 0 {
		return dErrors.New(dErrors.CodeValidation, "quantity cannot be negative")
	}
	return nil
}

// Filter narrows item listings.
type Filter struct {
	Category  string
	Condition string
}
