// Package agent provides the Agent catalog: commission-earning sale agents.
package agent

import (
	"context"
	"regexp"

	"billdesk/internal/core/apperror"
	"billdesk/internal/core/entity"
	"billdesk/internal/core/types"
)

var (
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern = regexp.MustCompile(`.+@.+\..+`)
)

// Agent represents a sale agent.
// totalBills and totalCommission are derived on read, never stored.
type Agent struct {
	entity.Catalog

	// Phone is optional but unique when present
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Email is optional but unique when present
	Email *string `db:"email" json:"email,omitempty"`
}

// Summary carries the derived agent figures.
type Summary struct {
	TotalBills      int64       `db:"total_bills" json:"totalBills"`
	TotalCommission types.Money `db:"total_commission" json:"totalCommission"`
}

// WithSummary pairs an agent with its derived figures for list/detail reads.
type WithSummary struct {
	*Agent
	Summary
}

// NewAgent creates a new Agent.
func NewAgent(name string) *Agent {
	return &Agent{
		Catalog: entity.NewCatalog("", name),
	}
}

// Validate implements entity.Validatable.
func (a *Agent) Validate(ctx context.Context) error {
	if err := a.Catalog.Validate(ctx); err != nil {
		return err
	}

	if a.Phone != nil && *a.Phone != "" && !phonePattern.MatchString(*a.Phone) {
		return apperror.NewValidation("phone number must be 10 digits").
			WithDetail("field", "phone")
	}

	if a.Email != nil && *a.Email != "" && !emailPattern.MatchString(*a.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}
