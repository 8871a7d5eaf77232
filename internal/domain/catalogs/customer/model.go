// Package customer provides the Customer catalog.
package customer

import (
	"context"
	"regexp"

	"billdesk/internal/core/apperror"
	"billdesk/internal/core/entity"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Customer represents a billable customer.
type Customer struct {
	entity.Catalog

	// Phone is the unique 10-digit contact number
	Phone string `db:"phone" json:"phone"`

	// Address is the postal address
	Address string `db:"address" json:"address"`

	// Email is optional
	Email *string `db:"email" json:"email,omitempty"`
}

// NewCustomer creates a new Customer.
func NewCustomer(name, phone, address string) *Customer {
	return &Customer{
		Catalog: entity.NewCatalog("", name),
		Phone:   phone,
		Address: address,
	}
}

// Validate implements entity.Validatable.
func (c *Customer) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !phonePattern.MatchString(c.Phone) {
		return apperror.NewValidation("phone number must be 10 digits").
			WithDetail("field", "phone")
	}

	if c.Address == "" {
		return apperror.NewValidation("address is required").
			WithDetail("field", "address")
	}

	if c.Email != nil && *c.Email != "" && !emailPattern.MatchString(*c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}
