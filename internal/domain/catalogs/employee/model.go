// Package employee provides the Employee catalog.
//
// Authentication and sessions are handled outside this service; employees
// exist here as referenceable parties for bills, requests, and dashboard
// counts.
package employee

import (
	"context"
	"regexp"

	"billdesk/internal/core/apperror"
	"billdesk/internal/core/entity"
)

// Role distinguishes admins from billing employees.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

var emailPattern = regexp.MustCompile(`.+@.+\..+`)

// Employee represents a staff member.
type Employee struct {
	entity.Catalog

	// Email is the unique contact/login identifier
	Email string `db:"email" json:"email"`

	// Role is admin or employee
	Role Role `db:"role" json:"role"`

	Phone   *string `db:"phone" json:"phone,omitempty"`
	Address *string `db:"address" json:"address,omitempty"`

	// Photo is the stored photo filename
	Photo *string `db:"photo" json:"photo,omitempty"`
}

// NewEmployee creates a new Employee with the employee role.
func NewEmployee(name, email string) *Employee {
	return &Employee{
		Catalog: entity.NewCatalog("", name),
		Email:   email,
		Role:    RoleEmployee,
	}
}

// Validate implements entity.Validatable.
func (e *Employee) Validate(ctx context.Context) error {
	if err := e.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !emailPattern.MatchString(e.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	switch e.Role {
	case RoleAdmin, RoleEmployee:
	default:
		return apperror.NewValidation("invalid role").
			WithDetail("field", "role").
			WithDetail("value", string(e.Role))
	}

	return nil
}
