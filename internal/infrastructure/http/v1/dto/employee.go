package dto

import (
	"billdesk/internal/domain/catalogs/employee"
)

// --- Request DTOs ---

type CreateEmployeeRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required"`
	Role    string  `json:"role,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Photo   *string `json:"photo,omitempty"`
}

func (r *CreateEmployeeRequest) ToEntity() *employee.Employee {
	e := employee.NewEmployee(r.Name, r.Email)
	if r.Role != "" {
		e.Role = employee.Role(r.Role)
	}
	e.Phone = r.Phone
	e.Address = r.Address
	e.Photo = r.Photo
	return e
}

type UpdateEmployeeRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Role    *string `json:"role,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Photo   *string `json:"photo,omitempty"`
	Version int     `json:"version" binding:"required,min=1"`
}

func (r *UpdateEmployeeRequest) ApplyTo(e *employee.Employee) {
	if r.Name != nil {
		e.Name = *r.Name
	}
	if r.Email != nil {
		e.Email = *r.Email
	}
	if r.Role != nil {
		e.Role = employee.Role(*r.Role)
	}
	if r.Phone != nil {
		e.Phone = r.Phone
	}
	if r.Address != nil {
		e.Address = r.Address
	}
	if r.Photo != nil {
		e.Photo = r.Photo
	}
	e.Version = r.Version
}

// --- Response DTOs ---

type EmployeeResponse struct {
	ID           string  `json:"id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	Photo        *string `json:"photo,omitempty"`
	DeletionMark bool    `json:"deletionMark,omitempty"`
	Version      int     `json:"version"`
}

func FromEmployee(e *employee.Employee) *EmployeeResponse {
	return &EmployeeResponse{
		ID:           e.ID.String(),
		Code:         e.Code,
		Name:         e.Name,
		Email:        e.Email,
		Role:         string(e.Role),
		Phone:        e.Phone,
		Address:      e.Address,
		Photo:        e.Photo,
		DeletionMark: e.DeletionMark,
		Version:      e.Version,
	}
}
