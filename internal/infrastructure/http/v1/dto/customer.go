package dto

import (
	"billdesk/internal/domain/catalogs/customer"
)

// --- Request DTOs ---

type CreateCustomerRequest struct {
	Name    string  `json:"name" binding:"required"`
	Phone   string  `json:"phone" binding:"required"`
	Address string  `json:"address" binding:"required"`
	Email   *string `json:"email,omitempty"`
}

func (r *CreateCustomerRequest) ToEntity() *customer.Customer {
	c := customer.NewCustomer(r.Name, r.Phone, r.Address)
	c.Email = r.Email
	return c
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Email   *string `json:"email,omitempty"`
	Version int     `json:"version" binding:"required,min=1"`
}

func (r *UpdateCustomerRequest) ApplyTo(c *customer.Customer) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Phone != nil {
		c.Phone = *r.Phone
	}
	if r.Address != nil {
		c.Address = *r.Address
	}
	if r.Email != nil {
		c.Email = r.Email
	}
	c.Version = r.Version
}

// --- Response DTOs ---

type CustomerResponse struct {
	ID           string  `json:"id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	Address      string  `json:"address"`
	Email        *string `json:"email,omitempty"`
	DeletionMark bool    `json:"deletionMark,omitempty"`
	Version      int     `json:"version"`
}

func FromCustomer(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:           c.ID.String(),
		Code:         c.Code,
		Name:         c.Name,
		Phone:        c.Phone,
		Address:      c.Address,
		Email:        c.Email,
		DeletionMark: c.DeletionMark,
		Version:      c.Version,
	}
}
