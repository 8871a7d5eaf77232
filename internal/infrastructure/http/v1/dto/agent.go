package dto

import (
	"billdesk/internal/core/types"
	"billdesk/internal/domain/catalogs/agent"
)

// --- Request DTOs ---

type CreateAgentRequest struct {
	Name  string  `json:"name" binding:"required"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

func (r *CreateAgentRequest) ToEntity() *agent.Agent {
	a := agent.NewAgent(r.Name)
	a.Phone = r.Phone
	a.Email = r.Email
	return a
}

type UpdateAgentRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Version int     `json:"version" binding:"required,min=1"`
}

func (r *UpdateAgentRequest) ApplyTo(a *agent.Agent) {
	if r.Name != nil {
		a.Name = *r.Name
	}
	if r.Phone != nil {
		a.Phone = r.Phone
	}
	if r.Email != nil {
		a.Email = r.Email
	}
	a.Version = r.Version
}

// --- Response DTOs ---

type AgentResponse struct {
	ID              string      `json:"id"`
	Code            string      `json:"code"`
	Name            string      `json:"name"`
	Phone           *string     `json:"phone,omitempty"`
	Email           *string     `json:"email,omitempty"`
	TotalBills      int64       `json:"totalBills"`
	TotalCommission types.Money `json:"totalCommission"`
	DeletionMark    bool        `json:"deletionMark,omitempty"`
	Version         int         `json:"version"`
}

func FromAgent(a *agent.Agent) *AgentResponse {
	return &AgentResponse{
		ID:              a.ID.String(),
		Code:            a.Code,
		Name:            a.Name,
		Phone:           a.Phone,
		Email:           a.Email,
		TotalCommission: types.Zero(),
		DeletionMark:    a.DeletionMark,
		Version:         a.Version,
	}
}

func FromAgentWithSummary(a agent.WithSummary) *AgentResponse {
	resp := FromAgent(a.Agent)
	resp.TotalBills = a.TotalBills
	resp.TotalCommission = a.TotalCommission
	return resp
}
