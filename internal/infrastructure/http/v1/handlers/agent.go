package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billdesk/internal/core/apperror"
	"billdesk/internal/core/id"
	"billdesk/internal/domain/catalogs/agent"
	"billdesk/internal/infrastructure/http/v1/dto"
)

// AgentHandler handles HTTP requests for the Agent catalog.
type AgentHandler struct {
	*CatalogHandler[*agent.Agent, dto.CreateAgentRequest, dto.UpdateAgentRequest]
	service *agent.Service
}

// NewAgentHandler creates a new agent handler.
func NewAgentHandler(base *BaseHandler, service *agent.Service) *AgentHandler {
	cfg := CatalogHandlerConfig[*agent.Agent, dto.CreateAgentRequest, dto.UpdateAgentRequest]{
		Service:    service.CatalogService,
		EntityName: "agent",
		MapCreateDTO: func(req dto.CreateAgentRequest) *agent.Agent {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateAgentRequest, existing *agent.Agent) *agent.Agent {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(a *agent.Agent) any {
			return dto.FromAgent(a)
		},
	}

	return &AgentHandler{
		CatalogHandler: NewCatalogHandler(base, cfg),
		service:        service,
	}
}

// Get override to include bill count and accumulated commission.
func (h *AgentHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	agentID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	ws, err := h.service.GetWithSummary(ctx, agentID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAgentWithSummary(*ws))
}

// List override to enrich each agent with derived totals.
func (h *AgentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	result, err := h.service.ListWithSummary(ctx, q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(result, func(ws *agent.WithSummary) *dto.AgentResponse {
		return dto.FromAgentWithSummary(*ws)
	}))
}
