package handlers

import (
	"billdesk/internal/domain/catalogs/employee"
	"billdesk/internal/infrastructure/http/v1/dto"
)

// EmployeeHTTPHandler is the concrete handler type for the Employee catalog.
type EmployeeHTTPHandler = CatalogHandler[
	*employee.Employee,
	dto.CreateEmployeeRequest,
	dto.UpdateEmployeeRequest,
]

// NewEmployeeHandler creates a new employee handler.
func NewEmployeeHandler(base *BaseHandler, service *employee.Service) *EmployeeHTTPHandler {
	cfg := CatalogHandlerConfig[
		*employee.Employee,
		dto.CreateEmployeeRequest,
		dto.UpdateEmployeeRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "employee",
		MapCreateDTO: func(req dto.CreateEmployeeRequest) *employee.Employee {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateEmployeeRequest, existing *employee.Employee) *employee.Employee {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(e *employee.Employee) any {
			return dto.FromEmployee(e)
		},
	}

	return NewCatalogHandler(base, cfg)
}
