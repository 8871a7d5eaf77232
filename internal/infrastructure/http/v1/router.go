// Package v1 provides HTTP API version 1.
package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"billdesk/internal/core/id"
	"billdesk/internal/domain/catalogs/agent"
	"billdesk/internal/domain/catalogs/customer"
	"billdesk/internal/domain/catalogs/employee"
	"billdesk/internal/domain/catalogs/item"
	"billdesk/internal/domain/catalogs/vendor"
	"billdesk/internal/domain/documents/bill"
	"billdesk/internal/domain/documents/returns"
	"billdesk/internal/domain/reports"
	"billdesk/internal/infrastructure/http/v1/handlers"
	"billdesk/internal/infrastructure/http/v1/middleware"
	"billdesk/internal/infrastructure/storage/postgres"
	"billdesk/internal/infrastructure/storage/postgres/catalog_repo"
	"billdesk/internal/infrastructure/storage/postgres/document_repo"
	"billdesk/internal/infrastructure/storage/postgres/report_repo"
	"billdesk/pkg/logger"
	"billdesk/pkg/numerator"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// TxManager coordinates database transactions
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// Numerator for document number generation
	Numerator *numerator.Service

	// RestockOnDelete returns quantities to stock when bills are deleted
	RestockOnDelete bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Repositories
	itemRepo := catalog_repo.NewItemRepo(cfg.TxManager)
	vendorRepo := catalog_repo.NewVendorRepo(cfg.TxManager)
	customerRepo := catalog_repo.NewCustomerRepo(cfg.TxManager)
	agentRepo := catalog_repo.NewAgentRepo(cfg.TxManager)
	employeeRepo := catalog_repo.NewEmployeeRepo(cfg.TxManager)
	billRepo := document_repo.NewBillRepo(cfg.TxManager)
	requestRepo := document_repo.NewReturnExchangeRepo(cfg.TxManager)
	reportRepo := report_repo.NewReportRepo(cfg.TxManager)

	// Services
	itemService := item.NewService(itemRepo, vendorRepo, cfg.Numerator, cfg.TxManager)
	vendorService := vendor.NewService(vendorRepo, cfg.Numerator, cfg.TxManager)
	customerService := customer.NewService(customerRepo, cfg.Numerator, cfg.TxManager)
	agentService := agent.NewService(agentRepo, reportRepo, cfg.Numerator, cfg.TxManager)
	employeeService := employee.NewService(employeeRepo, cfg.Numerator, cfg.TxManager)

	parties := &partyDirectory{
		customers: customerRepo,
		agents:    agentRepo,
		employees: employeeRepo,
	}
	billService := bill.NewService(billRepo, itemRepo, parties, cfg.Numerator, cfg.TxManager,
		bill.Options{RestockOnDelete: cfg.RestockOnDelete})
	returnsService := returns.NewService(requestRepo, billService, itemRepo, cfg.Numerator)
	reportService := reports.NewService(reportRepo)

	// Handlers
	baseHandler := handlers.NewBaseHandler()
	itemHandler := handlers.NewItemHandler(baseHandler, itemService)
	vendorHandler := handlers.NewVendorHandler(baseHandler, vendorService)
	customerHandler := handlers.NewCustomerHandler(baseHandler, customerService)
	agentHandler := handlers.NewAgentHandler(baseHandler, agentService)
	employeeHandler := handlers.NewEmployeeHandler(baseHandler, employeeService)
	billHandler := handlers.NewBillHandler(baseHandler, billService)
	returnsHandler := handlers.NewReturnExchangeHandler(baseHandler, returnsService)
	reportsHandler := handlers.NewReportsHandler(baseHandler, reportService)

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		items := apiV1.Group("/items")
		RegisterCatalogRoutes(items, itemHandler)
		items.GET("/search", itemHandler.Search)
		items.GET("/stock/low", itemHandler.LowStock)

		RegisterCatalogRoutes(apiV1.Group("/vendors"), vendorHandler)
		RegisterCatalogRoutes(apiV1.Group("/customers"), customerHandler)
		RegisterCatalogRoutes(apiV1.Group("/agents"), agentHandler)
		RegisterCatalogRoutes(apiV1.Group("/employees"), employeeHandler)

		billHandler.RegisterRoutes(apiV1.Group("/bills"))
		returnsHandler.RegisterRoutes(apiV1.Group("/return-exchange"))
		reportsHandler.RegisterRoutes(apiV1.Group("/dashboard"))
	}

	return router
}

// partyDirectory adapts the catalog repositories to the bill engine's
// existence checks.
type partyDirectory struct {
	customers *catalog_repo.CustomerRepo
	agents    *catalog_repo.AgentRepo
	employees *catalog_repo.EmployeeRepo
}

func (d *partyDirectory) CustomerExists(ctx context.Context, customerID id.ID) (bool, error) {
	return d.customers.Exists(ctx, customerID)
}

func (d *partyDirectory) AgentExists(ctx context.Context, agentID id.ID) (bool, error) {
	return d.agents.Exists(ctx, agentID)
}

func (d *partyDirectory) EmployeeExists(ctx context.Context, employeeID id.ID) (bool, error) {
	return d.employees.Exists(ctx, employeeID)
}
