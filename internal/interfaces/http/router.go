package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/insumos-api/internal/application/auth"
	"github.com/jhoicas/insumos-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	MaterialUC     *usecase.MaterialUseCase
	BatchUC        *usecase.BatchUseCase
	UsageUC        *usecase.UsageUseCase
	VendorUC       *usecase.VendorUseCase
	BrandUC        *usecase.BrandUseCase
	MaterialTypeUC *usecase.MaterialTypeUseCase
	PhysicianUC    *usecase.PhysicianUseCase
	DocumentUC     *usecase.DocumentUseCase
	DataLogUC      *usecase.DataLogUseCase
	DashboardUC    *usecase.DashboardUseCase
	ReportUC       *usecase.ReportUseCase
	UserUC         *usecase.UserUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Materials
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Get("/", materialHandler.List)
	materials.Post("/", materialHandler.Create)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", materialHandler.Update)
	materials.Delete("/:id", materialHandler.Delete)

	// Batches
	batches := protected.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchUC)
	batches.Post("/", batchHandler.Create)
	batches.Put("/:id", batchHandler.Update)
	batches.Delete("/:id", batchHandler.Delete)

	// Usage
	usageGroup := protected.Group("/usage")
	usageHandler := NewUsageHandler(deps.UsageUC)
	usageGroup.Post("/", usageHandler.Record)
	usageGroup.Get("/", usageHandler.List)
	usageGroup.Delete("/:id", usageHandler.Delete)

	// Catálogos de referencia
	vendors := protected.Group("/vendors")
	vendorHandler := NewVendorHandler(deps.VendorUC)
	vendors.Get("/", vendorHandler.List)
	vendors.Post("/", vendorHandler.Create)
	vendors.Put("/:id", vendorHandler.Update)
	vendors.Delete("/:id", vendorHandler.Delete)

	brands := protected.Group("/brands")
	brandHandler := NewBrandHandler(deps.BrandUC)
	brands.Get("/", brandHandler.List)
	brands.Post("/", brandHandler.Create)
	brands.Put("/:id", brandHandler.Update)
	brands.Delete("/:id", brandHandler.Delete)

	types := protected.Group("/material-types")
	typeHandler := NewMaterialTypeHandler(deps.MaterialTypeUC)
	types.Get("/", typeHandler.List)
	types.Post("/", typeHandler.Create)
	types.Put("/:id", typeHandler.Update)
	types.Delete("/:id", typeHandler.Delete)

	physicians := protected.Group("/physicians")
	physicianHandler := NewPhysicianHandler(deps.PhysicianUC)
	physicians.Get("/", physicianHandler.List)
	physicians.Post("/", physicianHandler.Create)
	physicians.Put("/:id", physicianHandler.Update)
	physicians.Delete("/:id", physicianHandler.Delete)

	// Documents
	documents := protected.Group("/documents")
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	documents.Get("/", documentHandler.List)
	documents.Post("/", documentHandler.Create)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Delete("/:id", documentHandler.Delete)

	// Bitácora (solo lectura)
	datalog := protected.Group("/datalog")
	dataLogHandler := NewDataLogHandler(deps.DataLogUC)
	datalog.Get("/", dataLogHandler.List)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/", dashboardHandler.Get)

	// Reports
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/inventory.xlsx", reportHandler.InventoryXLSX)

	// Users y permisos
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Put("/:id/permissions", userHandler.SetPermissions)
}
