package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/despachos-api/internal/application/analytics"
	"github.com/jhoicas/despachos-api/internal/application/auth"
	"github.com/jhoicas/despachos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Despachos     despachoService
	Exporter      lineExporter
	DispatchSheet dispatchSheetGenerator
	AuthUC        *auth.AuthUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	anyOperator := RequireRole(entity.RoleAdmin, entity.RoleDespachador)

	despachoHandler := NewDespachoHandler(deps.Despachos, deps.Exporter, deps.DispatchSheet)
	despachos := protected.Group("/despachos")
	despachos.Get("/", anyOperator, despachoHandler.List)
	despachos.Get("/buscar/:codigo", anyOperator, despachoHandler.Find)
	despachos.Post("/refrescar", adminOnly, despachoHandler.Refresh)
	despachos.Get("/export.xlsx", adminOnly, despachoHandler.ExportXLSX)
	despachos.Get("/:documento/planilla.pdf", adminOnly, despachoHandler.DispatchSheet)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/resumen", adminOnly, dashboardHandler.GetSummary)
}
