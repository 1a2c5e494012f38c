package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gfsilva/setup-rastreio/internal/application/auth"
	"github.com/gfsilva/setup-rastreio/internal/application/tracking"
	"github.com/gfsilva/setup-rastreio/internal/application/usecase"
	"github.com/gfsilva/setup-rastreio/internal/domain/entity"
	"github.com/gfsilva/setup-rastreio/internal/infrastructure/export"
	"github.com/gfsilva/setup-rastreio/internal/infrastructure/pdf"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	EquipmentUC    *usecase.EquipmentUseCase
	CatalogUC      *usecase.CatalogUseCase
	UserUC         *usecase.UserUseCase
	NotificationUC *usecase.NotificationUseCase
	TrackingUC     *tracking.UseCase
	HistoryUC      *tracking.HistoryUseCase
	ReportUC       *tracking.ReportUseCase
	AuthUC         *auth.AuthUseCase
	PDFGen         *pdf.MarotoGenerator
	CSVExporter    *export.CSVExporter
	JWTSecret      string
}

// Router registra as rotas da API.
//
// Papéis: leitor consulta; editor também cadastra e movimenta;
// desenvolvedor também exclui e administra usuários.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	anyRole := RequireRole(entity.RoleLeitor, entity.RoleEditor, entity.RoleDesenvolvedor)
	canWrite := RequireRole(entity.RoleEditor, entity.RoleDesenvolvedor)
	devOnly := RequireRole(entity.RoleDesenvolvedor)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Equipamentos
	equipments := protected.Group("/equipments")
	equipmentHandler := NewEquipmentHandler(deps.EquipmentUC, deps.PDFGen, deps.CSVExporter)
	equipments.Get("/", anyRole, equipmentHandler.List)
	equipments.Post("/", canWrite, equipmentHandler.Create)
	equipments.Post("/lookup", anyRole, equipmentHandler.Lookup)
	equipments.Get("/labels.pdf", anyRole, equipmentHandler.LabelSheet)
	equipments.Get("/export.csv", anyRole, equipmentHandler.ExportCSV)
	equipments.Get("/:id", anyRole, equipmentHandler.GetByID)
	equipments.Put("/:id", canWrite, equipmentHandler.Update)
	equipments.Delete("/:id", devOnly, equipmentHandler.Delete)
	equipments.Get("/:id/label.pdf", anyRole, equipmentHandler.Label)

	// Movimentações
	trackingGroup := protected.Group("/tracking")
	trackingHandler := NewTrackingHandler(deps.TrackingUC, deps.HistoryUC, deps.CSVExporter)
	trackingGroup.Get("/", anyRole, trackingHandler.List)
	trackingGroup.Post("/", canWrite, trackingHandler.Register)
	trackingGroup.Get("/export.csv", anyRole, trackingHandler.ExportCSV)
	trackingGroup.Put("/:id", canWrite, trackingHandler.Edit)
	trackingGroup.Delete("/:id", devOnly, trackingHandler.Delete)
	trackingGroup.Post("/:id/baixa", canWrite, trackingHandler.Baixa)

	// Relatórios
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.PDFGen)
	reports.Get("/status-counts", anyRole, reportHandler.StatusCounts)
	reports.Get("/movements", anyRole, reportHandler.Movements)
	reports.Get("/movements.pdf", anyRole, reportHandler.MovementsPDF)
	reports.Get("/low-stock", anyRole, reportHandler.LowStock)
	reports.Get("/activity", anyRole, reportHandler.Activity)

	// Catálogos
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	categories := protected.Group("/categories")
	categories.Get("/", anyRole, catalogHandler.ListCategories)
	categories.Post("/", canWrite, catalogHandler.CreateCategory)
	categories.Delete("/:id", devOnly, catalogHandler.DeleteCategory)
	locations := protected.Group("/locations")
	locations.Get("/", anyRole, catalogHandler.ListLocations)
	locations.Post("/", canWrite, catalogHandler.CreateLocation)
	locations.Delete("/:id", devOnly, catalogHandler.DeleteLocation)
	sectors := protected.Group("/sectors")
	sectors.Get("/", anyRole, catalogHandler.ListSectors)
	sectors.Post("/", canWrite, catalogHandler.CreateSector)
	sectors.Delete("/:id", devOnly, catalogHandler.DeleteSector)

	// Notificações
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", anyRole, notificationHandler.List)
	notifications.Put("/:id/read", anyRole, notificationHandler.MarkRead)

	// Usuários (somente desenvolvedor)
	users := protected.Group("/users", devOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Put("/:id/role", userHandler.UpdateRole)
}
