package routes

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tramite-system/internal/controllers"
	"tramite-system/internal/repositories"
	"tramite-system/internal/services"
)

func runTramiteRouter(secureGroup *echo.Group, dbConn *pgxpool.Pool, notificationService services.NotificationServiceInterface, logger *zap.Logger) {
	tramiteRepo := repositories.NewTramiteRepository(dbConn)
	clienteRepo := repositories.NewClienteRepository(dbConn)
	empleadoRepo := repositories.NewEmpleadoRepository(dbConn)
	empleadoService := services.NewEmpleadoService(empleadoRepo, logger)
	tramiteService := services.NewTramiteService(tramiteRepo, clienteRepo, empleadoService, notificationService, logger)
	tramiteCtrl := controllers.NewTramiteController(tramiteService, logger)
	{
		secureGroup.GET("/tramites", tramiteCtrl.GetTramites)
		secureGroup.POST("/tramites", tramiteCtrl.CreateTramite)
		secureGroup.GET("/tramites/rfc/:rfc", tramiteCtrl.FindByRFC)
		secureGroup.GET("/tramites/cliente/:businessName", tramiteCtrl.FindByClientBusinessName)
		secureGroup.GET("/tramites/status/:status", tramiteCtrl.FindByStatus)
		secureGroup.GET("/tramites/:id", tramiteCtrl.FindByID)
		secureGroup.PUT("/tramites/:id", tramiteCtrl.UpdateTramite)
		secureGroup.DELETE("/tramites/:id", tramiteCtrl.DeleteTramite)
		secureGroup.GET("/tramites/:id/datos-tecnicos", tramiteCtrl.GetTechnicalData)
		secureGroup.PUT("/tramites/:id/datos-tecnicos", tramiteCtrl.UpdateTechnicalData)
		secureGroup.PUT("/tramites/:id/sales-flag", tramiteCtrl.UpdateSalesFlag)
		secureGroup.PUT("/tramites/:id/facturacion", tramiteCtrl.UpdateFacturacion)
	}
}
