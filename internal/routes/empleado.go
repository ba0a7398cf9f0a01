package routes

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tramite-system/internal/controllers"
	"tramite-system/internal/repositories"
	"tramite-system/internal/services"
)

func runEmpleadoRouter(secureGroup *echo.Group, dbConn *pgxpool.Pool, logger *zap.Logger) {
	empleadoRepo := repositories.NewEmpleadoRepository(dbConn)
	empleadoService := services.NewEmpleadoService(empleadoRepo, logger)
	empleadoCtrl := controllers.NewEmpleadoController(empleadoService, logger)
	{
		secureGroup.GET("/empleados", empleadoCtrl.GetEmpleados)
		secureGroup.POST("/empleados", empleadoCtrl.CreateEmpleado)
		secureGroup.GET("/empleados/:id", empleadoCtrl.FindByID)
		secureGroup.DELETE("/empleados/:id", empleadoCtrl.DeleteEmpleado)
	}
}
