package routes

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tramite-system/internal/controllers"
	"tramite-system/internal/repositories"
	"tramite-system/internal/services"
)

func runClienteRouter(secureGroup *echo.Group, dbConn *pgxpool.Pool, logger *zap.Logger) {
	clienteRepo := repositories.NewClienteRepository(dbConn)
	clienteService := services.NewClienteService(clienteRepo, logger)
	clienteCtrl := controllers.NewClienteController(clienteService, logger)
	{
		secureGroup.GET("/clientes", clienteCtrl.GetClientes)
		secureGroup.POST("/clientes", clienteCtrl.CreateCliente)
		secureGroup.GET("/clientes/:rfc", clienteCtrl.FindByRFC)
		secureGroup.PUT("/clientes/:rfc", clienteCtrl.UpdateCliente)
		secureGroup.DELETE("/clientes/:rfc", clienteCtrl.DeleteCliente)
	}
}
