package routes

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tramite-system/internal/controllers"
	"tramite-system/internal/repositories"
	"tramite-system/internal/services"
	"tramite-system/pkg/service"
)

func runAuthRouter(api *echo.Group, dbConn *pgxpool.Pool, jwtSvc service.JWTService, logger *zap.Logger) {
	empleadoRepo := repositories.NewEmpleadoRepository(dbConn)
	authService := services.NewAuthService(empleadoRepo, jwtSvc, logger)
	authCtrl := controllers.NewAuthController(authService, logger)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/refresh_token", authCtrl.Refresh)
	}
}
