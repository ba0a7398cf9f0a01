package routes

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tramite-system/internal/services"
	"tramite-system/pkg/config"
	"tramite-system/pkg/mailer"
	"tramite-system/pkg/middleware"
	"tramite-system/pkg/service"
)

// InitRouter construye el grafo completo de dependencias y registra
// todas las rutas bajo /api. Las rutas de auth son públicas; el resto
// pasa por el middleware de tokens.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, mail mailer.Mailer, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	logger.Info("registrando rutas")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	secureGroup := api.Group("", authMW.Auth)

	notificationService := services.NewEmailNotificationService(mail, cfg.Mail.From, logger)

	runAuthRouter(api, dbConn, jwtSvc, logger)
	runTramiteRouter(secureGroup, dbConn, notificationService, logger)
	runClienteRouter(secureGroup, dbConn, logger)
	runEmpleadoRouter(secureGroup, dbConn, logger)
	runReportRouter(secureGroup, dbConn, logger)
}
