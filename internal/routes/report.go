package routes

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tramite-system/internal/controllers"
	"tramite-system/internal/repositories"
	"tramite-system/internal/services"
)

func runReportRouter(secureGroup *echo.Group, dbConn *pgxpool.Pool, logger *zap.Logger) {
	tramiteRepo := repositories.NewTramiteRepository(dbConn)
	reportService := services.NewReportService(tramiteRepo, logger)
	reportCtrl := controllers.NewReportController(reportService, logger)
	{
		secureGroup.GET("/reports/tramites", reportCtrl.GetTramitesReport)
	}
}
