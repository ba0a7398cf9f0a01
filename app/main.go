package main

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"tramite-system/internal/routes"
	"tramite-system/pkg/config"
	"tramite-system/pkg/database/postgresql"
	apperrors "tramite-system/pkg/errors"
	applogger "tramite-system/pkg/logger"
	"tramite-system/pkg/mailer"
	"tramite-system/pkg/service"
	"tramite-system/pkg/utils"
	"tramite-system/pkg/validation"
)

func main() {
	e := echo.New()
	logger := applogger.NewLogger()
	cfg := config.New()

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("pánico recuperado",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Error interno del servidor", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders: []string{"Content-Disposition"},
	}))

	v := validator.New()
	if err := validation.RegisterCustomValidations(v); err != nil {
		logger.Fatal("error al registrar las reglas de validación", zap.Error(err))
	}
	e.Validator = validation.NewValidator(v)

	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)
	mail := mailer.NewSMTPMailer(cfg.Mail)

	routes.InitRouter(e, dbConn, mail, jwtSvc, logger, cfg)

	if err := e.Start(":" + cfg.Server.Port); err != nil {
		logger.Fatal("el servidor se detuvo", zap.Error(err))
	}
}
