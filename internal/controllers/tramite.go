package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tramite-system/internal/dto"
	"tramite-system/internal/services"
	apperrors "tramite-system/pkg/errors"
	"tramite-system/pkg/utils"
)

type TramiteController struct {
	tramiteService services.TramiteServiceInterface
	logger         *zap.Logger
}

func NewTramiteController(tramiteService services.TramiteServiceInterface, logger *zap.Logger) *TramiteController {
	return &TramiteController{tramiteService: tramiteService, logger: logger}
}

func (c *TramiteController) GetTramites(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	tramites, err := c.tramiteService.GetTramites(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, tramites, "Lista de trámites obtenida con éxito", http.StatusOK)
}

func (c *TramiteController) FindByRFC(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	tramites, err := c.tramiteService.FindByRFC(reqCtx, ctx.Param("rfc"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, tramites, "Trámites del cliente obtenidos con éxito", http.StatusOK)
}

func (c *TramiteController) FindByClientBusinessName(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	tramites, err := c.tramiteService.FindByClientBusinessName(reqCtx, ctx.Param("businessName"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, tramites, "Trámites del cliente obtenidos con éxito", http.StatusOK)
}

func (c *TramiteController) FindByStatus(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	tramites, err := c.tramiteService.FindByStatus(reqCtx, ctx.Param("status"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, tramites, "Trámites obtenidos con éxito", http.StatusOK)
}

func (c *TramiteController) FindByID(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	tramite, err := c.tramiteService.FindByID(reqCtx, ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, tramite, "Trámite encontrado con éxito", http.StatusOK)
}

func (c *TramiteController) CreateTramite(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateTramiteDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "JSON no válido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	created, err := c.tramiteService.CreateTramite(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	c.logger.Info("trámite creado",
		zap.String("id", created.ID), zap.Uint64("number", created.Number))
	return utils.SuccessResponse(ctx, created, "Trámite creado con éxito", http.StatusCreated)
}

func (c *TramiteController) UpdateTramite(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id := ctx.Param("id")

	var payload dto.UpdateTramiteDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "JSON no válido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.tramiteService.UpdateTramite(reqCtx, id, payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Trámite actualizado con éxito", http.StatusOK)
}

func (c *TramiteController) DeleteTramite(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	if err := c.tramiteService.DeleteTramite(reqCtx, ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Trámite eliminado con éxito", http.StatusOK)
}

func (c *TramiteController) GetTechnicalData(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	data, err := c.tramiteService.GetTechnicalData(reqCtx, ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, data, "Datos técnicos obtenidos con éxito", http.StatusOK)
}

func (c *TramiteController) UpdateTechnicalData(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id := ctx.Param("id")

	var payload dto.UpdateTechnicalDataDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "JSON no válido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.tramiteService.UpdateTechnicalData(reqCtx, id, payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Datos técnicos actualizados con éxito", http.StatusOK)
}

func (c *TramiteController) UpdateSalesFlag(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	if err := c.tramiteService.UpdateSalesFlag(reqCtx, ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Trámite escalado a facturación con éxito", http.StatusOK)
}

func (c *TramiteController) UpdateFacturacion(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id := ctx.Param("id")

	var payload dto.UpdateTramiteFacturacionDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "JSON no válido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.tramiteService.UpdateFacturacion(reqCtx, id, payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Facturación del trámite actualizada con éxito", http.StatusOK)
}
