package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tramite-system/internal/dto"
	"tramite-system/internal/services"
	apperrors "tramite-system/pkg/errors"
	"tramite-system/pkg/utils"
)

type EmpleadoController struct {
	empleadoService services.EmpleadoServiceInterface
	logger          *zap.Logger
}

func NewEmpleadoController(empleadoService services.EmpleadoServiceInterface, logger *zap.Logger) *EmpleadoController {
	return &EmpleadoController{empleadoService: empleadoService, logger: logger}
}

func (c *EmpleadoController) GetEmpleados(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	empleados, total, err := c.empleadoService.GetEmpleados(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, empleados, "Lista de empleados obtenida con éxito", http.StatusOK, total)
}

func (c *EmpleadoController) FindByID(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "ID no válido", err, nil),
			c.logger)
	}

	empleado, err := c.empleadoService.FindByID(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, empleado, "Empleado encontrado con éxito", http.StatusOK)
}

func (c *EmpleadoController) CreateEmpleado(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateEmpleadoDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "JSON no válido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	created, err := c.empleadoService.CreateEmpleado(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, created, "Empleado creado con éxito", http.StatusCreated)
}

func (c *EmpleadoController) DeleteEmpleado(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "ID no válido", err, nil),
			c.logger)
	}

	if err := c.empleadoService.DeleteEmpleado(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Empleado eliminado con éxito", http.StatusOK)
}
