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

type ClienteController struct {
	clienteService services.ClienteServiceInterface
	logger         *zap.Logger
}

func NewClienteController(clienteService services.ClienteServiceInterface, logger *zap.Logger) *ClienteController {
	return &ClienteController{clienteService: clienteService, logger: logger}
}

func (c *ClienteController) GetClientes(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	clientes, total, err := c.clienteService.GetClientes(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, clientes, "Lista de clientes obtenida con éxito", http.StatusOK, total)
}

func (c *ClienteController) FindByRFC(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	cliente, err := c.clienteService.FindByRFC(reqCtx, ctx.Param("rfc"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, cliente, "Cliente encontrado con éxito", http.StatusOK)
}

func (c *ClienteController) CreateCliente(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateClienteDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "JSON no válido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	created, err := c.clienteService.CreateCliente(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, created, "Cliente creado con éxito", http.StatusCreated)
}

func (c *ClienteController) UpdateCliente(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	rfc := ctx.Param("rfc")

	var payload dto.UpdateClienteDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "JSON no válido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	updated, err := c.clienteService.UpdateCliente(reqCtx, rfc, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, updated, "Cliente actualizado con éxito", http.StatusOK)
}

func (c *ClienteController) DeleteCliente(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	if err := c.clienteService.DeleteCliente(reqCtx, ctx.Param("rfc")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Cliente eliminado con éxito", http.StatusOK)
}
