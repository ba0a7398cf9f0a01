package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"tramite-system/internal/entities"
	"tramite-system/internal/services"
	"tramite-system/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) GetTramitesReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	status := ctx.QueryParam("status")
	format := strings.ToLower(ctx.QueryParam("format"))

	data, err := c.reportService.GetTramitesReport(reqCtx, status)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, data)
	}
	return utils.SuccessResponse(ctx, data, "Reporte generado con éxito", http.StatusOK)
}

var reportHeaders = []string{
	"Número", "ID", "RFC", "Razón social", "Denominación distintiva", "Servicio",
	"Estatus", "Avance (%)", "Fecha de inicio", "Fecha de término", "Consultor asignado",
}

func rowToSlice(item entities.Tramite) []interface{} {
	const dateFmt = "02/01/2006"

	var businessName string
	if item.Client != nil {
		businessName = item.Client.BusinessName
	}
	var endDate string
	if item.EndDate != nil {
		endDate = item.EndDate.Format(dateFmt)
	}

	return []interface{}{
		item.Number, item.ID, item.ClientRFC, businessName, item.DistinctiveDenomination,
		item.ServiceName, item.Status, item.CompletionPercentage,
		item.StartDate.Format(dateFmt), endDate, item.AssignedConsultant,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, data []entities.Tramite) error {
	f := excelize.NewFile()
	sheet := "Trámites"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &reportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "K1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := rowToSlice(item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "B", 38)
	f.SetColWidth(sheet, "C", "D", 25)
	f.SetColWidth(sheet, "E", "F", 30)
	f.SetColWidth(sheet, "G", "K", 18)

	fileName := fmt.Sprintf("tramites_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
