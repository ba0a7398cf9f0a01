package services

import (
	"context"

	"go.uber.org/zap"

	"tramite-system/internal/entities"
	"tramite-system/internal/repositories"
)

type ReportServiceInterface interface {
	GetTramitesReport(ctx context.Context, status string) ([]entities.Tramite, error)
}

// ReportService arma el corte de trámites que se exporta a Excel o se
// devuelve como JSON. Reusa el repositorio de trámites; no tiene
// tablas propias.
type ReportService struct {
	tramiteRepository repositories.TramiteRepositoryInterface
	logger            *zap.Logger
}

func NewReportService(tramiteRepository repositories.TramiteRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{tramiteRepository: tramiteRepository, logger: logger}
}

func (s *ReportService) GetTramitesReport(ctx context.Context, status string) ([]entities.Tramite, error) {
	if status != "" {
		return s.tramiteRepository.FindByStatus(ctx, status)
	}
	return s.tramiteRepository.GetTramites(ctx)
}
