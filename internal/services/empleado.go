package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tramite-system/internal/dto"
	"tramite-system/internal/entities"
	"tramite-system/internal/repositories"
	"tramite-system/pkg/types"
)

// EmpleadoServiceInterface es el directorio de empleados: además del
// CRUD expone las listas de distribución por puesto que consumen las
// notificaciones de trámites.
type EmpleadoServiceInterface interface {
	GetEmpleados(ctx context.Context, filter types.Filter) ([]entities.Empleado, uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.Empleado, error)
	FindSalesEmails(ctx context.Context) ([]string, error)
	FindFacturacionEmails(ctx context.Context) ([]string, error)
	CreateEmpleado(ctx context.Context, payload dto.CreateEmpleadoDTO) (*entities.Empleado, error)
	DeleteEmpleado(ctx context.Context, id uint64) error
}

type EmpleadoService struct {
	empleadoRepository repositories.EmpleadoRepositoryInterface
	logger             *zap.Logger
}

func NewEmpleadoService(empleadoRepository repositories.EmpleadoRepositoryInterface, logger *zap.Logger) EmpleadoServiceInterface {
	return &EmpleadoService{
		empleadoRepository: empleadoRepository,
		logger:             logger,
	}
}

func (s *EmpleadoService) GetEmpleados(ctx context.Context, filter types.Filter) ([]entities.Empleado, uint64, error) {
	return s.empleadoRepository.GetEmpleados(ctx, filter)
}

func (s *EmpleadoService) FindByID(ctx context.Context, id uint64) (*entities.Empleado, error) {
	return s.empleadoRepository.FindByID(ctx, id)
}

func (s *EmpleadoService) FindSalesEmails(ctx context.Context) ([]string, error) {
	return s.empleadoRepository.FindEmailsByPuesto(ctx, entities.PuestoVentas)
}

func (s *EmpleadoService) FindFacturacionEmails(ctx context.Context) ([]string, error) {
	return s.empleadoRepository.FindEmailsByPuesto(ctx, entities.PuestoFacturacion)
}

func (s *EmpleadoService) CreateEmpleado(ctx context.Context, payload dto.CreateEmpleadoDTO) (*entities.Empleado, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	empleado := &entities.Empleado{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Puesto:    payload.Puesto,
		Password:  string(hashed),
	}

	created, err := s.empleadoRepository.CreateEmpleado(ctx, empleado)
	if err != nil {
		s.logger.Error("error al crear empleado", zap.String("email", payload.Email), zap.Error(err))
		return nil, err
	}

	s.logger.Info("empleado creado", zap.Uint64("id", created.ID), zap.String("puesto", created.Puesto))
	return created, nil
}

func (s *EmpleadoService) DeleteEmpleado(ctx context.Context, id uint64) error {
	return s.empleadoRepository.DeleteEmpleado(ctx, id)
}
