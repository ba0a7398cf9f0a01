package services

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"tramite-system/internal/dto"
	"tramite-system/internal/entities"
	"tramite-system/internal/repositories"
	apperrors "tramite-system/pkg/errors"
	"tramite-system/pkg/types"
)

type ClienteServiceInterface interface {
	GetClientes(ctx context.Context, filter types.Filter) ([]entities.Cliente, uint64, error)
	FindByRFC(ctx context.Context, rfc string) (*entities.Cliente, error)
	CreateCliente(ctx context.Context, payload dto.CreateClienteDTO) (*entities.Cliente, error)
	UpdateCliente(ctx context.Context, rfc string, payload dto.UpdateClienteDTO) (*entities.Cliente, error)
	DeleteCliente(ctx context.Context, rfc string) error
}

type ClienteService struct {
	clienteRepository repositories.ClienteRepositoryInterface
	logger            *zap.Logger
}

func NewClienteService(clienteRepository repositories.ClienteRepositoryInterface, logger *zap.Logger) ClienteServiceInterface {
	return &ClienteService{
		clienteRepository: clienteRepository,
		logger:            logger,
	}
}

func (s *ClienteService) GetClientes(ctx context.Context, filter types.Filter) ([]entities.Cliente, uint64, error) {
	return s.clienteRepository.GetClientes(ctx, filter)
}

func (s *ClienteService) FindByRFC(ctx context.Context, rfc string) (*entities.Cliente, error) {
	cliente, err := s.clienteRepository.FindByRFC(ctx, rfc)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewHttpError(http.StatusNotFound,
				"Cliente no encontrado", apperrors.ErrNotFound, nil)
		}
		return nil, err
	}
	return cliente, nil
}

func (s *ClienteService) CreateCliente(ctx context.Context, payload dto.CreateClienteDTO) (*entities.Cliente, error) {
	created, err := s.clienteRepository.CreateCliente(ctx, payload)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewHttpError(http.StatusConflict,
				"Cliente con ese RFC ya existe", apperrors.ErrConflict, nil)
		}
		s.logger.Error("error al crear cliente", zap.String("rfc", payload.RFC), zap.Error(err))
		return nil, err
	}
	return created, nil
}

// UpdateCliente actualiza los datos de contacto; el RFC es inmutable y
// el DTO ni siquiera lo expone.
func (s *ClienteService) UpdateCliente(ctx context.Context, rfc string, payload dto.UpdateClienteDTO) (*entities.Cliente, error) {
	updated, err := s.clienteRepository.UpdateCliente(ctx, rfc, payload)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewHttpError(http.StatusNotFound,
				"Cliente no encontrado", apperrors.ErrNotFound, nil)
		}
		return nil, err
	}
	return updated, nil
}

func (s *ClienteService) DeleteCliente(ctx context.Context, rfc string) error {
	if err := s.clienteRepository.DeleteCliente(ctx, rfc); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewHttpError(http.StatusNotFound,
				"Cliente no encontrado", apperrors.ErrNotFound, nil)
		}
		return err
	}
	return nil
}
