package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tramite-system/internal/dto"
	"tramite-system/internal/entities"
	"tramite-system/internal/repositories"
	apperrors "tramite-system/pkg/errors"
)

type TramiteServiceInterface interface {
	GetTramites(ctx context.Context) ([]entities.Tramite, error)
	FindByRFC(ctx context.Context, rfc string) ([]entities.Tramite, error)
	FindByClientBusinessName(ctx context.Context, businessName string) ([]entities.Tramite, error)
	FindByStatus(ctx context.Context, status string) ([]entities.Tramite, error)
	FindByID(ctx context.Context, id string) (*entities.Tramite, error)
	CreateTramite(ctx context.Context, payload dto.CreateTramiteDTO) (*entities.Tramite, error)
	UpdateTramite(ctx context.Context, id string, payload dto.UpdateTramiteDTO) error
	DeleteTramite(ctx context.Context, id string) error
	GetTechnicalData(ctx context.Context, id string) (*dto.TechnicalDataDTO, error)
	UpdateTechnicalData(ctx context.Context, id string, payload dto.UpdateTechnicalDataDTO) error
	UpdateSalesFlag(ctx context.Context, id string) error
	UpdateFacturacion(ctx context.Context, id string, payload dto.UpdateTramiteFacturacionDTO) error
}

// TramiteService orquesta el ciclo de vida del trámite: lecturas y
// escrituras contra los repositorios y notificaciones por correo en las
// transiciones. La persistencia siempre va primero; una falla del correo
// se registra en el log pero no revierte ni oculta la escritura.
type TramiteService struct {
	tramiteRepository   repositories.TramiteRepositoryInterface
	clienteRepository   repositories.ClienteRepositoryInterface
	empleadoService     EmpleadoServiceInterface
	notificationService NotificationServiceInterface
	logger              *zap.Logger
}

func NewTramiteService(
	tramiteRepository repositories.TramiteRepositoryInterface,
	clienteRepository repositories.ClienteRepositoryInterface,
	empleadoService EmpleadoServiceInterface,
	notificationService NotificationServiceInterface,
	logger *zap.Logger,
) *TramiteService {
	return &TramiteService{
		tramiteRepository:   tramiteRepository,
		clienteRepository:   clienteRepository,
		empleadoService:     empleadoService,
		notificationService: notificationService,
		logger:              logger,
	}
}

func (s *TramiteService) GetTramites(ctx context.Context) ([]entities.Tramite, error) {
	return s.tramiteRepository.GetTramites(ctx)
}

func (s *TramiteService) FindByRFC(ctx context.Context, rfc string) ([]entities.Tramite, error) {
	tramites, err := s.tramiteRepository.FindByClientRFC(ctx, rfc)
	if err != nil {
		return nil, err
	}
	if len(tramites) == 0 {
		return nil, apperrors.NewHttpError(http.StatusNotFound,
			"No se encontraron trámites para este RFC", apperrors.ErrNotFound, nil)
	}
	return tramites, nil
}

// FindByClientBusinessName resuelve primero el cliente por razón social.
// A diferencia de FindByRFC, una lista vacía aquí NO es error: el
// cliente existe aunque todavía no tenga trámites.
func (s *TramiteService) FindByClientBusinessName(ctx context.Context, businessName string) ([]entities.Tramite, error) {
	cliente, err := s.clienteRepository.FindByBusinessName(ctx, businessName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewHttpError(http.StatusNotFound,
				"Cliente no encontrado", apperrors.ErrNotFound, nil)
		}
		return nil, err
	}
	return s.tramiteRepository.FindByClientRFC(ctx, cliente.RFC)
}

func (s *TramiteService) FindByStatus(ctx context.Context, status string) ([]entities.Tramite, error) {
	tramites, err := s.tramiteRepository.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	if len(tramites) == 0 {
		return nil, apperrors.NewHttpError(http.StatusNotFound,
			"Estatus no encontrado", apperrors.ErrNotFound, nil)
	}
	return tramites, nil
}

func (s *TramiteService) FindByID(ctx context.Context, id string) (*entities.Tramite, error) {
	tramite, err := s.tramiteRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewHttpError(http.StatusNotFound,
				"Trámite no encontrado", apperrors.ErrNotFound, nil)
		}
		return nil, err
	}
	return tramite, nil
}

func (s *TramiteService) CreateTramite(ctx context.Context, payload dto.CreateTramiteDTO) (*entities.Tramite, error) {
	id := strings.TrimSpace(payload.ID)
	if id == "" {
		id = uuid.NewString()
	}

	exists, err := s.tramiteRepository.ExistsByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewHttpError(http.StatusConflict,
			"Trámite con ese ID ya existe", apperrors.ErrConflict, nil)
	}

	tramite := tramiteFromDTO(id, payload)
	created, err := s.tramiteRepository.CreateTramite(ctx, tramite)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewHttpError(http.StatusConflict,
				"Trámite con ese ID ya existe", apperrors.ErrConflict, nil)
		}
		return nil, err
	}

	s.sendCreationNotifications(ctx, created)

	return created, nil
}

// sendCreationNotifications avisa al cliente y al equipo de ventas. Si
// el RFC no corresponde a ningún cliente registrado no hay a quién
// avisar y el alta queda igual de válida.
func (s *TramiteService) sendCreationNotifications(ctx context.Context, tramite *entities.Tramite) {
	cliente, err := s.clienteRepository.FindByRFC(ctx, tramite.ClientRFC)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("no se pudo consultar el cliente para notificar",
				zap.String("tramiteId", tramite.ID), zap.Error(err))
		}
		return
	}

	salesEmails, err := s.empleadoService.FindSalesEmails(ctx)
	if err != nil {
		s.logger.Error("no se pudo consultar la lista de ventas",
			zap.String("tramiteId", tramite.ID), zap.Error(err))
		salesEmails = nil
	}

	if err := s.notificationService.SendTramiteCreated(cliente, tramite, salesEmails); err != nil {
		s.logger.Error("falló el envío de notificaciones de alta",
			zap.String("tramiteId", tramite.ID), zap.Error(err))
	}
}

func (s *TramiteService) UpdateTramite(ctx context.Context, id string, payload dto.UpdateTramiteDTO) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return s.tramiteRepository.UpdateTramite(ctx, id, tramiteFromDTO(id, payload))
}

func (s *TramiteService) DeleteTramite(ctx context.Context, id string) error {
	return s.tramiteRepository.DeleteTramite(ctx, id)
}

func (s *TramiteService) GetTechnicalData(ctx context.Context, id string) (*dto.TechnicalDataDTO, error) {
	tramite, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.TechnicalDataDTO{ID: tramite.ID, TechnicalData: tramite.TechnicalData}, nil
}

func (s *TramiteService) UpdateTechnicalData(ctx context.Context, id string, payload dto.UpdateTechnicalDataDTO) error {
	tramite, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.tramiteRepository.UpdateTechnicalData(ctx, id, payload.TechnicalData); err != nil {
		return err
	}
	tramite.TechnicalData = payload.TechnicalData

	if tramite.Client == nil {
		return nil
	}
	if err := s.notificationService.SendTechnicalDataUpdate(tramite.Client, tramite); err != nil {
		s.logger.Error("falló el aviso de datos técnicos",
			zap.String("tramiteId", id), zap.Error(err))
	}
	return nil
}

// UpdateSalesFlag marca el trámite como escalado a facturación. La
// bandera solo transiciona a true; cada llamada repite el aviso al
// equipo de facturación.
func (s *TramiteService) UpdateSalesFlag(ctx context.Context, id string) error {
	tramite, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	facturacionEmails, err := s.empleadoService.FindFacturacionEmails(ctx)
	if err != nil {
		return err
	}

	if err := s.tramiteRepository.UpdateSalesFlag(ctx, id, true); err != nil {
		return err
	}
	tramite.SalesFlag = true

	if err := s.notificationService.SendInvoiceNotification(facturacionEmails, tramite); err != nil {
		s.logger.Error("falló el aviso de emisión de factura",
			zap.String("tramiteId", id), zap.Error(err))
	}
	return nil
}

func (s *TramiteService) UpdateFacturacion(ctx context.Context, id string, payload dto.UpdateTramiteFacturacionDTO) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.tramiteRepository.UpdateFacturacion(ctx, id, payload); err != nil {
		return err
	}

	// Se relee después del parche para que el correo lleve los valores
	// ya persistidos.
	updated, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !clienteHasUsableEmail(updated.Client) {
		return apperrors.NewHttpError(http.StatusNotFound,
			"El cliente asociado no tiene un email válido", apperrors.ErrNotFound, nil)
	}

	if err := s.notificationService.SendBillingUpdate(updated.Client, updated); err != nil {
		s.logger.Error("falló el aviso de facturación",
			zap.String("tramiteId", id), zap.Error(err))
	}
	return nil
}

func clienteHasUsableEmail(cliente *entities.Cliente) bool {
	if cliente == nil {
		return false
	}
	if strings.TrimSpace(cliente.Email) != "" {
		return true
	}
	return cliente.Email2 != nil && strings.TrimSpace(*cliente.Email2) != ""
}

func tramiteFromDTO(id string, payload dto.CreateTramiteDTO) *entities.Tramite {
	return &entities.Tramite{
		ID:                      id,
		ClientRFC:               payload.ClientRFC,
		DistinctiveDenomination: payload.DistinctiveDenomination,
		GenericName:             payload.GenericName,
		ProductManufacturer:     payload.ProductManufacturer,
		ServiceName:             payload.ServiceName,
		SubServiceName:          payload.SubServiceName.Ptr(),
		InputValue:              payload.InputValue,
		TypeDescription:         payload.TypeDescription,
		ClassName:               payload.ClassName,
		StartDate:               payload.StartDate,
		EndDate:                 payload.EndDate.Ptr(),
		Status:                  payload.Status,
		TechnicalData:           payload.TechnicalData,
		CompletionPercentage:    payload.CompletionPercentage,

		CofeprisEntryDate:                      payload.CofeprisEntryDate.Ptr(),
		CofeprisStatus:                         payload.CofeprisStatus.Ptr(),
		CofeprisStatusHealthRegistrationNumber: payload.CofeprisStatusHealthRegistrationNumber.Ptr(),
		CofeprisStatusRegistrerNumber:          payload.CofeprisStatusRegistrerNumber.Ptr(),
		CofeprisStatusPreventionResponse:       payload.CofeprisStatusPreventionResponse.Ptr(),
		CofeprisEntryNumber:                    payload.CofeprisEntryNumber.Ptr(),
		CofeprisLink:                           payload.CofeprisLink.Ptr(),

		AssignedConsultant:    payload.AssignedConsultant,
		AdditionalInformation: payload.AdditionalInformation.Ptr(),
		Billing:               payload.Billing.Ptr(),
		PaymentStatus:         payload.PaymentStatus.Ptr(),
		PaymentDate:           payload.PaymentDate.Ptr(),
		CollectionNotes:       payload.CollectionNotes.Ptr(),
	}
}
