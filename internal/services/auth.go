package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tramite-system/internal/dto"
	"tramite-system/internal/repositories"
	apperrors "tramite-system/pkg/errors"
	"tramite-system/pkg/service"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	Refresh(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.TokenPairDTO, error)
}

type AuthService struct {
	empleadoRepository repositories.EmpleadoRepositoryInterface
	jwtService         service.JWTService
	logger             *zap.Logger
}

func NewAuthService(
	empleadoRepository repositories.EmpleadoRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		empleadoRepository: empleadoRepository,
		jwtService:         jwtService,
		logger:             logger,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	empleado, err := s.empleadoRepository.FindByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Mismo error que un password incorrecto para no revelar
			// qué correos existen.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(empleado.Password), []byte(payload.Password)); err != nil {
		s.logger.Warn("intento de login fallido", zap.String("email", payload.Email))
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(empleado.ID)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	// El empleado pudo haber sido dado de baja desde la emisión.
	if _, err := s.empleadoRepository.FindByID(ctx, claims.EmpleadoID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(claims.EmpleadoID)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
