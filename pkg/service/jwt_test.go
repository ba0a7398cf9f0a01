package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tramite-system/pkg/errors"
)

func TestGenerateAndValidateTokens(t *testing.T) {
	svc := NewJWTService("clave-de-prueba", time.Hour, 24*time.Hour)

	access, refresh, err := svc.GenerateTokens(42)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	accessClaims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), accessClaims.EmpleadoID)
	assert.False(t, accessClaims.IsRefreshToken)

	refreshClaims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, refreshClaims.IsRefreshToken)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := NewJWTService("clave-de-prueba", -time.Minute, -time.Minute)

	access, _, err := svc.GenerateTokens(1)
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	svc := NewJWTService("clave-de-prueba", time.Hour, time.Hour)
	otro := NewJWTService("otra-clave", time.Hour, time.Hour)

	access, _, err := svc.GenerateTokens(1)
	require.NoError(t, err)

	_, err = otro.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewJWTService("clave-de-prueba", time.Hour, time.Hour)

	_, err := svc.ValidateToken("no-es-un-jwt")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
