package authenticating

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-lakehouse/internal/config"
	"github.com/vfg2006/sales-lakehouse/internal/domain"
	"github.com/vfg2006/sales-lakehouse/pkg/apiErrors"
)

func newTestService(t *testing.T, now time.Time) *Service {
	t.Helper()
	service, err := NewService(config.Auth{Secret: "segredo-de-teste"})
	require.NoError(t, err)
	service.now = func() time.Time { return now }
	return service
}

func TestNewService_RequiresSecret(t *testing.T) {
	_, err := NewService(config.Auth{})
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestService_ValidateToken(t *testing.T) {
	issuedAt := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		token    func(t *testing.T) string
		validate func(t *testing.T, claims *domain.Claims, err error)
	}{
		{
			name: "Token válido de operador",
			token: func(t *testing.T) string {
				token, err := newTestService(t, issuedAt).IssueToken("ops", domain.RoleOperator, time.Hour)
				require.NoError(t, err)
				return token
			},
			validate: func(t *testing.T, claims *domain.Claims, err error) {
				require.NoError(t, err)
				assert.Equal(t, "ops", claims.Subject)
				assert.Equal(t, domain.RoleOperator, claims.Role)
			},
		},
		{
			name: "Token expirado",
			token: func(t *testing.T) string {
				token, err := newTestService(t, issuedAt.Add(-2*time.Hour)).IssueToken("ops", domain.RoleViewer, time.Hour)
				require.NoError(t, err)
				return token
			},
			validate: func(t *testing.T, claims *domain.Claims, err error) {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrExpiredToken)

				var authErr *AuthError
				require.True(t, errors.As(err, &authErr))
				assert.Equal(t, apiErrors.ErrExpiredToken, authErr.Code)
			},
		},
		{
			name: "Assinado com outro segredo",
			token: func(t *testing.T) string {
				claims := domain.Claims{Role: domain.RoleOperator}
				token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("outro"))
				require.NoError(t, err)
				return token
			},
			validate: func(t *testing.T, claims *domain.Claims, err error) {
				assert.ErrorIs(t, err, ErrInvalidToken)
				assert.True(t, IsAuthorizationError(err))
			},
		},
		{
			name:  "Token malformado",
			token: func(t *testing.T) string { return "nao-e-um-jwt" },
			validate: func(t *testing.T, claims *domain.Claims, err error) {
				assert.ErrorIs(t, err, ErrInvalidToken)
				assert.Nil(t, claims)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(t, issuedAt)
			claims, err := service.ValidateToken(tt.token(t))
			tt.validate(t, claims, err)
		})
	}
}

func TestService_IssueToken(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	service := newTestService(t, now)

	_, err := service.IssueToken("ops", "admin", time.Hour)
	assert.ErrorIs(t, err, ErrInvalidRole)

	token, err := service.IssueToken("ops", domain.RoleViewer, 0)
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, now.Add(defaultTokenTTL), claims.ExpiresAt.Time.UTC())
}
