package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-lakehouse/internal/config"
	"github.com/vfg2006/sales-lakehouse/internal/domain"
	authmocks "github.com/vfg2006/sales-lakehouse/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/sales-lakehouse/internal/usecases/pipeline/mocks"
	"go.uber.org/mock/gomock"
)

type noopSync struct{}

func (noopSync) TriggerManualSync(context.Context) bool { return true }
func (noopSync) GetStatus() map[string]any              { return map[string]any{} }

type emptyViews struct{}

func (emptyViews) ReadView(context.Context, string) (domain.ViewTable, error) {
	return domain.MonthlySales{}, nil
}

func TestServer_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)
	auth := authmocks.NewMockAuthenticator(ctrl)

	cfg := &config.Config{Server: config.Server{Host: "localhost", Port: "0"}}
	srv, err := New(cfg, executor, noopSync{}, emptyViews{}, auth)
	require.NoError(t, err)
	assert.Equal(t, "localhost:0", srv.httpServer.Addr)

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		setup      func()
		wantStatus int
	}{
		{
			name:       "Healthcheck é público",
			method:     http.MethodGet,
			path:       "/healthcheck",
			setup:      func() {},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Visões exigem token",
			method:     http.MethodGet,
			path:       "/v1/gold/monthly_sales",
			setup:      func() {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "Leitor consulta visão",
			method: http.MethodGet,
			path:   "/v1/gold/monthly_sales",
			token:  "viewer",
			setup: func() {
				auth.EXPECT().ValidateToken("viewer").Return(&domain.Claims{Role: domain.RoleViewer}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "Leitor não dispara execução",
			method: http.MethodPost,
			path:   "/v1/pipeline/run",
			token:  "viewer",
			setup: func() {
				auth.EXPECT().ValidateToken("viewer").Return(&domain.Claims{Role: domain.RoleViewer}, nil)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:   "Operador dispara execução",
			method: http.MethodPost,
			path:   "/v1/pipeline/run?layer=silver",
			token:  "operator",
			setup: func() {
				auth.EXPECT().ValidateToken("operator").Return(&domain.Claims{Role: domain.RoleOperator}, nil)
				executor.EXPECT().Run(gomock.Any(), domain.LayerSilver).Return(&domain.RunResult{RunID: "x"}, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			srv.httpServer.Handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
