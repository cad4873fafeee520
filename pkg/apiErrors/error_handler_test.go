package apiErrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		wantStatus int
	}{
		{name: "execução em andamento", code: ErrRunInProgress, wantStatus: http.StatusConflict},
		{name: "visão desconhecida", code: ErrViewNotFound, wantStatus: http.StatusNotFound},
		{name: "token expirado", code: ErrExpiredToken, wantStatus: http.StatusUnauthorized},
		{name: "código desconhecido vira 500", code: "XXX_999", wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.code, "mensagem", map[string]string{"view": "sales_summary"})

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, "mensagem", body.Message)
		})
	}
}

func TestFromError(t *testing.T) {
	assert.Equal(t, ErrInternalServer, FromError(nil, ErrRunFailed).Code)

	apiErr := FromError(errors.New("falhou"), ErrRunFailed)
	assert.Equal(t, ErrRunFailed, apiErr.Code)
	assert.Equal(t, "falhou", apiErr.Message)
}
