package handler

import (
	"context"
	"errors"
	"net/http"
	"os"
	"slices"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-lakehouse/internal/domain"
	"github.com/vfg2006/sales-lakehouse/pkg/apiErrors"
	"github.com/vfg2006/sales-lakehouse/pkg/log"
)

// ViewReader lê as visões Gold materializadas
type ViewReader interface {
	ReadView(ctx context.Context, name string) (domain.ViewTable, error)
}

// GetGoldView retorna as linhas da última materialização de uma visão
func GetGoldView(reader ViewReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := httprouter.ParamsFromContext(r.Context()).ByName("view")
		if !slices.Contains(domain.ViewNames(), name) {
			apiErrors.WriteError(w, apiErrors.ErrViewNotFound, "Visão desconhecida", map[string]any{
				"view":      name,
				"available": domain.ViewNames(),
			})
			return
		}

		table, err := reader.ReadView(r.Context(), name)
		if errors.Is(err, os.ErrNotExist) {
			apiErrors.WriteError(w, apiErrors.ErrViewUnavailable, "Visão ainda não materializada", map[string]string{"view": name})
			return
		}
		if err != nil {
			log.ForContext(r.Context()).WithError(err).WithField("view", name).Error("Erro ao ler visão Gold")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao ler visão", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"view": name,
			"rows": table.Len(),
			"data": table,
		})
	}
}

// ListGoldViews lista as visões publicadas pela pipeline
func ListGoldViews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"views": domain.ViewNames()})
	}
}
