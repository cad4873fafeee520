package handler

import (
	"context"
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-lakehouse/internal/domain"
	"github.com/vfg2006/sales-lakehouse/internal/usecases/pipeline"
	"github.com/vfg2006/sales-lakehouse/pkg/apiErrors"
	"github.com/vfg2006/sales-lakehouse/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SyncService é o agendador que executa a pipeline em segundo plano
type SyncService interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

// RunPipeline executa a camada pedida e responde com o resultado estruturado
func RunPipeline(executor pipeline.Executor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("INIT - RunPipeline")

		layerParam := r.URL.Query().Get("layer")
		if layerParam == "" {
			layerParam = string(domain.LayerAll)
		}

		layer, err := domain.ParseLayer(layerParam)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		result, err := executor.Run(r.Context(), layer)
		if errors.Is(err, pipeline.ErrRunInProgress) {
			apiErrors.WriteError(w, apiErrors.ErrRunInProgress, "Já existe uma execução da pipeline em andamento", nil)
			return
		}
		if err != nil {
			logger.WithError(err).Warn("Execução da pipeline terminou com falhas")
			apiErrors.WriteError(w, apiErrors.ErrRunFailed, err.Error(), result)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

// GetPipelineStatus retorna a última execução e se há uma em andamento
func GetPipelineStatus(executor pipeline.Executor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"running":     executor.Running(),
			"last_result": executor.LastResult(),
		})
	}
}

// TriggerPipelineSync dispara o agendador fora do horário configurado
func TriggerPipelineSync(sync SyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - TriggerPipelineSync")

		if !sync.TriggerManualSync(r.Context()) {
			apiErrors.WriteError(w, apiErrors.ErrRunInProgress, "Já existe uma execução da pipeline em andamento", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Execução da pipeline iniciada com sucesso",
		})
	}
}

func GetPipelineSyncStatus(sync SyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, sync.GetStatus())
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Warn("Erro ao serializar resposta")
	}
}
