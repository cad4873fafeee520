package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-lakehouse/internal/config"
	"github.com/vfg2006/sales-lakehouse/internal/domain"
	"github.com/vfg2006/sales-lakehouse/internal/usecases/pipeline"
)

// PipelineSyncConfig representa a configuração do agendador da pipeline
type PipelineSyncConfig struct {
	CronSchedule string
	Layer        domain.Layer
	SyncEnabled  bool
}

// PipelineSyncService gerencia o agendamento e a execução periódica da pipeline
type PipelineSyncService struct {
	scheduler           *gocron.Scheduler
	config              PipelineSyncConfig
	executor            pipeline.Executor
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastRunID           string
	lastError           string
}

// NewPipelineSyncService cria uma nova instância do agendador da pipeline
func NewPipelineSyncService(executor pipeline.Executor, appConfig *config.Config) (*PipelineSyncService, error) {
	layer, err := domain.ParseLayer(appConfig.PipelineSync.Layer)
	if err != nil {
		return nil, err
	}

	syncConfig := PipelineSyncConfig{
		CronSchedule: appConfig.PipelineSync.CronSchedule,
		Layer:        layer,
		SyncEnabled:  appConfig.PipelineSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"layer":         syncConfig.Layer,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador da pipeline carregada")

	return &PipelineSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		executor:  executor,
	}, nil
}

// Start inicia o agendador
func (s *PipelineSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Execução agendada da pipeline desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador da pipeline")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncPipeline(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar execução da pipeline: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador da pipeline")
		s.scheduler.Stop()
	}()

	return nil
}

// syncPipeline executa a pipeline uma vez, ignorando disparos concorrentes
func (s *PipelineSyncService) syncPipeline(ctx context.Context) {
	if !s.claim() {
		logrus.Info("Execução da pipeline já em andamento, ignorando")
		return
	}
	s.run(ctx)
}

func (s *PipelineSyncService) claim() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	return true
}

func (s *PipelineSyncService) run(ctx context.Context) {
	startTime := time.Now()
	logrus.WithField("layer", s.config.Layer).Info("Iniciando execução agendada da pipeline")

	result, err := s.executor.Run(ctx, s.config.Layer)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastError = ""
	if result != nil {
		s.lastRunID = result.RunID
	}

	fields := logrus.Fields{
		"layer":    s.config.Layer,
		"run_id":   s.lastRunID,
		"duration": time.Since(startTime).String(),
	}
	if err != nil {
		s.lastError = err.Error()
		logrus.WithFields(fields).WithError(err).Error("Execução agendada da pipeline terminou com erro")
		return
	}
	logrus.WithFields(fields).Info("Execução agendada da pipeline concluída")
}

// TriggerManualSync dispara uma execução fora do agendamento; retorna false se já houver uma em andamento
func (s *PipelineSyncService) TriggerManualSync(ctx context.Context) bool {
	if !s.claim() {
		logrus.Info("Execução da pipeline já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando execução manual da pipeline")
	go s.run(context.WithoutCancel(ctx))
	return true
}

// GetStatus retorna o status atual do agendador
func (s *PipelineSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning || s.executor.Running(),
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"sync_layer":             s.config.Layer,
		"last_run_id":            s.lastRunID,
		"last_error":             s.lastError,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
