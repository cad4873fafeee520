// Package pipeline sequencia as camadas Bronze -> Silver -> Gold
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vfg2006/sales-lakehouse/internal/domain"
	"github.com/vfg2006/sales-lakehouse/internal/observability/metrics"
	"github.com/vfg2006/sales-lakehouse/internal/usecases/aggregating"
	"github.com/vfg2006/sales-lakehouse/internal/usecases/transforming"
	"github.com/vfg2006/sales-lakehouse/pkg/log"
	"github.com/vfg2006/sales-lakehouse/pkg/utils"
)

//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks

var ErrRunInProgress = errors.New("pipeline run already in progress")

// BronzeReader carrega os lotes brutos
type BronzeReader interface {
	Read(ctx context.Context) (domain.BronzeInput, error)
}

// SilverStore persiste e recarrega o snapshot Silver
type SilverStore interface {
	WriteSilver(ctx context.Context, ds *domain.SilverDataset) error
	ReadSilver(ctx context.Context) (*domain.SilverDataset, error)
}

// ViewStore persiste as visões Gold
type ViewStore interface {
	WriteView(ctx context.Context, table domain.ViewTable) error
	RemoveView(ctx context.Context, name string) error
}

// ViewPublisher publica as visões Gold num destino adicional (ex.: Postgres)
type ViewPublisher interface {
	PublishView(ctx context.Context, runID string, table domain.ViewTable) error
}

// Executor é o contrato usado pelo agendador, pela API e pela CLI
type Executor interface {
	Run(ctx context.Context, layer domain.Layer) (*domain.RunResult, error)
	LastResult() *domain.RunResult
	Running() bool
}

type Runner struct {
	reader      BronzeReader
	transformer transforming.Transformer
	silver      SilverStore
	aggregator  aggregating.Aggregator
	views       ViewStore
	publisher   ViewPublisher
	metrics     *metrics.PipelineMetrics

	mu      sync.Mutex
	running bool
	last    *domain.RunResult
}

type Option func(*Runner)

// WithPublisher habilita a publicação das visões após a gravação em Parquet
func WithPublisher(publisher ViewPublisher) Option {
	return func(r *Runner) { r.publisher = publisher }
}

func WithMetrics(m *metrics.PipelineMetrics) Option {
	return func(r *Runner) { r.metrics = m }
}

func NewRunner(
	reader BronzeReader,
	transformer transforming.Transformer,
	silver SilverStore,
	aggregator aggregating.Aggregator,
	views ViewStore,
	opts ...Option,
) *Runner {
	r := &Runner{
		reader:      reader,
		transformer: transformer,
		silver:      silver,
		aggregator:  aggregator,
		views:       views,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) RunSilver(ctx context.Context) (*domain.RunResult, error) {
	return r.Run(ctx, domain.LayerSilver)
}

func (r *Runner) RunGold(ctx context.Context) (*domain.RunResult, error) {
	return r.Run(ctx, domain.LayerGold)
}

func (r *Runner) RunAll(ctx context.Context) (*domain.RunResult, error) {
	return r.Run(ctx, domain.LayerAll)
}

// Run executa a camada pedida. Só uma execução por vez é aceita;
// o erro retornado nomeia as entidades e visões que falharam.
func (r *Runner) Run(ctx context.Context, layer domain.Layer) (*domain.RunResult, error) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil, ErrRunInProgress
	}
	r.running = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	runID, err := utils.GenerateRunID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id da execução: %w", err)
	}

	ctx = log.WithRunID(ctx, runID)
	logger := log.ForContext(ctx).WithField("layer", layer)

	result := &domain.RunResult{
		RunID:     runID,
		Layer:     layer,
		StartedAt: time.Now().UTC(),
	}
	logger.Info("Iniciando execução da pipeline")

	switch layer {
	case domain.LayerSilver:
		err = r.runSilver(ctx, result)
	case domain.LayerGold:
		err = r.runGold(ctx, result)
	case domain.LayerAll:
		err = r.runSilver(ctx, result)
		if ctx.Err() == nil && result.Silver != nil {
			err = errors.Join(err, r.runGold(ctx, result))
		}
	default:
		err = fmt.Errorf("camada inválida: %q", layer)
	}

	result.FinishedAt = time.Now().UTC()
	if err != nil {
		result.Error = err.Error()
		logger.WithError(err).Error("Execução da pipeline concluída com falhas")
	} else {
		logger.WithField("duration", result.FinishedAt.Sub(result.StartedAt).String()).Info("Execução da pipeline concluída")
	}

	r.metrics.ObserveRun(result)

	r.mu.Lock()
	r.last = result
	r.mu.Unlock()

	return result, err
}

// runSilver lê a camada Bronze, transforma e grava o snapshot Silver.
// Entidades que falharam não interrompem a gravação das demais.
func (r *Runner) runSilver(ctx context.Context, result *domain.RunResult) error {
	input, err := r.reader.Read(ctx)
	if err != nil {
		return fmt.Errorf("erro ao ler camada bronze: %w", err)
	}

	ds, report, transformErr := r.transformer.Transform(ctx, input)
	result.Silver = report
	if ds == nil {
		if transformErr == nil {
			transformErr = errors.New("transformer returned no dataset")
		}
		return transformErr
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := r.silver.WriteSilver(ctx, ds); err != nil {
		return errors.Join(transformErr, fmt.Errorf("erro ao gravar camada silver: %w", err))
	}

	return transformErr
}

// runGold recarrega o snapshot Silver persistido e calcula as visões.
// Entidades ilegíveis ficam indisponíveis e derrubam apenas as visões dependentes.
func (r *Runner) runGold(ctx context.Context, result *domain.RunResult) error {
	logger := log.ForContext(ctx)

	ds, readErr := r.silver.ReadSilver(ctx)
	if ds == nil {
		if readErr == nil {
			readErr = errors.New("silver store returned no dataset")
		}
		return fmt.Errorf("erro ao ler camada silver: %w", readErr)
	}
	if readErr != nil {
		logger.WithError(readErr).Warn("Snapshot Silver parcialmente indisponível")
	}

	results, aggErr := r.aggregator.Aggregate(ctx, ds)
	if results == nil && aggErr != nil {
		return aggErr
	}

	errs := []error{aggErr}
	for _, view := range results {
		outcome := domain.ViewOutcome{View: view.View}
		if view.Err != nil {
			outcome.Error = view.Err.Error()
			result.Views = append(result.Views, outcome)
			errs = append(errs, r.discardView(ctx, view.View))
			continue
		}

		outcome.Rows = view.Table.Len()
		if err := r.views.WriteView(ctx, view.Table); err != nil {
			err = &domain.ViewComputationError{View: view.View, Cause: err}
			outcome.Error = err.Error()
			errs = append(errs, err, r.discardView(ctx, view.View))
		} else if r.publisher != nil {
			if err := r.publisher.PublishView(ctx, result.RunID, view.Table); err != nil {
				// Falha de publicação não desfaz a gravação em Parquet
				logger.WithError(err).WithField("view", view.View).Error("Erro ao publicar visão Gold")
				errs = append(errs, fmt.Errorf("erro ao publicar visão %s: %w", view.View, err))
			}
		}
		result.Views = append(result.Views, outcome)
	}

	return errors.Join(errs...)
}

// LastResult retorna a última execução concluída, ou nil
func (r *Runner) LastResult() *domain.RunResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Running indica se há uma execução em andamento
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// discardView remove a cópia anterior de uma visão que falhou nesta execução,
// para que a leitura não devolva linhas de outra execução
func (r *Runner) discardView(ctx context.Context, name string) error {
	if err := r.views.RemoveView(ctx, name); err != nil {
		log.ForContext(ctx).WithError(err).WithField("view", name).Error("Erro ao remover visão Gold anterior")
		return fmt.Errorf("erro ao remover visão %s: %w", name, err)
	}
	return nil
}
