// Package aggregating calcula as visões de negócio da camada Gold a partir do snapshot Silver
package aggregating

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-lakehouse/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_aggregator.go -package=mocks

// Aggregator calcula todas as visões registradas sobre um snapshot Silver
type Aggregator interface {
	Aggregate(ctx context.Context, ds *domain.SilverDataset) ([]Result, error)
}

// Result é o produto de uma visão: a tabela calculada ou o erro que a isolou
type Result struct {
	View  string
	Table domain.ViewTable
	Err   error
}

type Service struct {
	opts  domain.Options
	views []View
}

// NewService cria o agregador; sem visões informadas usa DefaultViews
func NewService(opts domain.Options, views ...View) (*Service, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(views) == 0 {
		views = DefaultViews()
	}
	if err := validateViews(views); err != nil {
		return nil, err
	}

	return &Service{opts: opts, views: views}, nil
}

// Aggregate executa cada visão na própria goroutine. A falha de uma visão não
// interrompe as demais; o erro retornado junta um *domain.ViewComputationError
// por visão que falhou e os resultados seguem a ordem do registro.
func (s *Service) Aggregate(ctx context.Context, ds *domain.SilverDataset) ([]Result, error) {
	if ds == nil {
		return nil, fmt.Errorf("%w: nil silver dataset", domain.ErrInvalidOptions)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	startTime := time.Now()
	logrus.WithField("views", len(s.views)).Info("Iniciando cálculo das visões Gold")

	limit := s.opts.MaxConcurrentJobs
	if limit <= 0 || limit > len(s.views) {
		limit = len(s.views)
	}

	results := make([]Result, len(s.views))
	semaphore := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, view := range s.views {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(i int, view View) {
			defer func() {
				<-semaphore
				wg.Done()
			}()
			results[i] = s.compute(view, ds)
		}(i, view)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var errs []error
	for _, result := range results {
		if result.Err != nil {
			errs = append(errs, result.Err)
			logrus.WithError(result.Err).WithField("view", result.View).Error("Erro ao calcular visão Gold")
			continue
		}
		logrus.WithFields(logrus.Fields{
			"view": result.View,
			"rows": result.Table.Len(),
		}).Info("Visão Gold calculada")
	}

	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"failed":   len(errs),
	}).Info("Cálculo das visões Gold concluído")

	return results, errors.Join(errs...)
}

// compute isola a visão: dependências indisponíveis e pânicos viram ViewComputationError
func (s *Service) compute(view View, ds *domain.SilverDataset) (result Result) {
	result.View = view.Name

	defer func() {
		if r := recover(); r != nil {
			result.Table = nil
			result.Err = &domain.ViewComputationError{View: view.Name, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := ds.Require(view.Requires...); err != nil {
		result.Err = &domain.ViewComputationError{View: view.Name, Cause: err}
		return result
	}

	table, err := view.Compute(ds, s.opts)
	if err != nil {
		result.Err = &domain.ViewComputationError{View: view.Name, Cause: err}
		return result
	}

	result.Table = table
	return result
}
