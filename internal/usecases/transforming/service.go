// Package transforming converte os lotes brutos da camada Bronze nos conjuntos canônicos da camada Silver
package transforming

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-lakehouse/internal/domain"
	"github.com/vfg2006/sales-lakehouse/internal/schema"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_transformer.go -package=mocks

// Transformer produz o conjunto Silver a partir da entrada Bronze
type Transformer interface {
	Transform(ctx context.Context, input domain.BronzeInput) (*domain.SilverDataset, *domain.Report, error)
}

type Service struct {
	opts domain.Options
}

func NewService(opts domain.Options) (*Service, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Service{opts: opts}, nil
}

// Transform executa as entidades em ordem de dependência:
// {clientes, produtos, territórios} -> {vendas, devoluções} -> calendário.
// Entidades independentes rodam em paralelo; cada goroutine escreve apenas no próprio resultado.
// O erro retornado junta um *domain.EntityError por entidade que falhou; as demais seguem no dataset.
func (s *Service) Transform(ctx context.Context, input domain.BronzeInput) (*domain.SilverDataset, *domain.Report, error) {
	startTime := time.Now()
	logrus.WithFields(logrus.Fields{
		"customers":   input.Len(schema.Customers),
		"products":    input.Len(schema.Products),
		"territories": input.Len(schema.Territories),
		"sales":       input.Len(schema.Sales),
		"returns":     input.Len(schema.Returns),
	}).Info("Iniciando transformação Bronze -> Silver")

	if len(input[schema.Calendar]) > 0 {
		logrus.Info("Calendário bruto ignorado: o calendário é derivado das vendas")
	}

	dataset := domain.NewSilverDataset()
	var (
		customers   entityResult[domain.CustomerRecord]
		products    entityResult[domain.ProductRecord]
		territories entityResult[domain.TerritoryRecord]
		sales       entityResult[domain.SalesRecord]
		returns     entityResult[domain.ReturnRecord]
		calendar    entityResult[domain.CalendarRecord]
	)

	s.parallel(
		func() { customers = transformCustomers(input[schema.Customers], s.opts) },
		func() { products = transformProducts(input[schema.Products], s.opts) },
		func() { territories = transformTerritories(input[schema.Territories], s.opts) },
	)

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	refs := newReferences(products.records, customers.records, territories.records)
	salesDeps := failedOf(
		entityFailure{schema.Products, products.err},
		entityFailure{schema.Customers, customers.err},
		entityFailure{schema.Territories, territories.err},
	)
	returnsDeps := failedOf(
		entityFailure{schema.Products, products.err},
		entityFailure{schema.Territories, territories.err},
	)

	s.parallel(
		func() {
			if len(salesDeps) > 0 {
				sales = entityResult[domain.SalesRecord]{stats: domain.EntityStats{Entity: schema.Sales}, err: dependencyFailed(salesDeps...)}
				return
			}
			sales = transformSales(input[schema.Sales], s.opts, refs)
		},
		func() {
			if len(returnsDeps) > 0 {
				returns = entityResult[domain.ReturnRecord]{stats: domain.EntityStats{Entity: schema.Returns}, err: dependencyFailed(returnsDeps...)}
				return
			}
			returns = transformReturns(input[schema.Returns], s.opts, refs)
		},
	)

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	if sales.err != nil {
		calendar = entityResult[domain.CalendarRecord]{stats: domain.EntityStats{Entity: schema.Calendar}, err: dependencyFailed(schema.Sales)}
	} else {
		calendar = deriveCalendar(sales.records)
	}

	dataset.Customers = customers.records
	dataset.Products = products.records
	dataset.Territories = territories.records
	dataset.Sales = sales.records
	dataset.Returns = returns.records
	dataset.Calendar = calendar.records

	report := &domain.Report{}
	var errs []error
	collect := func(stats domain.EntityStats, issues []domain.Issue, err error) {
		if err != nil {
			stats.Error = err.Error()
			dataset.MarkUnavailable(stats.Entity, err)
			errs = append(errs, &domain.EntityError{Entity: stats.Entity, Err: err})

			logrus.WithError(err).WithField("entity", stats.Entity).Error("Erro ao transformar entidade")
		} else {
			logrus.WithFields(logrus.Fields{
				"entity":  stats.Entity,
				"read":    stats.Read,
				"kept":    stats.Kept,
				"dropped": stats.Dropped,
			}).Info("Entidade transformada")
		}
		report.Entities = append(report.Entities, stats)
		report.Issues = append(report.Issues, issues...)
	}

	collect(customers.stats, customers.issues, customers.err)
	collect(products.stats, products.issues, products.err)
	collect(territories.stats, territories.issues, territories.err)
	collect(sales.stats, sales.issues, sales.err)
	collect(returns.stats, returns.issues, returns.err)
	collect(calendar.stats, calendar.issues, calendar.err)

	if len(report.Issues) > 0 {
		logrus.WithField("issues", len(report.Issues)).Warn("Linhas descartadas durante a transformação")
	}

	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"failed":   len(errs),
	}).Info("Transformação Bronze -> Silver concluída")

	return dataset, report, errors.Join(errs...)
}

// parallel executa as tarefas em goroutines respeitando MaxConcurrentJobs
func (s *Service) parallel(tasks ...func()) {
	limit := s.opts.MaxConcurrentJobs
	if limit <= 0 || limit > len(tasks) {
		limit = len(tasks)
	}

	semaphore := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for _, task := range tasks {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(run func()) {
			defer func() {
				<-semaphore
				wg.Done()
			}()
			run()
		}(task)
	}

	wg.Wait()
}

type entityFailure struct {
	entity schema.Entity
	err    error
}

func failedOf(deps ...entityFailure) []schema.Entity {
	var failed []schema.Entity
	for _, dep := range deps {
		if dep.err != nil {
			failed = append(failed, dep.entity)
		}
	}
	return failed
}
