// Package parquet persiste os conjuntos Silver e as visões Gold em arquivos Parquet
package parquet

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	parquetgo "github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-lakehouse/internal/domain"
	"github.com/vfg2006/sales-lakehouse/internal/schema"
)

const fileExtension = ".parquet"

var ErrUnknownView = errors.New("unknown view")

// Sink grava um arquivo por entidade em silverDir e um por visão em goldDir
type Sink struct {
	silverDir string
	goldDir   string
}

func NewSink(silverDir, goldDir string) *Sink {
	return &Sink{silverDir: silverDir, goldDir: goldDir}
}

func (s *Sink) SilverPath(entity schema.Entity) string {
	return filepath.Join(s.silverDir, string(entity)+fileExtension)
}

func (s *Sink) ViewPath(view string) string {
	return filepath.Join(s.goldDir, view+fileExtension)
}

// WriteSilver grava as entidades disponíveis. O arquivo de uma entidade
// indisponível é removido para que a leitura seguinte não use dados antigos.
func (s *Sink) WriteSilver(ctx context.Context, ds *domain.SilverDataset) error {
	if err := os.MkdirAll(s.silverDir, 0o755); err != nil {
		return errors.Wrapf(err, "erro ao criar diretório %s", s.silverDir)
	}

	var errs []error
	for _, entity := range schema.Entities() {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := s.SilverPath(entity)
		if !ds.Available(entity) {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				errs = append(errs, &domain.EntityError{Entity: entity, Err: err})
			}
			continue
		}

		if err := s.writeEntity(path, entity, ds); err != nil {
			errs = append(errs, &domain.EntityError{Entity: entity, Err: err})
			continue
		}

		logrus.WithFields(logrus.Fields{
			"entity": entity,
			"rows":   ds.Len(entity),
			"path":   path,
		}).Info("Entidade Silver gravada")
	}

	return stderrors.Join(errs...)
}

func (s *Sink) writeEntity(path string, entity schema.Entity, ds *domain.SilverDataset) error {
	switch entity {
	case schema.Calendar:
		return writeRows(path, ds.Calendar, fromCalendar)
	case schema.Customers:
		return writeRows(path, ds.Customers, fromCustomer)
	case schema.Products:
		return writeRows(path, ds.Products, fromProduct)
	case schema.Sales:
		return writeRows(path, ds.Sales, fromSales)
	case schema.Returns:
		return writeRows(path, ds.Returns, fromReturn)
	case schema.Territories:
		return writeRows(path, ds.Territories, fromTerritory)
	}
	return &schema.UnknownEntityError{Entity: string(entity)}
}

// ReadSilver carrega todas as entidades. Falhas de leitura marcam a entidade
// como indisponível no dataset e são devolvidas juntas, sem interromper as demais.
func (s *Sink) ReadSilver(ctx context.Context) (*domain.SilverDataset, error) {
	ds := domain.NewSilverDataset()

	var errs []error
	for _, entity := range schema.Entities() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := s.readEntity(s.SilverPath(entity), entity, ds); err != nil {
			ds.MarkUnavailable(entity, err)
			errs = append(errs, &domain.EntityError{Entity: entity, Err: err})

			logrus.WithError(err).WithField("entity", entity).Warn("Entidade Silver indisponível")
		}
	}

	return ds, stderrors.Join(errs...)
}

func (s *Sink) readEntity(path string, entity schema.Entity, ds *domain.SilverDataset) (err error) {
	switch entity {
	case schema.Calendar:
		ds.Calendar, err = readRows[domain.CalendarRecord, calendarRow](path)
	case schema.Customers:
		ds.Customers, err = readRows[domain.CustomerRecord, customerRow](path)
	case schema.Products:
		ds.Products, err = readRows[domain.ProductRecord, productRow](path)
	case schema.Sales:
		ds.Sales, err = readRows[domain.SalesRecord, salesRow](path)
	case schema.Returns:
		ds.Returns, err = readRows[domain.ReturnRecord, returnRow](path)
	case schema.Territories:
		ds.Territories, err = readRows[domain.TerritoryRecord, territoryRow](path)
	default:
		err = &schema.UnknownEntityError{Entity: string(entity)}
	}
	return err
}

// WriteView grava uma visão Gold em <goldDir>/<view>.parquet
func (s *Sink) WriteView(ctx context.Context, table domain.ViewTable) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.goldDir, 0o755); err != nil {
		return errors.Wrapf(err, "erro ao criar diretório %s", s.goldDir)
	}

	path := s.ViewPath(table.ViewName())

	var err error
	switch view := table.(type) {
	case domain.SalesSummary:
		err = writeRows(path, view, fromSalesSummary)
	case domain.CustomerInsights:
		err = writeRows(path, view, fromCustomerInsight)
	case domain.MonthlySales:
		err = writeRows(path, view, fromMonthlySales)
	case domain.ProductAnalytics:
		err = writeRows(path, view, fromProductAnalytics)
	default:
		return errors.Wrapf(ErrUnknownView, "%s", table.ViewName())
	}
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"view": table.ViewName(),
		"rows": table.Len(),
		"path": path,
	}).Info("Visão Gold gravada")

	return nil
}

// RemoveView apaga o arquivo de uma visão. Visão sem arquivo não é erro.
func (s *Sink) RemoveView(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.ViewPath(name)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "erro ao remover visão %s", name)
	}
	return nil
}

// ReadView carrega uma visão Gold gravada anteriormente
func (s *Sink) ReadView(ctx context.Context, name string) (domain.ViewTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.ViewPath(name)
	switch name {
	case domain.ViewSalesSummary:
		rows, err := readRows[domain.SalesSummaryRow, salesSummaryRow](path)
		if err != nil {
			return nil, err
		}
		return domain.SalesSummary(rows), nil
	case domain.ViewCustomerInsights:
		rows, err := readRows[domain.CustomerInsightRow, customerInsightRow](path)
		if err != nil {
			return nil, err
		}
		return domain.CustomerInsights(rows), nil
	case domain.ViewMonthlySales:
		rows, err := readRows[domain.MonthlySalesRow, monthlySalesRow](path)
		if err != nil {
			return nil, err
		}
		return domain.MonthlySales(rows), nil
	case domain.ViewProductAnalytics:
		rows, err := readRows[domain.ProductAnalyticsRow, productAnalyticsRow](path)
		if err != nil {
			return nil, err
		}
		return domain.ProductAnalytics(rows), nil
	}

	return nil, errors.Wrapf(ErrUnknownView, "%s", name)
}

// writeRows converte os registros e grava num arquivo temporário renomeado ao final
func writeRows[T any, R any](path string, records []T, convert func(T) R) error {
	rows := make([]R, len(records))
	for i, record := range records {
		rows[i] = convert(record)
	}

	tmp := path + ".tmp"
	if err := parquetgo.WriteFile(tmp, rows); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, "erro ao gravar %s", path)
	}

	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, "erro ao mover %s", tmp)
	}
	return nil
}

type recordRow[T any] interface {
	record() (T, error)
}

func readRows[T any, R recordRow[T]](path string) ([]T, error) {
	rows, err := parquetgo.ReadFile[R](path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler %s", path)
	}

	records := make([]T, len(rows))
	for i, row := range rows {
		record, err := row.record()
		if err != nil {
			return nil, fmt.Errorf("erro ao converter linha %d de %s: %w", i, path, err)
		}
		records[i] = record
	}
	return records, nil
}
