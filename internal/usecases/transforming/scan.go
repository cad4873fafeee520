package transforming

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-lakehouse/internal/domain"
	"github.com/vfg2006/sales-lakehouse/internal/schema"
)

// duplicateKeyError marca uma linha cuja identidade já foi vista
type duplicateKeyError struct {
	entity schema.Entity
	key    string
	row    int
	source string
}

func (e *duplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %s in %s row=%d", e.key, e.entity, e.row)
}

// entityResult é o produto isolado da transformação de uma entidade
type entityResult[T any] struct {
	records []T
	stats   domain.EntityStats
	issues  []domain.Issue
	err     error
}

// scan percorre a união dos lotes na ordem das origens, converte cada registro
// e entrega as linhas válidas a keep. Erros de linha são registrados ou
// interrompem a entidade conforme a política configurada.
func scan[T any](entity schema.Entity, batches []domain.RawBatch, opts domain.Options, keep func(r row) (T, error)) entityResult[T] {
	result := entityResult[T]{stats: domain.EntityStats{Entity: entity}}

	c, err := newCoercer(entity, opts)
	if err != nil {
		result.err = err
		return result
	}

	index := 0
	for _, batch := range batches {
		for _, rejected := range batch.Rejected {
			result.stats.Read++

			err := &domain.MalformedRowError{Entity: entity, Source: batch.Source, Line: rejected.Line, Reason: rejected.Reason}
			if fatal(err, opts) {
				result.err = err
				result.records = nil
				return result
			}
			result.drop(entity, issueFor(err))
		}

		for _, raw := range batch.Records {
			result.stats.Read++

			r, err := c.coerce(raw, index, batch.Source)
			var record T
			if err == nil {
				record, err = keep(r)
			}
			index++

			if err == nil {
				result.records = append(result.records, record)
				result.stats.Kept++
				continue
			}

			if fatal(err, opts) {
				result.err = err
				result.records = nil
				return result
			}

			result.drop(entity, issueFor(err))
		}
	}

	return result
}

func (r *entityResult[T]) drop(entity schema.Entity, issue domain.Issue) {
	logrus.WithFields(logrus.Fields{
		"entity": entity,
		"kind":   issue.Kind,
		"row":    issue.Row,
		"source": issue.Source,
		"field":  issue.Field,
	}).Debug(issue.Message)

	r.issues = append(r.issues, issue)
	r.stats.Dropped++
}

// fatal decide se o erro de linha aborta a entidade
func fatal(err error, opts domain.Options) bool {
	var dup *duplicateKeyError
	switch {
	case errors.As(err, &dup):
		return false
	case errors.Is(err, domain.ErrCoercion):
		return opts.Coercion == domain.FailFast
	case errors.Is(err, domain.ErrReferentialIntegrity):
		return opts.Referential == domain.FailOnReferential
	}
	return true
}

func issueFor(err error) domain.Issue {
	var dup *duplicateKeyError
	if errors.As(err, &dup) {
		return domain.Issue{
			Kind:    domain.IssueDuplicate,
			Entity:  dup.entity,
			Row:     dup.row,
			Source:  dup.source,
			Key:     dup.key,
			Message: "duplicate key, first occurrence kept",
		}
	}
	return domain.IssueFromError(err)
}

// keySet registra identidades já vistas para descartar duplicatas
type keySet[K comparable] map[K]struct{}

func (s keySet[K]) claim(entity schema.Entity, key K, r row) error {
	if _, seen := s[key]; seen {
		return &duplicateKeyError{entity: entity, key: fmt.Sprint(key), row: r.index, source: r.source}
	}
	s[key] = struct{}{}
	return nil
}
