package domain

import (
	"fmt"

	"github.com/vfg2006/sales-lakehouse/internal/schema"
)

// SilverDataset contém os conjuntos canônicos de todas as entidades de uma execução.
// Entidades que falharam na transformação ou na leitura ficam marcadas como indisponíveis.
type SilverDataset struct {
	Calendar    []CalendarRecord
	Customers   []CustomerRecord
	Products    []ProductRecord
	Sales       []SalesRecord
	Returns     []ReturnRecord
	Territories []TerritoryRecord

	unavailable map[schema.Entity]error
}

func NewSilverDataset() *SilverDataset {
	return &SilverDataset{
		unavailable: make(map[schema.Entity]error),
	}
}

// MarkUnavailable registra que a entidade não pode ser usada e o motivo
func (d *SilverDataset) MarkUnavailable(entity schema.Entity, cause error) {
	if d.unavailable == nil {
		d.unavailable = make(map[schema.Entity]error)
	}
	d.unavailable[entity] = cause
}

func (d *SilverDataset) Available(entity schema.Entity) bool {
	_, failed := d.unavailable[entity]
	return !failed
}

// Unavailable retorna o motivo da indisponibilidade, ou nil
func (d *SilverDataset) Unavailable(entity schema.Entity) error {
	return d.unavailable[entity]
}

// Require falha com ErrEntityUnavailable na primeira entidade indisponível
func (d *SilverDataset) Require(entities ...schema.Entity) error {
	for _, entity := range entities {
		if cause, failed := d.unavailable[entity]; failed {
			return &EntityError{
				Entity: entity,
				Err:    fmt.Errorf("%w: %w", ErrEntityUnavailable, cause),
			}
		}
	}
	return nil
}

// Len retorna a quantidade de registros de uma entidade
func (d *SilverDataset) Len(entity schema.Entity) int {
	switch entity {
	case schema.Calendar:
		return len(d.Calendar)
	case schema.Customers:
		return len(d.Customers)
	case schema.Products:
		return len(d.Products)
	case schema.Sales:
		return len(d.Sales)
	case schema.Returns:
		return len(d.Returns)
	case schema.Territories:
		return len(d.Territories)
	}
	return 0
}
