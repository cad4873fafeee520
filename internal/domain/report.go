package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/vfg2006/sales-lakehouse/internal/schema"
)

type IssueKind string

const (
	IssueCoercion    IssueKind = "coercion"
	IssueReferential IssueKind = "referential"
	IssueDuplicate   IssueKind = "duplicate"
	IssueMalformed   IssueKind = "malformed"
)

// Issue registra uma linha descartada com entidade, índice e causa.
// Em linhas malformadas Row é o número da linha no arquivo de origem.
type Issue struct {
	Kind    IssueKind     `json:"kind"`
	Entity  schema.Entity `json:"entity"`
	Field   string        `json:"field,omitempty"`
	Row     int           `json:"row"`
	Source  string        `json:"source,omitempty"`
	Key     string        `json:"key,omitempty"`
	Raw     string        `json:"raw,omitempty"`
	Message string        `json:"message"`
}

// IssueFromError converte os erros tipados de linha em Issue
func IssueFromError(err error) Issue {
	var coercionErr *CoercionError
	if errors.As(err, &coercionErr) {
		return Issue{
			Kind:    IssueCoercion,
			Entity:  coercionErr.Entity,
			Field:   coercionErr.Field,
			Row:     coercionErr.Row,
			Source:  coercionErr.Source,
			Raw:     coercionErr.Raw,
			Message: coercionErr.Reason,
		}
	}

	var malformedErr *MalformedRowError
	if errors.As(err, &malformedErr) {
		return Issue{
			Kind:    IssueMalformed,
			Entity:  malformedErr.Entity,
			Row:     malformedErr.Line,
			Source:  malformedErr.Source,
			Message: malformedErr.Reason,
		}
	}

	var refErr *ReferentialIntegrityWarning
	if errors.As(err, &refErr) {
		return Issue{
			Kind:    IssueReferential,
			Entity:  refErr.Entity,
			Field:   refErr.Field,
			Row:     refErr.Row,
			Source:  refErr.Source,
			Key:     fmt.Sprintf("%d", refErr.Key),
			Message: "unresolved foreign key",
		}
	}

	return Issue{Message: err.Error()}
}

// EntityStats resume a transformação de uma entidade
type EntityStats struct {
	Entity  schema.Entity `json:"entity"`
	Read    int           `json:"read"`
	Kept    int           `json:"kept"`
	Dropped int           `json:"dropped"`
	Error   string        `json:"error,omitempty"`
}

// Report é o relatório estruturado da transformação Silver
type Report struct {
	Entities []EntityStats `json:"entities"`
	Issues   []Issue       `json:"issues"`
}

// Count conta os registros de um tipo para uma entidade
func (r *Report) Count(kind IssueKind, entity schema.Entity) int {
	if r == nil {
		return 0
	}

	total := 0
	for _, issue := range r.Issues {
		if issue.Kind == kind && issue.Entity == entity {
			total++
		}
	}
	return total
}

// Stats retorna o resumo de uma entidade
func (r *Report) Stats(entity schema.Entity) (EntityStats, bool) {
	if r == nil {
		return EntityStats{}, false
	}

	for _, stats := range r.Entities {
		if stats.Entity == entity {
			return stats, true
		}
	}
	return EntityStats{}, false
}

type Layer string

const (
	LayerSilver Layer = "silver"
	LayerGold   Layer = "gold"
	LayerAll    Layer = "all"
)

func ParseLayer(value string) (Layer, error) {
	switch Layer(value) {
	case LayerSilver, LayerGold, LayerAll:
		return Layer(value), nil
	case "bronze_to_silver":
		return LayerSilver, nil
	case "silver_to_gold":
		return LayerGold, nil
	}
	return "", fmt.Errorf("camada inválida: %q (valores aceitos: silver, gold, all)", value)
}

// ViewOutcome é o resultado de uma visão Gold numa execução
type ViewOutcome struct {
	View  string `json:"view"`
	Rows  int    `json:"rows"`
	Error string `json:"error,omitempty"`
}

// RunResult é o retorno estruturado de uma execução da pipeline
type RunResult struct {
	RunID      string        `json:"run_id"`
	Layer      Layer         `json:"layer"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Silver     *Report       `json:"silver,omitempty"`
	Views      []ViewOutcome `json:"views,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// Succeeded indica se a execução terminou sem falhas
func (r *RunResult) Succeeded() bool {
	return r != nil && r.Error == ""
}
