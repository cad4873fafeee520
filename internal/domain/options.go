package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// CoercionPolicy define o tratamento de falhas de conversão por linha
type CoercionPolicy string

const (
	DropInvalid CoercionPolicy = "dropInvalid"
	FailFast    CoercionPolicy = "failFast"
)

// ReferentialPolicy define o tratamento de chaves estrangeiras sem correspondência
type ReferentialPolicy string

const (
	ExcludeRow        ReferentialPolicy = "exclude"
	FailOnReferential ReferentialPolicy = "failFast"
)

// SegmentTier é uma faixa de segmentação de clientes por gasto total
type SegmentTier struct {
	Name     string
	MinSpend decimal.Decimal
}

// Options é o objeto explícito de configuração passado a cada estágio
type Options struct {
	Coercion      CoercionPolicy
	Referential   ReferentialPolicy
	NullSentinels []string
	Segments      []SegmentTier
	// MaxConcurrentJobs limita as goroutines de entidades e visões; 0 = sem limite
	MaxConcurrentJobs int
}

var DefaultNullSentinels = []string{"", "NA", "N/A", "NULL", "null", "NaN", "None"}

func DefaultOptions() Options {
	return Options{
		Coercion:      DropInvalid,
		Referential:   ExcludeRow,
		NullSentinels: DefaultNullSentinels,
		Segments: []SegmentTier{
			{Name: "VIP", MinSpend: decimal.NewFromInt(5000)},
			{Name: "Regular", MinSpend: decimal.NewFromInt(1000)},
			{Name: "Occasional", MinSpend: decimal.Zero},
		},
	}
}

// Validate verifica as políticas e ordena as faixas da maior para a menor
func (o *Options) Validate() error {
	switch o.Coercion {
	case DropInvalid, FailFast:
	default:
		return fmt.Errorf("%w: coercion policy %q", ErrInvalidOptions, o.Coercion)
	}

	switch o.Referential {
	case ExcludeRow, FailOnReferential:
	default:
		return fmt.Errorf("%w: referential policy %q", ErrInvalidOptions, o.Referential)
	}

	if len(o.Segments) == 0 {
		return fmt.Errorf("%w: at least one customer segment is required", ErrInvalidOptions)
	}

	sort.SliceStable(o.Segments, func(i, j int) bool {
		return o.Segments[i].MinSpend.GreaterThan(o.Segments[j].MinSpend)
	})

	return nil
}

// Segment retorna o nome da primeira faixa cujo mínimo é atendido pelo gasto.
// As faixas devem estar ordenadas (Validate); gasto abaixo de todas cai na última.
func (o Options) Segment(spend decimal.Decimal) string {
	for _, tier := range o.Segments {
		if spend.GreaterThanOrEqual(tier.MinSpend) {
			return tier.Name
		}
	}
	if len(o.Segments) == 0 {
		return ""
	}
	return o.Segments[len(o.Segments)-1].Name
}

// IsNull indica se o valor bruto é um sentinela de ausência
func (o Options) IsNull(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	for _, sentinel := range o.NullSentinels {
		if trimmed == sentinel {
			return true
		}
	}
	return trimmed == ""
}

// ParseSegmentTiers converte entradas "Nome:gastoMinimo" em faixas
func ParseSegmentTiers(entries []string) ([]SegmentTier, error) {
	tiers := make([]SegmentTier, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, threshold, found := strings.Cut(entry, ":")
		if !found || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: segment %q must be name:minSpend", ErrInvalidOptions, entry)
		}

		minSpend, err := decimal.NewFromString(strings.TrimSpace(threshold))
		if err != nil {
			return nil, fmt.Errorf("%w: segment %q: %v", ErrInvalidOptions, entry, err)
		}
		if minSpend.IsNegative() {
			return nil, fmt.Errorf("%w: segment %q has negative threshold", ErrInvalidOptions, entry)
		}

		tiers = append(tiers, SegmentTier{Name: strings.TrimSpace(name), MinSpend: minSpend})
	}
	return tiers, nil
}
