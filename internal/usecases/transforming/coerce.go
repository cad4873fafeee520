package transforming

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-lakehouse/internal/domain"
	"github.com/vfg2006/sales-lakehouse/internal/schema"
)

// Formatos de data aceitos na entrada bruta, na ordem de tentativa.
// "1/2/2006" também aceita dia e mês com zero à esquerda.
var dateLayouts = []string{
	time.DateOnly,
	"1/2/2006",
	"2006/01/02",
	time.DateTime,
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	time.RFC3339,
}

// value é um valor tipado; present=false representa ausência
type value struct {
	present bool
	integer int64
	decimal decimal.Decimal
	text    string
	date    time.Time
	boolean bool
}

// row é um registro bruto já convertido segundo o registro de schemas
type row struct {
	index  int
	source string
	values map[string]value
}

func (r row) integer(name string) int64 { return r.values[name].integer }
func (r row) text(name string) string   { return r.values[name].text }
func (r row) date(name string) time.Time {
	return r.values[name].date
}
func (r row) decimal(name string) decimal.Decimal {
	return r.values[name].decimal
}

func (r row) integerPtr(name string) *int64 {
	v := r.values[name]
	if !v.present {
		return nil
	}
	return &v.integer
}

func (r row) textPtr(name string) *string {
	v := r.values[name]
	if !v.present {
		return nil
	}
	return &v.text
}

func (r row) datePtr(name string) *time.Time {
	v := r.values[name]
	if !v.present {
		return nil
	}
	return &v.date
}

func (r row) decimalPtr(name string) *decimal.Decimal {
	v := r.values[name]
	if !v.present {
		return nil
	}
	return &v.decimal
}

func (r row) booleanPtr(name string) *bool {
	v := r.values[name]
	if !v.present {
		return nil
	}
	return &v.boolean
}

// coercer converte registros brutos de uma entidade usando a definição do registro
type coercer struct {
	def  schema.Definition
	opts domain.Options
}

func newCoercer(entity schema.Entity, opts domain.Options) (*coercer, error) {
	def, err := schema.Lookup(entity)
	if err != nil {
		return nil, err
	}
	return &coercer{def: def, opts: opts}, nil
}

// coerce converte todos os campos; a primeira falha interrompe a linha
func (c *coercer) coerce(raw domain.RawRecord, index int, source string) (row, error) {
	r := row{
		index:  index,
		source: source,
		values: make(map[string]value, len(c.def.Fields)),
	}

	for _, field := range c.def.Fields {
		rawValue, found := lookupRaw(raw, field)
		if !found || c.opts.IsNull(rawValue) {
			if !field.Nullable {
				return row{}, c.fail(field, rawValue, index, source, "missing required value")
			}
			r.values[field.Name] = value{}
			continue
		}

		v, reason := parseValue(field, strings.TrimSpace(rawValue))
		if reason != "" {
			return row{}, c.fail(field, rawValue, index, source, reason)
		}
		r.values[field.Name] = v
	}

	return r, nil
}

func (c *coercer) fail(field schema.Field, raw string, index int, source, reason string) error {
	return &domain.CoercionError{
		Entity: c.def.Entity,
		Field:  field.Name,
		Raw:    raw,
		Row:    index,
		Source: source,
		Reason: reason,
	}
}

func lookupRaw(raw domain.RawRecord, field schema.Field) (string, bool) {
	for _, name := range field.SourceNames() {
		if v, ok := raw[name]; ok {
			return v, true
		}
	}
	return "", false
}

// parseValue retorna o valor tipado ou o motivo da falha
func parseValue(field schema.Field, raw string) (value, string) {
	switch field.Type {
	case schema.Integer:
		n, err := parseInteger(raw)
		if err != nil {
			return value{}, "invalid integer"
		}
		if reason := checkConstraint(field.Constraint, decimal.NewFromInt(n)); reason != "" {
			return value{}, reason
		}
		return value{present: true, integer: n}, ""

	case schema.Decimal:
		d, err := parseDecimal(raw)
		if err != nil {
			return value{}, "invalid decimal"
		}
		if reason := checkConstraint(field.Constraint, d); reason != "" {
			return value{}, reason
		}
		return value{present: true, decimal: d}, ""

	case schema.Date:
		t, err := parseDate(raw)
		if err != nil {
			return value{}, "unrecognized date format"
		}
		return value{present: true, date: t}, ""

	case schema.Boolean:
		b, err := parseBoolean(raw)
		if err != nil {
			return value{}, "invalid boolean"
		}
		return value{present: true, boolean: b}, ""

	case schema.Text:
		if len(field.Allowed) > 0 {
			normalized := strings.ToUpper(raw)
			for _, allowed := range field.Allowed {
				if normalized == allowed {
					return value{present: true, text: allowed}, ""
				}
			}
			return value{}, fmt.Sprintf("value not in %v", field.Allowed)
		}
		return value{present: true, text: raw}, ""
	}

	return value{}, fmt.Sprintf("unsupported semantic type %q", field.Type)
}

func parseInteger(raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err == nil {
		return n, nil
	}

	// Exportações com nulos costumam gravar inteiros como "12.0"
	d, decErr := decimal.NewFromString(raw)
	if decErr != nil || !d.IsInteger() {
		return 0, err
	}
	n, ok := int64Part(d)
	if !ok {
		return 0, err
	}
	return n, nil
}

// int64Part evita o estouro silencioso de IntPart fora da faixa de int64
func int64Part(d decimal.Decimal) (int64, bool) {
	b := d.BigInt()
	if !b.IsInt64() {
		return 0, false
	}
	return b.Int64(), true
}

func parseDecimal(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	negative := strings.HasPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "-")
	cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "$"))
	if negative {
		cleaned = "-" + cleaned
	}
	return decimal.NewFromString(cleaned)
}

func parseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func parseBoolean(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "y", "yes", "true", "t", "1":
		return true, nil
	case "n", "no", "false", "f", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", raw)
}

func checkConstraint(constraint schema.Constraint, n decimal.Decimal) string {
	switch constraint {
	case schema.NonNegative:
		if n.IsNegative() {
			return "value must be non-negative"
		}
	case schema.Positive:
		if !n.IsPositive() {
			return "value must be positive"
		}
	}
	return ""
}
