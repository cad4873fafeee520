package parquet

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const secondsPerDay = 24 * 60 * 60

// Datas são gravadas como dias desde a época. Colunas obrigatórias usam o tipo
// lógico date; a opcional (BirthDate) fica como int32 simples, já que o
// parquet-go não aceita a tag date em ponteiros.
func toDays(t time.Time) int32 {
	return int32(t.UTC().Unix() / secondsPerDay)
}

func fromDays(days int32) time.Time {
	return time.Unix(int64(days)*secondsPerDay, 0).UTC()
}

func toDaysPtr(t *time.Time) *int32 {
	if t == nil {
		return nil
	}
	d := toDays(*t)
	return &d
}

func fromDaysPtr(days *int32) *time.Time {
	if days == nil {
		return nil
	}
	t := fromDays(*days)
	return &t
}

// Decimais são gravados como texto com a escala original preservada.
// Expoente positivo vira notação "<coeficiente>E<expoente>".
func encodeDecimal(d decimal.Decimal) string {
	exp := d.Exponent()
	if exp < 0 {
		return d.StringFixed(-exp)
	}
	if exp > 0 {
		return d.Coefficient().String() + "E" + strconv.Itoa(int(exp))
	}
	return d.String()
}

func decodeDecimal(column, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("coluna %s: %w", column, err)
	}
	return d, nil
}

func encodeDecimalPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := encodeDecimal(*d)
	return &s
}

func decodeDecimalPtr(column string, s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decodeDecimal(column, *s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
