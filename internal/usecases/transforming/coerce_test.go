package transforming

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-lakehouse/internal/domain"
	"github.com/vfg2006/sales-lakehouse/internal/schema"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2017, time.January, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "ISO", raw: "2017-01-05"},
		{name: "US sem zero", raw: "1/5/2017"},
		{name: "US com zero", raw: "01/05/2017"},
		{name: "barras ISO", raw: "2017/01/05"},
		{name: "data e hora", raw: "2017-01-05 13:45:00"},
		{name: "RFC3339", raw: "2017-01-05T23:10:00Z"},
		{name: "formato desconhecido", raw: "05.01.2017", wantErr: true},
		{name: "texto", raw: "ontem", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "simples", raw: "3578.27", want: "3578.27"},
		{name: "moeda com milhar", raw: "$90,000.00", want: "90000"},
		{name: "negativo com moeda", raw: "-$1,250.5", want: "-1250.5"},
		{name: "inválido", raw: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDecimal(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestParseInteger(t *testing.T) {
	n, err := parseInteger("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	n, err = parseInteger("12.0")
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)

	_, err = parseInteger("12.5")
	assert.Error(t, err)

	_, err = parseInteger("1,000")
	assert.Error(t, err)

	n, err = parseInteger("9223372036854775807.0")
	require.NoError(t, err)
	assert.Equal(t, int64(9223372036854775807), n)

	for _, raw := range []string{"99999999999999999999", "1e19", "18446744073709551617", "-9223372036854775809.0"} {
		_, err = parseInteger(raw)
		assert.Error(t, err, raw)
	}
}

func TestParseBoolean(t *testing.T) {
	for _, raw := range []string{"Y", "yes", "TRUE", "1"} {
		b, err := parseBoolean(raw)
		require.NoError(t, err, raw)
		assert.True(t, b, raw)
	}
	for _, raw := range []string{"N", "no", "false", "0"} {
		b, err := parseBoolean(raw)
		require.NoError(t, err, raw)
		assert.False(t, b, raw)
	}
	_, err := parseBoolean("maybe")
	assert.Error(t, err)
}

func TestCoercer(t *testing.T) {
	tests := []struct {
		name     string
		entity   schema.Entity
		raw      domain.RawRecord
		validate func(t *testing.T, r row, err error)
	}{
		{
			name:   "sentinelas viram ausência",
			entity: schema.Customers,
			raw: func() domain.RawRecord {
				raw := customerRaw("11000")
				raw["Prefix"] = "NA"
				raw["Gender"] = " "
				delete(raw, "HomeOwner")
				return raw
			}(),
			validate: func(t *testing.T, r row, err error) {
				require.NoError(t, err)
				assert.Nil(t, r.textPtr("Prefix"))
				assert.Nil(t, r.textPtr("Gender"))
				assert.Nil(t, r.booleanPtr("HomeOwner"))
				assert.Equal(t, "Jon", r.text("FirstName"))
			},
		},
		{
			name:   "campo obrigatório ausente",
			entity: schema.Customers,
			raw: func() domain.RawRecord {
				raw := customerRaw("11000")
				raw["FirstName"] = "NULL"
				return raw
			}(),
			validate: func(t *testing.T, r row, err error) {
				var coercionErr *domain.CoercionError
				require.ErrorAs(t, err, &coercionErr)
				assert.Equal(t, "FirstName", coercionErr.Field)
				assert.Equal(t, "missing required value", coercionErr.Reason)
				assert.Equal(t, 7, coercionErr.Row)
			},
		},
		{
			name:   "valor fora da enumeração",
			entity: schema.Customers,
			raw: func() domain.RawRecord {
				raw := customerRaw("11000")
				raw["MaritalStatus"] = "X"
				return raw
			}(),
			validate: func(t *testing.T, r row, err error) {
				var coercionErr *domain.CoercionError
				require.ErrorAs(t, err, &coercionErr)
				assert.Equal(t, "MaritalStatus", coercionErr.Field)
				assert.Equal(t, "X", coercionErr.Raw)
			},
		},
		{
			name:   "enumeração normalizada para maiúscula",
			entity: schema.Customers,
			raw: func() domain.RawRecord {
				raw := customerRaw("11000")
				raw["Gender"] = "f"
				return raw
			}(),
			validate: func(t *testing.T, r row, err error) {
				require.NoError(t, err)
				require.NotNil(t, r.textPtr("Gender"))
				assert.Equal(t, "F", *r.textPtr("Gender"))
			},
		},
		{
			name:   "quantidade deve ser positiva",
			entity: schema.Sales,
			raw:    saleRaw("SO1", "1", "2017-01-01", "214", "11000", "1", "0"),
			validate: func(t *testing.T, r row, err error) {
				var coercionErr *domain.CoercionError
				require.ErrorAs(t, err, &coercionErr)
				assert.Equal(t, "OrderQuantity", coercionErr.Field)
				assert.Equal(t, "value must be positive", coercionErr.Reason)
			},
		},
		{
			name:   "quantidade fora da faixa de int64",
			entity: schema.Sales,
			raw:    saleRaw("SO1", "1", "2017-01-01", "214", "11000", "1", "18446744073709551617"),
			validate: func(t *testing.T, r row, err error) {
				var coercionErr *domain.CoercionError
				require.ErrorAs(t, err, &coercionErr)
				assert.Equal(t, "OrderQuantity", coercionErr.Field)
				assert.Equal(t, "18446744073709551617", coercionErr.Raw)
			},
		},
		{
			name:   "aliases AdventureWorks",
			entity: schema.Sales,
			raw:    saleRaw("SO45080", "2", "1/1/2015", "332", "14657", "1", "1"),
			validate: func(t *testing.T, r row, err error) {
				require.NoError(t, err)
				assert.Equal(t, "SO45080", r.text("SalesOrderNumber"))
				assert.Equal(t, int64(2), r.integer("SalesOrderLineNumber"))
				assert.Nil(t, r.decimalPtr("UnitPrice"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := newCoercer(tt.entity, domain.DefaultOptions())
			require.NoError(t, err)

			r, err := c.coerce(tt.raw, 7, "source.csv")
			tt.validate(t, r, err)
		})
	}
}

func TestNewCoercerUnknownEntity(t *testing.T) {
	_, err := newCoercer(schema.Entity("stores"), domain.DefaultOptions())
	assert.ErrorIs(t, err, schema.ErrUnknownEntity)
}
