package parquet

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-lakehouse/internal/domain"
	"github.com/vfg2006/sales-lakehouse/internal/schema"
)

func ptr[T any](v T) *T { return &v }

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func silverFixture() *domain.SilverDataset {
	ds := domain.NewSilverDataset()
	ds.Customers = []domain.CustomerRecord{
		{
			CustomerKey:   11000,
			Prefix:        ptr("MR."),
			FirstName:     "Jon",
			LastName:      "Yang",
			BirthDate:     ptr(day(1966, time.April, 8)),
			MaritalStatus: ptr("M"),
			Gender:        ptr("M"),
			EmailAddress:  ptr("jon24@adventure-works.com"),
			AnnualIncome:  decimal.RequireFromString("90000.00"),
			TotalChildren: 2,
			Education:     ptr("Bachelors"),
			Occupation:    ptr("Professional"),
			HomeOwner:     ptr(true),
		},
		{CustomerKey: 11001, FirstName: "Eugene", LastName: "Huang", AnnualIncome: decimal.NewFromInt(60000)},
	}
	ds.Products = []domain.ProductRecord{
		{
			ProductKey:            214,
			ProductSubcategoryKey: ptr(int64(31)),
			ProductName:           "Sport-100 Helmet, Red",
			ModelName:             ptr("Sport-100"),
			StandardCost:          decimal.RequireFromString("13.0863"),
			ListPrice:             decimal.RequireFromString("34.99"),
			DealerPrice:           ptr(decimal.RequireFromString("20.9940")),
		},
		{ProductKey: 215, ProductName: "Water Bottle", StandardCost: decimal.RequireFromString("1.8663"), ListPrice: decimal.RequireFromString("4.99")},
	}
	ds.Territories = []domain.TerritoryRecord{{TerritoryKey: 1, Region: "Northwest", Country: "United States", Continent: "North America"}}
	ds.Sales = []domain.SalesRecord{
		{
			SalesOrderNumber: "SO45080", SalesOrderLineNumber: 1,
			OrderDate: day(2015, time.January, 1), StockDate: day(2014, time.December, 5),
			ProductKey: 214, CustomerKey: 11000, TerritoryKey: 1, OrderQuantity: 2,
			UnitPrice: decimal.RequireFromString("34.99"), SalesAmount: decimal.RequireFromString("69.98"),
		},
	}
	ds.Returns = []domain.ReturnRecord{{ReturnDate: day(2015, time.January, 18), TerritoryKey: 1, ProductKey: 214, ReturnQuantity: 1}}
	ds.Calendar = []domain.CalendarRecord{domain.NewCalendarRecord(day(2015, time.January, 1))}
	return ds
}

func assertJSONEqual(t *testing.T, expected, actual any) {
	t.Helper()
	a, err := jsoniter.Marshal(expected)
	require.NoError(t, err)
	b, err := jsoniter.Marshal(actual)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestSink_SilverRoundTrip(t *testing.T) {
	dir := t.TempDir()
	sink := NewSink(filepath.Join(dir, "silver"), filepath.Join(dir, "gold"))
	ctx := context.Background()

	original := silverFixture()
	require.NoError(t, sink.WriteSilver(ctx, original))

	for _, entity := range schema.Entities() {
		assert.FileExists(t, sink.SilverPath(entity))
	}

	loaded, err := sink.ReadSilver(ctx)
	require.NoError(t, err)

	assertJSONEqual(t, original.Customers, loaded.Customers)
	assertJSONEqual(t, original.Products, loaded.Products)
	assertJSONEqual(t, original.Sales, loaded.Sales)
	assertJSONEqual(t, original.Returns, loaded.Returns)
	assertJSONEqual(t, original.Territories, loaded.Territories)
	assertJSONEqual(t, original.Calendar, loaded.Calendar)

	assert.Nil(t, loaded.Customers[1].BirthDate)
	assert.Nil(t, loaded.Customers[1].HomeOwner)
	assert.Nil(t, loaded.Products[1].DealerPrice)
	assert.Equal(t, "90000.00", encodeDecimal(loaded.Customers[0].AnnualIncome))
	assert.True(t, original.Sales[0].OrderDate.Equal(loaded.Sales[0].OrderDate))
}

func TestSink_CustomerBirthDates(t *testing.T) {
	dir := t.TempDir()
	sink := NewSink(filepath.Join(dir, "silver"), filepath.Join(dir, "gold"))
	ctx := context.Background()

	ds := domain.NewSilverDataset()
	ds.Customers = []domain.CustomerRecord{
		{CustomerKey: 1, FirstName: "Ana", LastName: "Lima", BirthDate: ptr(day(1944, time.February, 29)), AnnualIncome: decimal.NewFromInt(10000)},
		{CustomerKey: 2, FirstName: "Rui", LastName: "Melo", AnnualIncome: decimal.NewFromInt(20000)},
		{CustomerKey: 3, FirstName: "Eva", LastName: "Rosa", BirthDate: ptr(day(1970, time.January, 1)), AnnualIncome: decimal.NewFromInt(30000)},
	}

	require.NotPanics(t, func() {
		require.NoError(t, sink.WriteSilver(ctx, ds))
	})

	loaded, err := sink.ReadSilver(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Customers, 3)

	require.NotNil(t, loaded.Customers[0].BirthDate)
	assert.True(t, day(1944, time.February, 29).Equal(*loaded.Customers[0].BirthDate))
	assert.Nil(t, loaded.Customers[1].BirthDate)
	require.NotNil(t, loaded.Customers[2].BirthDate)
	assert.True(t, day(1970, time.January, 1).Equal(*loaded.Customers[2].BirthDate))
}

func TestSink_RemoveView(t *testing.T) {
	dir := t.TempDir()
	sink := NewSink(filepath.Join(dir, "silver"), filepath.Join(dir, "gold"))
	ctx := context.Background()

	table := domain.SalesSummary{{ProductKey: 1, ProductName: "A", TotalQuantity: 1, TotalRevenue: decimal.RequireFromString("1.50"), AvgUnitPrice: decimal.RequireFromString("1.50"), OrderCount: 1}}
	require.NoError(t, sink.WriteView(ctx, table))

	require.NoError(t, sink.RemoveView(ctx, domain.ViewSalesSummary))
	_, err := os.Stat(sink.ViewPath(domain.ViewSalesSummary))
	assert.True(t, os.IsNotExist(err))

	_, err = sink.ReadView(ctx, domain.ViewSalesSummary)
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.NoError(t, sink.RemoveView(ctx, domain.ViewSalesSummary), "remover visão ausente não falha")
}

func TestSink_UnavailableEntities(t *testing.T) {
	dir := t.TempDir()
	sink := NewSink(filepath.Join(dir, "silver"), filepath.Join(dir, "gold"))
	ctx := context.Background()

	require.NoError(t, sink.WriteSilver(ctx, silverFixture()))

	failed := silverFixture()
	failed.Returns = nil
	failed.MarkUnavailable(schema.Returns, domain.ErrCoercion)
	require.NoError(t, sink.WriteSilver(ctx, failed))

	_, err := os.Stat(sink.SilverPath(schema.Returns))
	assert.True(t, os.IsNotExist(err), "arquivo antigo deve ser removido")

	loaded, err := sink.ReadSilver(ctx)
	require.Error(t, err)

	var entityErr *domain.EntityError
	require.ErrorAs(t, err, &entityErr)
	assert.Equal(t, schema.Returns, entityErr.Entity)

	assert.False(t, loaded.Available(schema.Returns))
	assert.True(t, loaded.Available(schema.Sales))
	assert.Len(t, loaded.Sales, 1)
}

func TestSink_ViewRoundTrip(t *testing.T) {
	dir := t.TempDir()
	sink := NewSink(filepath.Join(dir, "silver"), filepath.Join(dir, "gold"))
	ctx := context.Background()

	tables := []domain.ViewTable{
		domain.SalesSummary{{
			ProductKey: 214, ProductName: "Sport-100 Helmet, Red", ModelName: ptr("Sport-100"),
			TotalQuantity: 3, TotalRevenue: decimal.RequireFromString("104.97"), AvgUnitPrice: decimal.RequireFromString("34.99"), OrderCount: 2,
		}},
		domain.CustomerInsights{{
			CustomerKey: 11000, FirstName: "Jon", LastName: "Yang", Gender: ptr("M"),
			AnnualIncome: decimal.NewFromInt(90000), TotalSpend: decimal.RequireFromString("8248.99"),
			OrderCount: 3, AverageOrderValue: decimal.RequireFromString("2749.66"), Segment: "VIP",
		}},
		domain.MonthlySales{{
			Year: 2015, Month: 1, MonthName: "January", TotalRevenue: decimal.RequireFromString("585313.87"),
			TotalQuantity: 188, OrderCount: 188, AverageOrderValue: decimal.RequireFromString("3113.37"),
		}},
		domain.ProductAnalytics{{
			ProductKey: 214, ProductName: "Sport-100 Helmet, Red", Revenue: decimal.RequireFromString("104.97"),
			EstimatedCost: decimal.RequireFromString("39.2589"), Margin: decimal.RequireFromString("65.7111"),
			UnitsSold: 3, ReturnedUnits: 1, ReturnRate: decimal.RequireFromString("0.3333"),
		}},
	}

	for _, table := range tables {
		t.Run(table.ViewName(), func(t *testing.T) {
			require.NoError(t, sink.WriteView(ctx, table))
			assert.FileExists(t, sink.ViewPath(table.ViewName()))

			loaded, err := sink.ReadView(ctx, table.ViewName())
			require.NoError(t, err)
			assert.Equal(t, table.ViewName(), loaded.ViewName())
			assertJSONEqual(t, table, loaded)
		})
	}

	_, err := sink.ReadView(ctx, "top_customers")
	assert.ErrorIs(t, err, ErrUnknownView)
}

func TestSink_RewriteIsByteIdentical(t *testing.T) {
	dir := t.TempDir()
	sink := NewSink(filepath.Join(dir, "silver"), filepath.Join(dir, "gold"))
	ctx := context.Background()

	table := domain.SalesSummary{{ProductKey: 1, ProductName: "A", TotalQuantity: 1, TotalRevenue: decimal.RequireFromString("1.50"), AvgUnitPrice: decimal.RequireFromString("1.50"), OrderCount: 1}}

	require.NoError(t, sink.WriteView(ctx, table))
	first, err := os.ReadFile(sink.ViewPath(domain.ViewSalesSummary))
	require.NoError(t, err)

	require.NoError(t, sink.WriteView(ctx, table))
	second, err := os.ReadFile(sink.ViewPath(domain.ViewSalesSummary))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDecimalEncoding(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "15.00", want: "15.00"},
		{in: "0.0150", want: "0.0150"},
		{in: "7000", want: "7000"},
		{in: "-3.5", want: "-3.5"},
		{in: "1E3", want: "1E3"},
		{in: "-25E2", want: "-25E2"},
		{in: "0", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := encodeDecimal(decimal.RequireFromString(tt.in))
			assert.Equal(t, tt.want, got)

			back, err := decodeDecimal("col", got)
			require.NoError(t, err)
			original := decimal.RequireFromString(tt.in)
			assert.True(t, original.Equal(back))
			assert.Equal(t, original.Exponent(), back.Exponent())
			assert.Zero(t, original.Coefficient().Cmp(back.Coefficient()))
		})
	}
}
