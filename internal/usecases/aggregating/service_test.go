package aggregating

import (
	"context"
	"errors"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-lakehouse/internal/domain"
	"github.com/vfg2006/sales-lakehouse/internal/schema"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func strPtr(s string) *string { return &s }

func sale(order string, line int64, date time.Time, product, customer, qty int64, price, amount string) domain.SalesRecord {
	return domain.SalesRecord{
		SalesOrderNumber:     order,
		SalesOrderLineNumber: line,
		OrderDate:            date,
		StockDate:            date,
		ProductKey:           product,
		CustomerKey:          customer,
		TerritoryKey:         1,
		OrderQuantity:        qty,
		UnitPrice:            dec(price),
		SalesAmount:          dec(amount),
	}
}

func calendarFor(from, to time.Time) []domain.CalendarRecord {
	var records []domain.CalendarRecord
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		records = append(records, domain.NewCalendarRecord(d))
	}
	return records
}

// fixtureDataset reproduz o cenário S1-1/S1-2 mais um segundo produto e devoluções
func fixtureDataset() *domain.SilverDataset {
	ds := domain.NewSilverDataset()
	ds.Products = []domain.ProductRecord{
		{ProductKey: 10, ProductName: "Road-150 Red, 62", ModelName: strPtr("Road-150"), StandardCost: dec("3.00"), ListPrice: dec("5.00")},
		{ProductKey: 20, ProductName: "Sport-100 Helmet", StandardCost: dec("10.00"), ListPrice: dec("35.00")},
		{ProductKey: 30, ProductName: "Water Bottle", StandardCost: dec("1.00"), ListPrice: dec("4.99")},
	}
	ds.Customers = []domain.CustomerRecord{
		{CustomerKey: 1, FirstName: "Jon", LastName: "Yang", Gender: strPtr("M"), MaritalStatus: strPtr("M"), AnnualIncome: dec("90000")},
		{CustomerKey: 2, FirstName: "Eugene", LastName: "Huang", Gender: strPtr("M"), AnnualIncome: dec("60000")},
		{CustomerKey: 3, FirstName: "Ruben", LastName: "Torres", AnnualIncome: dec("10000")},
	}
	ds.Sales = []domain.SalesRecord{
		sale("S1", 1, day(2017, time.January, 5), 10, 1, 2, "5.00", "10.00"),
		sale("S1", 2, day(2017, time.January, 5), 20, 1, 200, "35.00", "7000.00"),
		sale("S2", 1, day(2017, time.February, 3), 10, 2, 1, "5.00", "5.00"),
	}
	ds.Returns = []domain.ReturnRecord{
		{ReturnDate: day(2017, time.February, 10), ProductKey: 20, TerritoryKey: 1, ReturnQuantity: 3},
		{ReturnDate: day(2017, time.February, 12), ProductKey: 30, TerritoryKey: 1, ReturnQuantity: 1},
	}
	ds.Calendar = calendarFor(day(2017, time.January, 5), day(2017, time.February, 3))
	return ds
}

func newTestService(t *testing.T, views ...View) *Service {
	t.Helper()
	s, err := NewService(domain.DefaultOptions(), views...)
	require.NoError(t, err)
	return s
}

func resultFor(t *testing.T, results []Result, view string) Result {
	t.Helper()
	for _, r := range results {
		if r.View == view {
			return r
		}
	}
	t.Fatalf("visão %s não encontrada", view)
	return Result{}
}

func TestService_Aggregate(t *testing.T) {
	tests := []struct {
		name     string
		setup    func() *domain.SilverDataset
		validate func(t *testing.T, results []Result, err error)
	}{
		{
			name:  "resumo de vendas agrupa por produto",
			setup: fixtureDataset,
			validate: func(t *testing.T, results []Result, err error) {
				require.NoError(t, err)
				summary := resultFor(t, results, domain.ViewSalesSummary).Table.(domain.SalesSummary)
				require.Len(t, summary, 2)

				assert.Equal(t, int64(20), summary[0].ProductKey)

				row := summary[1]
				assert.Equal(t, int64(10), row.ProductKey)
				assert.Equal(t, "Road-150 Red, 62", row.ProductName)
				assert.Equal(t, "Road-150", *row.ModelName)
				assert.Equal(t, int64(3), row.TotalQuantity)
				assert.True(t, dec("15.00").Equal(row.TotalRevenue), row.TotalRevenue.String())
				assert.Equal(t, int64(2), row.OrderCount)
				assert.True(t, dec("5").Equal(row.AvgUnitPrice))
			},
		},
		{
			name:  "insights de clientes com segmentação configurável",
			setup: fixtureDataset,
			validate: func(t *testing.T, results []Result, err error) {
				require.NoError(t, err)
				insights := resultFor(t, results, domain.ViewCustomerInsights).Table.(domain.CustomerInsights)
				require.Len(t, insights, 2, "cliente sem pedidos é excluído")

				top := insights[0]
				assert.Equal(t, int64(1), top.CustomerKey)
				assert.True(t, dec("7010").Equal(top.TotalSpend))
				assert.Equal(t, int64(1), top.OrderCount)
				assert.True(t, dec("7010").Equal(top.AverageOrderValue))
				assert.Equal(t, "VIP", top.Segment)
				assert.Equal(t, "M", *top.MaritalStatus)

				second := insights[1]
				assert.Equal(t, int64(2), second.CustomerKey)
				assert.Equal(t, "Occasional", second.Segment)
				assert.Nil(t, second.MaritalStatus)
			},
		},
		{
			name:  "vendas mensais em ordem cronológica",
			setup: fixtureDataset,
			validate: func(t *testing.T, results []Result, err error) {
				require.NoError(t, err)
				monthly := resultFor(t, results, domain.ViewMonthlySales).Table.(domain.MonthlySales)
				require.Len(t, monthly, 2)

				assert.Equal(t, 2017, monthly[0].Year)
				assert.Equal(t, 1, monthly[0].Month)
				assert.Equal(t, "January", monthly[0].MonthName)
				assert.True(t, dec("7010").Equal(monthly[0].TotalRevenue))
				assert.Equal(t, int64(202), monthly[0].TotalQuantity)
				assert.Equal(t, int64(2), monthly[0].OrderCount)
				assert.True(t, dec("3505").Equal(monthly[0].AverageOrderValue))

				assert.Equal(t, 2, monthly[1].Month)
			},
		},
		{
			name:  "análise de produtos inclui produtos só com devoluções",
			setup: fixtureDataset,
			validate: func(t *testing.T, results []Result, err error) {
				require.NoError(t, err)
				analytics := resultFor(t, results, domain.ViewProductAnalytics).Table.(domain.ProductAnalytics)
				require.Len(t, analytics, 3)

				helmet := analytics[0]
				assert.Equal(t, int64(20), helmet.ProductKey)
				assert.True(t, dec("2000").Equal(helmet.EstimatedCost))
				assert.True(t, dec("5000").Equal(helmet.Margin))
				assert.Equal(t, int64(3), helmet.ReturnedUnits)
				assert.True(t, dec("0.015").Equal(helmet.ReturnRate), helmet.ReturnRate.String())

				bike := analytics[1]
				assert.Equal(t, int64(10), bike.ProductKey)
				assert.True(t, dec("6").Equal(bike.Margin))
				assert.True(t, bike.ReturnRate.IsZero())

				bottle := analytics[2]
				assert.Equal(t, int64(30), bottle.ProductKey)
				assert.Zero(t, bottle.UnitsSold)
				assert.Equal(t, int64(1), bottle.ReturnedUnits)
				assert.True(t, bottle.ReturnRate.IsZero(), "sem vendas a taxa é zero")
			},
		},
		{
			name: "entidade indisponível isola apenas as visões dependentes",
			setup: func() *domain.SilverDataset {
				ds := fixtureDataset()
				ds.Customers = nil
				ds.MarkUnavailable(schema.Customers, errors.New("arquivo corrompido"))
				return ds
			},
			validate: func(t *testing.T, results []Result, err error) {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrViewComputation)
				assert.ErrorIs(t, err, domain.ErrEntityUnavailable)

				var viewErr *domain.ViewComputationError
				require.ErrorAs(t, err, &viewErr)
				assert.Equal(t, domain.ViewCustomerInsights, viewErr.View)

				require.Len(t, results, 4)
				for _, r := range results {
					if r.View == domain.ViewCustomerInsights {
						assert.Nil(t, r.Table)
						continue
					}
					assert.NoError(t, r.Err, r.View)
					assert.NotNil(t, r.Table, r.View)
				}
			},
		},
		{
			name: "data fora do calendário falha a visão mensal",
			setup: func() *domain.SilverDataset {
				ds := fixtureDataset()
				ds.Calendar = ds.Calendar[1:]
				return ds
			},
			validate: func(t *testing.T, results []Result, err error) {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrJoinPrecondition)

				assert.Error(t, resultFor(t, results, domain.ViewMonthlySales).Err)
				assert.NoError(t, resultFor(t, results, domain.ViewSalesSummary).Err)
			},
		},
		{
			name: "produto inexistente falha o resumo",
			setup: func() *domain.SilverDataset {
				ds := fixtureDataset()
				ds.Products = ds.Products[1:]
				return ds
			},
			validate: func(t *testing.T, results []Result, err error) {
				require.Error(t, err)
				assert.ErrorIs(t, resultFor(t, results, domain.ViewSalesSummary).Err, domain.ErrJoinPrecondition)
				assert.Error(t, resultFor(t, results, domain.ViewProductAnalytics).Err)
				assert.NoError(t, resultFor(t, results, domain.ViewCustomerInsights).Err)
				assert.NoError(t, resultFor(t, results, domain.ViewMonthlySales).Err)
			},
		},
		{
			name:  "snapshot vazio gera visões vazias",
			setup: domain.NewSilverDataset,
			validate: func(t *testing.T, results []Result, err error) {
				require.NoError(t, err)
				for _, r := range results {
					assert.Zero(t, r.Table.Len(), r.View)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := newTestService(t).Aggregate(context.Background(), tt.setup())
			tt.validate(t, results, err)
		})
	}
}

func TestService_AggregateConservesTotals(t *testing.T) {
	ds := fixtureDataset()
	results, err := newTestService(t).Aggregate(context.Background(), ds)
	require.NoError(t, err)

	var salesTotal decimal.Decimal
	var quantity int64
	for _, s := range ds.Sales {
		salesTotal = salesTotal.Add(s.SalesAmount)
		quantity += s.OrderQuantity
	}

	var summaryTotal, monthlyTotal, spendTotal decimal.Decimal
	var summaryQuantity int64
	for _, row := range resultFor(t, results, domain.ViewSalesSummary).Table.(domain.SalesSummary) {
		summaryTotal = summaryTotal.Add(row.TotalRevenue)
		summaryQuantity += row.TotalQuantity
	}
	for _, row := range resultFor(t, results, domain.ViewMonthlySales).Table.(domain.MonthlySales) {
		monthlyTotal = monthlyTotal.Add(row.TotalRevenue)
	}
	for _, row := range resultFor(t, results, domain.ViewCustomerInsights).Table.(domain.CustomerInsights) {
		spendTotal = spendTotal.Add(row.TotalSpend)
	}

	assert.True(t, salesTotal.Equal(summaryTotal))
	assert.True(t, salesTotal.Equal(monthlyTotal))
	assert.True(t, salesTotal.Equal(spendTotal))
	assert.Equal(t, quantity, summaryQuantity)
}

func TestService_AggregateIsIdempotent(t *testing.T) {
	s := newTestService(t)

	first, err := s.Aggregate(context.Background(), fixtureDataset())
	require.NoError(t, err)
	second, err := s.Aggregate(context.Background(), fixtureDataset())
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		a, err := jsoniter.Marshal(first[i].Table)
		require.NoError(t, err)
		b, err := jsoniter.Marshal(second[i].Table)
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), first[i].View)
	}
}

func TestService_CustomViews(t *testing.T) {
	panicking := View{
		Name:     "broken",
		Requires: []schema.Entity{schema.Sales},
		Compute: func(ds *domain.SilverDataset, opts domain.Options) (domain.ViewTable, error) {
			panic("falha inesperada")
		},
	}
	summary := DefaultViews()[0]

	results, err := newTestService(t, panicking, summary).Aggregate(context.Background(), fixtureDataset())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrViewComputation)
	require.Len(t, results, 2)
	assert.Equal(t, "broken", results[0].View)
	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)

	_, err = NewService(domain.DefaultOptions(), summary, summary)
	assert.ErrorIs(t, err, domain.ErrInvalidOptions)

	_, err = NewService(domain.DefaultOptions(), View{Name: "x", Requires: []schema.Entity{"stores"}, Compute: summary.Compute})
	assert.ErrorIs(t, err, schema.ErrUnknownEntity)
}

func TestService_AggregateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestService(t).Aggregate(ctx, fixtureDataset())
	assert.ErrorIs(t, err, context.Canceled)
}
