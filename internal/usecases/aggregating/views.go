package aggregating

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-lakehouse/internal/domain"
)

const (
	moneyPlaces = 2
	ratePlaces  = 4
)

// ratio divide com arredondamento; divisor zero resulta em zero
func ratio(numerator decimal.Decimal, denominator int64, places int32) decimal.Decimal {
	if denominator == 0 {
		return decimal.Zero
	}
	return numerator.DivRound(decimal.NewFromInt(denominator), places)
}

func missingProduct(key int64) error {
	return fmt.Errorf("%w: product %d not found in products", domain.ErrJoinPrecondition, key)
}

func productIndex(products []domain.ProductRecord) map[int64]domain.ProductRecord {
	index := make(map[int64]domain.ProductRecord, len(products))
	for _, p := range products {
		index[p.ProductKey] = p
	}
	return index
}

type productSales struct {
	key        int64
	quantity   int64
	revenue    decimal.Decimal
	unitPrices decimal.Decimal
	lines      map[domain.SalesLineKey]struct{}
	rows       int64
}

// computeSalesSummary agrupa vendas por produto
func computeSalesSummary(ds *domain.SilverDataset, _ domain.Options) (domain.ViewTable, error) {
	products := productIndex(ds.Products)

	groups := make(map[int64]*productSales)
	order := make([]int64, 0)
	for _, sale := range ds.Sales {
		g, exists := groups[sale.ProductKey]
		if !exists {
			g = &productSales{key: sale.ProductKey, lines: make(map[domain.SalesLineKey]struct{})}
			groups[sale.ProductKey] = g
			order = append(order, sale.ProductKey)
		}
		g.quantity += sale.OrderQuantity
		g.revenue = g.revenue.Add(sale.SalesAmount)
		g.unitPrices = g.unitPrices.Add(sale.UnitPrice)
		g.lines[sale.LineKey()] = struct{}{}
		g.rows++
	}

	view := make(domain.SalesSummary, 0, len(order))
	for _, key := range order {
		g := groups[key]
		product, ok := products[key]
		if !ok {
			return nil, missingProduct(key)
		}

		view = append(view, domain.SalesSummaryRow{
			ProductKey:    key,
			ProductName:   product.ProductName,
			ModelName:     product.ModelName,
			TotalQuantity: g.quantity,
			TotalRevenue:  g.revenue,
			AvgUnitPrice:  ratio(g.unitPrices, g.rows, moneyPlaces),
			OrderCount:    int64(len(g.lines)),
		})
	}

	sort.SliceStable(view, func(i, j int) bool {
		if c := view[i].TotalRevenue.Cmp(view[j].TotalRevenue); c != 0 {
			return c > 0
		}
		return view[i].ProductKey < view[j].ProductKey
	})

	return view, nil
}

type customerSales struct {
	spend  decimal.Decimal
	orders map[string]struct{}
}

// computeCustomerInsights agrupa vendas por cliente; clientes sem pedidos não aparecem
func computeCustomerInsights(ds *domain.SilverDataset, opts domain.Options) (domain.ViewTable, error) {
	customers := make(map[int64]domain.CustomerRecord, len(ds.Customers))
	for _, c := range ds.Customers {
		customers[c.CustomerKey] = c
	}

	groups := make(map[int64]*customerSales)
	order := make([]int64, 0)
	for _, sale := range ds.Sales {
		g, exists := groups[sale.CustomerKey]
		if !exists {
			g = &customerSales{orders: make(map[string]struct{})}
			groups[sale.CustomerKey] = g
			order = append(order, sale.CustomerKey)
		}
		g.spend = g.spend.Add(sale.SalesAmount)
		g.orders[sale.SalesOrderNumber] = struct{}{}
	}

	view := make(domain.CustomerInsights, 0, len(order))
	for _, key := range order {
		g := groups[key]
		customer, ok := customers[key]
		if !ok {
			return nil, fmt.Errorf("%w: customer %d not found in customers", domain.ErrJoinPrecondition, key)
		}

		orderCount := int64(len(g.orders))
		view = append(view, domain.CustomerInsightRow{
			CustomerKey:       key,
			FirstName:         customer.FirstName,
			LastName:          customer.LastName,
			Gender:            customer.Gender,
			MaritalStatus:     customer.MaritalStatus,
			AnnualIncome:      customer.AnnualIncome,
			TotalSpend:        g.spend,
			OrderCount:        orderCount,
			AverageOrderValue: ratio(g.spend, orderCount, moneyPlaces),
			Segment:           opts.Segment(g.spend),
		})
	}

	sort.SliceStable(view, func(i, j int) bool {
		if c := view[i].TotalSpend.Cmp(view[j].TotalSpend); c != 0 {
			return c > 0
		}
		return view[i].CustomerKey < view[j].CustomerKey
	})

	return view, nil
}

type yearMonth struct {
	year  int
	month int
}

type monthSales struct {
	monthName string
	revenue   decimal.Decimal
	quantity  int64
	lines     map[domain.SalesLineKey]struct{}
}

// computeMonthlySales agrupa vendas por (ano, mês) obtidos do calendário
func computeMonthlySales(ds *domain.SilverDataset, _ domain.Options) (domain.ViewTable, error) {
	calendar := make(map[time.Time]domain.CalendarRecord, len(ds.Calendar))
	for _, day := range ds.Calendar {
		calendar[day.Date.UTC()] = day
	}

	groups := make(map[yearMonth]*monthSales)
	for _, sale := range ds.Sales {
		date := time.Date(sale.OrderDate.Year(), sale.OrderDate.Month(), sale.OrderDate.Day(), 0, 0, 0, 0, time.UTC)
		day, ok := calendar[date]
		if !ok {
			return nil, fmt.Errorf("%w: order date %s not found in calendar", domain.ErrJoinPrecondition, date.Format(time.DateOnly))
		}

		key := yearMonth{year: day.Year, month: day.Month}
		g, exists := groups[key]
		if !exists {
			g = &monthSales{monthName: day.MonthName, lines: make(map[domain.SalesLineKey]struct{})}
			groups[key] = g
		}
		g.revenue = g.revenue.Add(sale.SalesAmount)
		g.quantity += sale.OrderQuantity
		g.lines[sale.LineKey()] = struct{}{}
	}

	view := make(domain.MonthlySales, 0, len(groups))
	for key, g := range groups {
		orderCount := int64(len(g.lines))
		view = append(view, domain.MonthlySalesRow{
			Year:              key.year,
			Month:             key.month,
			MonthName:         g.monthName,
			TotalRevenue:      g.revenue,
			TotalQuantity:     g.quantity,
			OrderCount:        orderCount,
			AverageOrderValue: ratio(g.revenue, orderCount, moneyPlaces),
		})
	}

	sort.Slice(view, func(i, j int) bool {
		if view[i].Year != view[j].Year {
			return view[i].Year < view[j].Year
		}
		return view[i].Month < view[j].Month
	})

	return view, nil
}

type productActivity struct {
	revenue  decimal.Decimal
	units    int64
	returned int64
}

// computeProductAnalytics combina vendas e devoluções por produto
func computeProductAnalytics(ds *domain.SilverDataset, _ domain.Options) (domain.ViewTable, error) {
	products := productIndex(ds.Products)

	groups := make(map[int64]*productActivity)
	order := make([]int64, 0)
	group := func(key int64) *productActivity {
		g, exists := groups[key]
		if !exists {
			g = &productActivity{}
			groups[key] = g
			order = append(order, key)
		}
		return g
	}

	for _, sale := range ds.Sales {
		g := group(sale.ProductKey)
		g.revenue = g.revenue.Add(sale.SalesAmount)
		g.units += sale.OrderQuantity
	}
	for _, ret := range ds.Returns {
		group(ret.ProductKey).returned += ret.ReturnQuantity
	}

	view := make(domain.ProductAnalytics, 0, len(order))
	for _, key := range order {
		g := groups[key]
		product, ok := products[key]
		if !ok {
			return nil, missingProduct(key)
		}

		cost := product.StandardCost.Mul(decimal.NewFromInt(g.units))
		view = append(view, domain.ProductAnalyticsRow{
			ProductKey:            key,
			ProductName:           product.ProductName,
			ProductSubcategoryKey: product.ProductSubcategoryKey,
			Revenue:               g.revenue,
			EstimatedCost:         cost,
			Margin:                g.revenue.Sub(cost),
			UnitsSold:             g.units,
			ReturnedUnits:         g.returned,
			ReturnRate:            ratio(decimal.NewFromInt(g.returned), g.units, ratePlaces),
		})
	}

	sort.SliceStable(view, func(i, j int) bool {
		if c := view[i].Revenue.Cmp(view[j].Revenue); c != 0 {
			return c > 0
		}
		return view[i].ProductKey < view[j].ProductKey
	})

	return view, nil
}
