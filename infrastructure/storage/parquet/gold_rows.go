package parquet

import (
	"github.com/vfg2006/sales-lakehouse/internal/domain"
)

type salesSummaryRow struct {
	ProductKey    int64   `parquet:"ProductKey"`
	ProductName   string  `parquet:"ProductName"`
	ModelName     *string `parquet:"ModelName,optional"`
	TotalQuantity int64   `parquet:"TotalQuantity"`
	TotalRevenue  string  `parquet:"TotalRevenue"`
	AvgUnitPrice  string  `parquet:"AvgUnitPrice"`
	OrderCount    int64   `parquet:"OrderCount"`
}

func fromSalesSummary(r domain.SalesSummaryRow) salesSummaryRow {
	return salesSummaryRow{
		ProductKey:    r.ProductKey,
		ProductName:   r.ProductName,
		ModelName:     r.ModelName,
		TotalQuantity: r.TotalQuantity,
		TotalRevenue:  encodeDecimal(r.TotalRevenue),
		AvgUnitPrice:  encodeDecimal(r.AvgUnitPrice),
		OrderCount:    r.OrderCount,
	}
}

func (r salesSummaryRow) record() (domain.SalesSummaryRow, error) {
	revenue, err := decodeDecimal("TotalRevenue", r.TotalRevenue)
	if err != nil {
		return domain.SalesSummaryRow{}, err
	}
	avg, err := decodeDecimal("AvgUnitPrice", r.AvgUnitPrice)
	if err != nil {
		return domain.SalesSummaryRow{}, err
	}

	return domain.SalesSummaryRow{
		ProductKey:    r.ProductKey,
		ProductName:   r.ProductName,
		ModelName:     r.ModelName,
		TotalQuantity: r.TotalQuantity,
		TotalRevenue:  revenue,
		AvgUnitPrice:  avg,
		OrderCount:    r.OrderCount,
	}, nil
}

type customerInsightRow struct {
	CustomerKey       int64   `parquet:"CustomerKey"`
	FirstName         string  `parquet:"FirstName"`
	LastName          string  `parquet:"LastName"`
	Gender            *string `parquet:"Gender,optional"`
	MaritalStatus     *string `parquet:"MaritalStatus,optional"`
	AnnualIncome      string  `parquet:"AnnualIncome"`
	TotalSpend        string  `parquet:"TotalSpend"`
	OrderCount        int64   `parquet:"OrderCount"`
	AverageOrderValue string  `parquet:"AverageOrderValue"`
	Segment           string  `parquet:"Segment"`
}

func fromCustomerInsight(r domain.CustomerInsightRow) customerInsightRow {
	return customerInsightRow{
		CustomerKey:       r.CustomerKey,
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		Gender:            r.Gender,
		MaritalStatus:     r.MaritalStatus,
		AnnualIncome:      encodeDecimal(r.AnnualIncome),
		TotalSpend:        encodeDecimal(r.TotalSpend),
		OrderCount:        r.OrderCount,
		AverageOrderValue: encodeDecimal(r.AverageOrderValue),
		Segment:           r.Segment,
	}
}

func (r customerInsightRow) record() (domain.CustomerInsightRow, error) {
	income, err := decodeDecimal("AnnualIncome", r.AnnualIncome)
	if err != nil {
		return domain.CustomerInsightRow{}, err
	}
	spend, err := decodeDecimal("TotalSpend", r.TotalSpend)
	if err != nil {
		return domain.CustomerInsightRow{}, err
	}
	aov, err := decodeDecimal("AverageOrderValue", r.AverageOrderValue)
	if err != nil {
		return domain.CustomerInsightRow{}, err
	}

	return domain.CustomerInsightRow{
		CustomerKey:       r.CustomerKey,
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		Gender:            r.Gender,
		MaritalStatus:     r.MaritalStatus,
		AnnualIncome:      income,
		TotalSpend:        spend,
		OrderCount:        r.OrderCount,
		AverageOrderValue: aov,
		Segment:           r.Segment,
	}, nil
}

type monthlySalesRow struct {
	Year              int32  `parquet:"Year"`
	Month             int32  `parquet:"Month"`
	MonthName         string `parquet:"MonthName"`
	TotalRevenue      string `parquet:"TotalRevenue"`
	TotalQuantity     int64  `parquet:"TotalQuantity"`
	OrderCount        int64  `parquet:"OrderCount"`
	AverageOrderValue string `parquet:"AverageOrderValue"`
}

func fromMonthlySales(r domain.MonthlySalesRow) monthlySalesRow {
	return monthlySalesRow{
		Year:              int32(r.Year),
		Month:             int32(r.Month),
		MonthName:         r.MonthName,
		TotalRevenue:      encodeDecimal(r.TotalRevenue),
		TotalQuantity:     r.TotalQuantity,
		OrderCount:        r.OrderCount,
		AverageOrderValue: encodeDecimal(r.AverageOrderValue),
	}
}

func (r monthlySalesRow) record() (domain.MonthlySalesRow, error) {
	revenue, err := decodeDecimal("TotalRevenue", r.TotalRevenue)
	if err != nil {
		return domain.MonthlySalesRow{}, err
	}
	aov, err := decodeDecimal("AverageOrderValue", r.AverageOrderValue)
	if err != nil {
		return domain.MonthlySalesRow{}, err
	}

	return domain.MonthlySalesRow{
		Year:              int(r.Year),
		Month:             int(r.Month),
		MonthName:         r.MonthName,
		TotalRevenue:      revenue,
		TotalQuantity:     r.TotalQuantity,
		OrderCount:        r.OrderCount,
		AverageOrderValue: aov,
	}, nil
}

type productAnalyticsRow struct {
	ProductKey            int64  `parquet:"ProductKey"`
	ProductName           string `parquet:"ProductName"`
	ProductSubcategoryKey *int64 `parquet:"ProductSubcategoryKey,optional"`
	Revenue               string `parquet:"Revenue"`
	EstimatedCost         string `parquet:"EstimatedCost"`
	Margin                string `parquet:"Margin"`
	UnitsSold             int64  `parquet:"UnitsSold"`
	ReturnedUnits         int64  `parquet:"ReturnedUnits"`
	ReturnRate            string `parquet:"ReturnRate"`
}

func fromProductAnalytics(r domain.ProductAnalyticsRow) productAnalyticsRow {
	return productAnalyticsRow{
		ProductKey:            r.ProductKey,
		ProductName:           r.ProductName,
		ProductSubcategoryKey: r.ProductSubcategoryKey,
		Revenue:               encodeDecimal(r.Revenue),
		EstimatedCost:         encodeDecimal(r.EstimatedCost),
		Margin:                encodeDecimal(r.Margin),
		UnitsSold:             r.UnitsSold,
		ReturnedUnits:         r.ReturnedUnits,
		ReturnRate:            encodeDecimal(r.ReturnRate),
	}
}

func (r productAnalyticsRow) record() (domain.ProductAnalyticsRow, error) {
	revenue, err := decodeDecimal("Revenue", r.Revenue)
	if err != nil {
		return domain.ProductAnalyticsRow{}, err
	}
	cost, err := decodeDecimal("EstimatedCost", r.EstimatedCost)
	if err != nil {
		return domain.ProductAnalyticsRow{}, err
	}
	margin, err := decodeDecimal("Margin", r.Margin)
	if err != nil {
		return domain.ProductAnalyticsRow{}, err
	}
	rate, err := decodeDecimal("ReturnRate", r.ReturnRate)
	if err != nil {
		return domain.ProductAnalyticsRow{}, err
	}

	return domain.ProductAnalyticsRow{
		ProductKey:            r.ProductKey,
		ProductName:           r.ProductName,
		ProductSubcategoryKey: r.ProductSubcategoryKey,
		Revenue:               revenue,
		EstimatedCost:         cost,
		Margin:                margin,
		UnitsSold:             r.UnitsSold,
		ReturnedUnits:         r.ReturnedUnits,
		ReturnRate:            rate,
	}, nil
}
