package domain

import "github.com/shopspring/decimal"

// Nomes fixos das visões da camada Gold
const (
	ViewSalesSummary     = "sales_summary"
	ViewCustomerInsights = "customer_insights"
	ViewMonthlySales     = "monthly_sales"
	ViewProductAnalytics = "product_analytics"
)

// ViewNames lista as visões Gold na ordem de publicação
func ViewNames() []string {
	return []string{ViewSalesSummary, ViewCustomerInsights, ViewMonthlySales, ViewProductAnalytics}
}

// ViewTable é o conjunto de linhas de uma visão Gold
type ViewTable interface {
	ViewName() string
	Len() int
}

type SalesSummaryRow struct {
	ProductKey    int64           `json:"product_key"`
	ProductName   string          `json:"product_name"`
	ModelName     *string         `json:"model_name"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	AvgUnitPrice  decimal.Decimal `json:"avg_unit_price"`
	OrderCount    int64           `json:"order_count"`
}

type SalesSummary []SalesSummaryRow

func (SalesSummary) ViewName() string { return ViewSalesSummary }
func (v SalesSummary) Len() int       { return len(v) }

type CustomerInsightRow struct {
	CustomerKey       int64           `json:"customer_key"`
	FirstName         string          `json:"first_name"`
	LastName          string          `json:"last_name"`
	Gender            *string         `json:"gender"`
	MaritalStatus     *string         `json:"marital_status"`
	AnnualIncome      decimal.Decimal `json:"annual_income"`
	TotalSpend        decimal.Decimal `json:"total_spend"`
	OrderCount        int64           `json:"order_count"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	Segment           string          `json:"segment"`
}

type CustomerInsights []CustomerInsightRow

func (CustomerInsights) ViewName() string { return ViewCustomerInsights }
func (v CustomerInsights) Len() int       { return len(v) }

type MonthlySalesRow struct {
	Year              int             `json:"year"`
	Month             int             `json:"month"`
	MonthName         string          `json:"month_name"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalQuantity     int64           `json:"total_quantity"`
	OrderCount        int64           `json:"order_count"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

type MonthlySales []MonthlySalesRow

func (MonthlySales) ViewName() string { return ViewMonthlySales }
func (v MonthlySales) Len() int       { return len(v) }

type ProductAnalyticsRow struct {
	ProductKey            int64           `json:"product_key"`
	ProductName           string          `json:"product_name"`
	ProductSubcategoryKey *int64          `json:"product_subcategory_key"`
	Revenue               decimal.Decimal `json:"revenue"`
	EstimatedCost         decimal.Decimal `json:"estimated_cost"`
	Margin                decimal.Decimal `json:"margin"`
	UnitsSold             int64           `json:"units_sold"`
	ReturnedUnits         int64           `json:"returned_units"`
	ReturnRate            decimal.Decimal `json:"return_rate"`
}

type ProductAnalytics []ProductAnalyticsRow

func (ProductAnalytics) ViewName() string { return ViewProductAnalytics }
func (v ProductAnalytics) Len() int       { return len(v) }
