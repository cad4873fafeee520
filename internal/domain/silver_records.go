package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalendarRecord representa um dia do calendário derivado das vendas
type CalendarRecord struct {
	Date      time.Time `json:"date"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Day       int       `json:"day"`
	DayOfWeek int       `json:"day_of_week"` // 0 = segunda-feira, 6 = domingo
	DayName   string    `json:"day_name"`
	MonthName string    `json:"month_name"`
	Quarter   int       `json:"quarter"`
}

// NewCalendarRecord calcula todos os campos derivados a partir da data
func NewCalendarRecord(date time.Time) CalendarRecord {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	return CalendarRecord{
		Date:      day,
		Year:      day.Year(),
		Month:     int(day.Month()),
		Day:       day.Day(),
		DayOfWeek: (int(day.Weekday()) + 6) % 7,
		DayName:   day.Weekday().String(),
		MonthName: day.Month().String(),
		Quarter:   (int(day.Month())-1)/3 + 1,
	}
}

type CustomerRecord struct {
	CustomerKey   int64           `json:"customer_key"`
	Prefix        *string         `json:"prefix"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	BirthDate     *time.Time      `json:"birth_date"`
	MaritalStatus *string         `json:"marital_status"`
	Gender        *string         `json:"gender"`
	EmailAddress  *string         `json:"email_address"`
	AnnualIncome  decimal.Decimal `json:"annual_income"`
	TotalChildren int64           `json:"total_children"`
	Education     *string         `json:"education"`
	Occupation    *string         `json:"occupation"`
	HomeOwner     *bool           `json:"home_owner"`
}

type ProductRecord struct {
	ProductKey            int64            `json:"product_key"`
	ProductSubcategoryKey *int64           `json:"product_subcategory_key"`
	ProductSKU            *string          `json:"product_sku"`
	ProductName           string           `json:"product_name"`
	ModelName             *string          `json:"model_name"`
	ProductDescription    *string          `json:"product_description"`
	ProductColor          *string          `json:"product_color"`
	ProductSize           *string          `json:"product_size"`
	ProductStyle          *string          `json:"product_style"`
	StandardCost          decimal.Decimal  `json:"standard_cost"`
	ListPrice             decimal.Decimal  `json:"list_price"`
	DealerPrice           *decimal.Decimal `json:"dealer_price"`
}

// SalesRecord é uma linha de pedido; a identidade é (SalesOrderNumber, SalesOrderLineNumber)
type SalesRecord struct {
	SalesOrderNumber     string          `json:"sales_order_number"`
	SalesOrderLineNumber int64           `json:"sales_order_line_number"`
	OrderDate            time.Time       `json:"order_date"`
	StockDate            time.Time       `json:"stock_date"`
	ProductKey           int64           `json:"product_key"`
	CustomerKey          int64           `json:"customer_key"`
	TerritoryKey         int64           `json:"territory_key"`
	OrderQuantity        int64           `json:"order_quantity"`
	UnitPrice            decimal.Decimal `json:"unit_price"`
	SalesAmount          decimal.Decimal `json:"sales_amount"`
}

// LineKey identifica unicamente a linha de pedido
func (s SalesRecord) LineKey() SalesLineKey {
	return SalesLineKey{OrderNumber: s.SalesOrderNumber, LineNumber: s.SalesOrderLineNumber}
}

type SalesLineKey struct {
	OrderNumber string
	LineNumber  int64
}

type ReturnRecord struct {
	ReturnDate     time.Time `json:"return_date"`
	TerritoryKey   int64     `json:"territory_key"`
	ProductKey     int64     `json:"product_key"`
	ReturnQuantity int64     `json:"return_quantity"`
}

type TerritoryRecord struct {
	TerritoryKey int64  `json:"territory_key"`
	Region       string `json:"region"`
	Country      string `json:"country"`
	Continent    string `json:"continent"`
}
