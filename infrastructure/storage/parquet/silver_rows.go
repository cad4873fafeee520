package parquet

import (
	"github.com/vfg2006/sales-lakehouse/internal/domain"
)

type calendarRow struct {
	Date      int32  `parquet:"Date,date"`
	Year      int32  `parquet:"Year"`
	Month     int32  `parquet:"Month"`
	Day       int32  `parquet:"Day"`
	DayOfWeek int32  `parquet:"DayOfWeek"`
	DayName   string `parquet:"DayName"`
	MonthName string `parquet:"MonthName"`
	Quarter   int32  `parquet:"Quarter"`
}

func fromCalendar(r domain.CalendarRecord) calendarRow {
	return calendarRow{
		Date:      toDays(r.Date),
		Year:      int32(r.Year),
		Month:     int32(r.Month),
		Day:       int32(r.Day),
		DayOfWeek: int32(r.DayOfWeek),
		DayName:   r.DayName,
		MonthName: r.MonthName,
		Quarter:   int32(r.Quarter),
	}
}

func (r calendarRow) record() (domain.CalendarRecord, error) {
	return domain.CalendarRecord{
		Date:      fromDays(r.Date),
		Year:      int(r.Year),
		Month:     int(r.Month),
		Day:       int(r.Day),
		DayOfWeek: int(r.DayOfWeek),
		DayName:   r.DayName,
		MonthName: r.MonthName,
		Quarter:   int(r.Quarter),
	}, nil
}

type customerRow struct {
	CustomerKey   int64   `parquet:"CustomerKey"`
	Prefix        *string `parquet:"Prefix,optional"`
	FirstName     string  `parquet:"FirstName"`
	LastName      string  `parquet:"LastName"`
	BirthDate     *int32  `parquet:"BirthDate,optional"`
	MaritalStatus *string `parquet:"MaritalStatus,optional"`
	Gender        *string `parquet:"Gender,optional"`
	EmailAddress  *string `parquet:"EmailAddress,optional"`
	AnnualIncome  string  `parquet:"AnnualIncome"`
	TotalChildren int64   `parquet:"TotalChildren"`
	Education     *string `parquet:"Education,optional"`
	Occupation    *string `parquet:"Occupation,optional"`
	HomeOwner     *bool   `parquet:"HomeOwner,optional"`
}

func fromCustomer(r domain.CustomerRecord) customerRow {
	return customerRow{
		CustomerKey:   r.CustomerKey,
		Prefix:        r.Prefix,
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		BirthDate:     toDaysPtr(r.BirthDate),
		MaritalStatus: r.MaritalStatus,
		Gender:        r.Gender,
		EmailAddress:  r.EmailAddress,
		AnnualIncome:  encodeDecimal(r.AnnualIncome),
		TotalChildren: r.TotalChildren,
		Education:     r.Education,
		Occupation:    r.Occupation,
		HomeOwner:     r.HomeOwner,
	}
}

func (r customerRow) record() (domain.CustomerRecord, error) {
	income, err := decodeDecimal("AnnualIncome", r.AnnualIncome)
	if err != nil {
		return domain.CustomerRecord{}, err
	}

	return domain.CustomerRecord{
		CustomerKey:   r.CustomerKey,
		Prefix:        r.Prefix,
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		BirthDate:     fromDaysPtr(r.BirthDate),
		MaritalStatus: r.MaritalStatus,
		Gender:        r.Gender,
		EmailAddress:  r.EmailAddress,
		AnnualIncome:  income,
		TotalChildren: r.TotalChildren,
		Education:     r.Education,
		Occupation:    r.Occupation,
		HomeOwner:     r.HomeOwner,
	}, nil
}

type productRow struct {
	ProductKey            int64   `parquet:"ProductKey"`
	ProductSubcategoryKey *int64  `parquet:"ProductSubcategoryKey,optional"`
	ProductSKU            *string `parquet:"ProductSKU,optional"`
	ProductName           string  `parquet:"ProductName"`
	ModelName             *string `parquet:"ModelName,optional"`
	ProductDescription    *string `parquet:"ProductDescription,optional"`
	ProductColor          *string `parquet:"ProductColor,optional"`
	ProductSize           *string `parquet:"ProductSize,optional"`
	ProductStyle          *string `parquet:"ProductStyle,optional"`
	StandardCost          string  `parquet:"StandardCost"`
	ListPrice             string  `parquet:"ListPrice"`
	DealerPrice           *string `parquet:"DealerPrice,optional"`
}

func fromProduct(r domain.ProductRecord) productRow {
	return productRow{
		ProductKey:            r.ProductKey,
		ProductSubcategoryKey: r.ProductSubcategoryKey,
		ProductSKU:            r.ProductSKU,
		ProductName:           r.ProductName,
		ModelName:             r.ModelName,
		ProductDescription:    r.ProductDescription,
		ProductColor:          r.ProductColor,
		ProductSize:           r.ProductSize,
		ProductStyle:          r.ProductStyle,
		StandardCost:          encodeDecimal(r.StandardCost),
		ListPrice:             encodeDecimal(r.ListPrice),
		DealerPrice:           encodeDecimalPtr(r.DealerPrice),
	}
}

func (r productRow) record() (domain.ProductRecord, error) {
	cost, err := decodeDecimal("StandardCost", r.StandardCost)
	if err != nil {
		return domain.ProductRecord{}, err
	}
	price, err := decodeDecimal("ListPrice", r.ListPrice)
	if err != nil {
		return domain.ProductRecord{}, err
	}
	dealer, err := decodeDecimalPtr("DealerPrice", r.DealerPrice)
	if err != nil {
		return domain.ProductRecord{}, err
	}

	return domain.ProductRecord{
		ProductKey:            r.ProductKey,
		ProductSubcategoryKey: r.ProductSubcategoryKey,
		ProductSKU:            r.ProductSKU,
		ProductName:           r.ProductName,
		ModelName:             r.ModelName,
		ProductDescription:    r.ProductDescription,
		ProductColor:          r.ProductColor,
		ProductSize:           r.ProductSize,
		ProductStyle:          r.ProductStyle,
		StandardCost:          cost,
		ListPrice:             price,
		DealerPrice:           dealer,
	}, nil
}

type salesRow struct {
	SalesOrderNumber     string `parquet:"SalesOrderNumber"`
	SalesOrderLineNumber int64  `parquet:"SalesOrderLineNumber"`
	OrderDate            int32  `parquet:"OrderDate,date"`
	StockDate            int32  `parquet:"StockDate,date"`
	ProductKey           int64  `parquet:"ProductKey"`
	CustomerKey          int64  `parquet:"CustomerKey"`
	TerritoryKey         int64  `parquet:"TerritoryKey"`
	OrderQuantity        int64  `parquet:"OrderQuantity"`
	UnitPrice            string `parquet:"UnitPrice"`
	SalesAmount          string `parquet:"SalesAmount"`
}

func fromSales(r domain.SalesRecord) salesRow {
	return salesRow{
		SalesOrderNumber:     r.SalesOrderNumber,
		SalesOrderLineNumber: r.SalesOrderLineNumber,
		OrderDate:            toDays(r.OrderDate),
		StockDate:            toDays(r.StockDate),
		ProductKey:           r.ProductKey,
		CustomerKey:          r.CustomerKey,
		TerritoryKey:         r.TerritoryKey,
		OrderQuantity:        r.OrderQuantity,
		UnitPrice:            encodeDecimal(r.UnitPrice),
		SalesAmount:          encodeDecimal(r.SalesAmount),
	}
}

func (r salesRow) record() (domain.SalesRecord, error) {
	price, err := decodeDecimal("UnitPrice", r.UnitPrice)
	if err != nil {
		return domain.SalesRecord{}, err
	}
	amount, err := decodeDecimal("SalesAmount", r.SalesAmount)
	if err != nil {
		return domain.SalesRecord{}, err
	}

	return domain.SalesRecord{
		SalesOrderNumber:     r.SalesOrderNumber,
		SalesOrderLineNumber: r.SalesOrderLineNumber,
		OrderDate:            fromDays(r.OrderDate),
		StockDate:            fromDays(r.StockDate),
		ProductKey:           r.ProductKey,
		CustomerKey:          r.CustomerKey,
		TerritoryKey:         r.TerritoryKey,
		OrderQuantity:        r.OrderQuantity,
		UnitPrice:            price,
		SalesAmount:          amount,
	}, nil
}

type returnRow struct {
	ReturnDate     int32 `parquet:"ReturnDate,date"`
	TerritoryKey   int64 `parquet:"TerritoryKey"`
	ProductKey     int64 `parquet:"ProductKey"`
	ReturnQuantity int64 `parquet:"ReturnQuantity"`
}

func fromReturn(r domain.ReturnRecord) returnRow {
	return returnRow{
		ReturnDate:     toDays(r.ReturnDate),
		TerritoryKey:   r.TerritoryKey,
		ProductKey:     r.ProductKey,
		ReturnQuantity: r.ReturnQuantity,
	}
}

func (r returnRow) record() (domain.ReturnRecord, error) {
	return domain.ReturnRecord{
		ReturnDate:     fromDays(r.ReturnDate),
		TerritoryKey:   r.TerritoryKey,
		ProductKey:     r.ProductKey,
		ReturnQuantity: r.ReturnQuantity,
	}, nil
}

type territoryRow struct {
	TerritoryKey int64  `parquet:"TerritoryKey"`
	Region       string `parquet:"Region"`
	Country      string `parquet:"Country"`
	Continent    string `parquet:"Continent"`
}

func fromTerritory(r domain.TerritoryRecord) territoryRow {
	return territoryRow{
		TerritoryKey: r.TerritoryKey,
		Region:       r.Region,
		Country:      r.Country,
		Continent:    r.Continent,
	}
}

func (r territoryRow) record() (domain.TerritoryRecord, error) {
	return domain.TerritoryRecord{
		TerritoryKey: r.TerritoryKey,
		Region:       r.Region,
		Country:      r.Country,
		Continent:    r.Continent,
	}, nil
}
