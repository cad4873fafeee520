package transforming

import (
	"github.com/vfg2006/sales-lakehouse/internal/domain"
	"github.com/vfg2006/sales-lakehouse/internal/schema"
)

func customerRaw(key string) domain.RawRecord {
	return domain.RawRecord{
		"CustomerKey":    key,
		"Prefix":         "MR.",
		"FirstName":      "Jon",
		"LastName":       "Yang",
		"BirthDate":      "4/8/1966",
		"MaritalStatus":  "M",
		"Gender":         "M",
		"EmailAddress":   "jon24@adventure-works.com",
		"AnnualIncome":   "$90,000",
		"TotalChildren":  "2",
		"EducationLevel": "Bachelors",
		"Occupation":     "Professional",
		"HomeOwner":      "Y",
	}
}

func productRaw(key, cost, price string) domain.RawRecord {
	return domain.RawRecord{
		"ProductKey":            key,
		"ProductSubcategoryKey": "1",
		"ProductSKU":            "BK-R93R-62",
		"ProductName":           "Road-150 Red, 62",
		"ModelName":             "Road-150",
		"ProductDescription":    "Top-of-the-line competition bike.",
		"ProductColor":          "Red",
		"ProductSize":           "62",
		"ProductStyle":          "U",
		"ProductCost":           cost,
		"ProductPrice":          price,
	}
}

func territoryRaw(key string) domain.RawRecord {
	return domain.RawRecord{
		"SalesTerritoryKey": key,
		"Region":            "Northwest",
		"Country":           "United States",
		"Continent":         "North America",
	}
}

func saleRaw(order, line, date, product, customer, territory, qty string) domain.RawRecord {
	return domain.RawRecord{
		"OrderDate":     date,
		"StockDate":     date,
		"OrderNumber":   order,
		"ProductKey":    product,
		"CustomerKey":   customer,
		"TerritoryKey":  territory,
		"OrderLineItem": line,
		"OrderQuantity": qty,
	}
}

func returnRaw(date, territory, product, qty string) domain.RawRecord {
	return domain.RawRecord{
		"ReturnDate":     date,
		"TerritoryKey":   territory,
		"ProductKey":     product,
		"ReturnQuantity": qty,
	}
}

func batch(source string, records ...domain.RawRecord) domain.RawBatch {
	return domain.RawBatch{Source: source, Records: records}
}

// lookupsInput monta as entidades de referência mínimas: cliente 11000, produto 214 e território 1
func lookupsInput() domain.BronzeInput {
	input := domain.BronzeInput{}
	input.Add(schema.Customers, batch("customers.csv", customerRaw("11000")))
	input.Add(schema.Products, batch("products.csv", productRaw("214", "2.00", "5.00")))
	input.Add(schema.Territories, batch("territories.csv", territoryRaw("1")))
	return input
}

func newTestService(opts ...func(*domain.Options)) *Service {
	options := domain.DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	s, err := NewService(options)
	if err != nil {
		panic(err)
	}
	return s
}
