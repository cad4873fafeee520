package transforming

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-lakehouse/internal/domain"
	"github.com/vfg2006/sales-lakehouse/internal/schema"
)

func transformCustomers(batches []domain.RawBatch, opts domain.Options) entityResult[domain.CustomerRecord] {
	seen := keySet[int64]{}
	return scan(schema.Customers, batches, opts, func(r row) (domain.CustomerRecord, error) {
		key := r.integer("CustomerKey")
		if err := seen.claim(schema.Customers, key, r); err != nil {
			return domain.CustomerRecord{}, err
		}

		return domain.CustomerRecord{
			CustomerKey:   key,
			Prefix:        r.textPtr("Prefix"),
			FirstName:     r.text("FirstName"),
			LastName:      r.text("LastName"),
			BirthDate:     r.datePtr("BirthDate"),
			MaritalStatus: r.textPtr("MaritalStatus"),
			Gender:        r.textPtr("Gender"),
			EmailAddress:  r.textPtr("EmailAddress"),
			AnnualIncome:  r.decimal("AnnualIncome"),
			TotalChildren: r.integer("TotalChildren"),
			Education:     r.textPtr("Education"),
			Occupation:    r.textPtr("Occupation"),
			HomeOwner:     r.booleanPtr("HomeOwner"),
		}, nil
	})
}

func transformProducts(batches []domain.RawBatch, opts domain.Options) entityResult[domain.ProductRecord] {
	seen := keySet[int64]{}
	return scan(schema.Products, batches, opts, func(r row) (domain.ProductRecord, error) {
		key := r.integer("ProductKey")
		if err := seen.claim(schema.Products, key, r); err != nil {
			return domain.ProductRecord{}, err
		}

		return domain.ProductRecord{
			ProductKey:            key,
			ProductSubcategoryKey: r.integerPtr("ProductSubcategoryKey"),
			ProductSKU:            r.textPtr("ProductSKU"),
			ProductName:           r.text("ProductName"),
			ModelName:             r.textPtr("ModelName"),
			ProductDescription:    r.textPtr("ProductDescription"),
			ProductColor:          r.textPtr("ProductColor"),
			ProductSize:           r.textPtr("ProductSize"),
			ProductStyle:          r.textPtr("ProductStyle"),
			StandardCost:          r.decimal("StandardCost"),
			ListPrice:             r.decimal("ListPrice"),
			DealerPrice:           r.decimalPtr("DealerPrice"),
		}, nil
	})
}

func transformTerritories(batches []domain.RawBatch, opts domain.Options) entityResult[domain.TerritoryRecord] {
	seen := keySet[int64]{}
	return scan(schema.Territories, batches, opts, func(r row) (domain.TerritoryRecord, error) {
		key := r.integer("TerritoryKey")
		if err := seen.claim(schema.Territories, key, r); err != nil {
			return domain.TerritoryRecord{}, err
		}

		return domain.TerritoryRecord{
			TerritoryKey: key,
			Region:       r.text("Region"),
			Country:      r.text("Country"),
			Continent:    r.text("Continent"),
		}, nil
	})
}

// references são os conjuntos canônicos usados na validação referencial
type references struct {
	products    map[int64]domain.ProductRecord
	customers   map[int64]struct{}
	territories map[int64]struct{}
}

func newReferences(products []domain.ProductRecord, customers []domain.CustomerRecord, territories []domain.TerritoryRecord) references {
	refs := references{
		products:    make(map[int64]domain.ProductRecord, len(products)),
		customers:   make(map[int64]struct{}, len(customers)),
		territories: make(map[int64]struct{}, len(territories)),
	}
	for _, p := range products {
		refs.products[p.ProductKey] = p
	}
	for _, c := range customers {
		refs.customers[c.CustomerKey] = struct{}{}
	}
	for _, t := range territories {
		refs.territories[t.TerritoryKey] = struct{}{}
	}
	return refs
}

func unresolved(entity schema.Entity, field string, key int64, r row) error {
	return &domain.ReferentialIntegrityWarning{
		Entity: entity,
		Field:  field,
		Key:    key,
		Row:    r.index,
		Source: r.source,
	}
}

func transformSales(batches []domain.RawBatch, opts domain.Options, refs references) entityResult[domain.SalesRecord] {
	seen := keySet[domain.SalesLineKey]{}
	return scan(schema.Sales, batches, opts, func(r row) (domain.SalesRecord, error) {
		record := domain.SalesRecord{
			SalesOrderNumber:     r.text("SalesOrderNumber"),
			SalesOrderLineNumber: r.integer("SalesOrderLineNumber"),
			OrderDate:            r.date("OrderDate"),
			StockDate:            r.date("StockDate"),
			ProductKey:           r.integer("ProductKey"),
			CustomerKey:          r.integer("CustomerKey"),
			TerritoryKey:         r.integer("TerritoryKey"),
			OrderQuantity:        r.integer("OrderQuantity"),
		}

		product, ok := refs.products[record.ProductKey]
		if !ok {
			return record, unresolved(schema.Sales, "ProductKey", record.ProductKey, r)
		}
		if _, ok := refs.customers[record.CustomerKey]; !ok {
			return record, unresolved(schema.Sales, "CustomerKey", record.CustomerKey, r)
		}
		if _, ok := refs.territories[record.TerritoryKey]; !ok {
			return record, unresolved(schema.Sales, "TerritoryKey", record.TerritoryKey, r)
		}

		if err := seen.claim(schema.Sales, record.LineKey(), r); err != nil {
			return record, err
		}

		// Os arquivos de vendas não trazem preço: usa o preço de lista do produto
		if price := r.decimalPtr("UnitPrice"); price != nil {
			record.UnitPrice = *price
		} else {
			record.UnitPrice = product.ListPrice
		}

		if amount := r.decimalPtr("SalesAmount"); amount != nil {
			record.SalesAmount = *amount
		} else {
			record.SalesAmount = record.UnitPrice.Mul(decimal.NewFromInt(record.OrderQuantity))
		}

		return record, nil
	})
}

func transformReturns(batches []domain.RawBatch, opts domain.Options, refs references) entityResult[domain.ReturnRecord] {
	return scan(schema.Returns, batches, opts, func(r row) (domain.ReturnRecord, error) {
		record := domain.ReturnRecord{
			ReturnDate:     r.date("ReturnDate"),
			TerritoryKey:   r.integer("TerritoryKey"),
			ProductKey:     r.integer("ProductKey"),
			ReturnQuantity: r.integer("ReturnQuantity"),
		}

		if _, ok := refs.products[record.ProductKey]; !ok {
			return record, unresolved(schema.Returns, "ProductKey", record.ProductKey, r)
		}
		if _, ok := refs.territories[record.TerritoryKey]; !ok {
			return record, unresolved(schema.Returns, "TerritoryKey", record.TerritoryKey, r)
		}

		return record, nil
	})
}

// deriveCalendar enumera todos os dias entre a menor e a maior data de pedido
func deriveCalendar(sales []domain.SalesRecord) entityResult[domain.CalendarRecord] {
	result := entityResult[domain.CalendarRecord]{stats: domain.EntityStats{Entity: schema.Calendar}}
	if len(sales) == 0 {
		return result
	}

	first, last := sales[0].OrderDate, sales[0].OrderDate
	for _, s := range sales[1:] {
		if s.OrderDate.Before(first) {
			first = s.OrderDate
		}
		if s.OrderDate.After(last) {
			last = s.OrderDate
		}
	}

	first = domain.NewCalendarRecord(first).Date
	last = domain.NewCalendarRecord(last).Date

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		result.records = append(result.records, domain.NewCalendarRecord(day))
	}

	result.stats.Read = len(result.records)
	result.stats.Kept = len(result.records)
	return result
}

func dependencyFailed(failed ...schema.Entity) error {
	return fmt.Errorf("%w: %v", domain.ErrDependencyFailed, failed)
}
