package aggregating

import (
	"fmt"

	"github.com/vfg2006/sales-lakehouse/internal/domain"
	"github.com/vfg2006/sales-lakehouse/internal/schema"
)

// ComputeFunc calcula uma visão a partir do snapshot Silver, somente leitura
type ComputeFunc func(ds *domain.SilverDataset, opts domain.Options) (domain.ViewTable, error)

// View é uma visão Gold nomeada com as entidades Silver das quais depende
type View struct {
	Name     string
	Requires []schema.Entity
	Compute  ComputeFunc
}

// DefaultViews retorna as quatro visões Gold na ordem de publicação
func DefaultViews() []View {
	return []View{
		{
			Name:     domain.ViewSalesSummary,
			Requires: []schema.Entity{schema.Sales, schema.Products},
			Compute:  computeSalesSummary,
		},
		{
			Name:     domain.ViewCustomerInsights,
			Requires: []schema.Entity{schema.Sales, schema.Customers},
			Compute:  computeCustomerInsights,
		},
		{
			Name:     domain.ViewMonthlySales,
			Requires: []schema.Entity{schema.Sales, schema.Calendar},
			Compute:  computeMonthlySales,
		},
		{
			Name:     domain.ViewProductAnalytics,
			Requires: []schema.Entity{schema.Sales, schema.Products, schema.Returns},
			Compute:  computeProductAnalytics,
		},
	}
}

func validateViews(views []View) error {
	seen := make(map[string]struct{}, len(views))
	for _, v := range views {
		if v.Name == "" || v.Compute == nil {
			return fmt.Errorf("%w: view %q must have a name and a compute function", domain.ErrInvalidOptions, v.Name)
		}
		if _, dup := seen[v.Name]; dup {
			return fmt.Errorf("%w: duplicate view %q", domain.ErrInvalidOptions, v.Name)
		}
		for _, entity := range v.Requires {
			if _, err := schema.Lookup(entity); err != nil {
				return fmt.Errorf("view %q: %w", v.Name, err)
			}
		}
		seen[v.Name] = struct{}{}
	}
	return nil
}
