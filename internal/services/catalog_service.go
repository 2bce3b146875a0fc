package services

import (
	"context"

	"alhaja/internal/catalog"
	"alhaja/internal/domain"
	"alhaja/internal/inventory"
	"alhaja/internal/pricing"
	"alhaja/internal/refresh"
)

// CatalogService serves read-only views over the refreshed collections. All
// derivation (filtering, sorting, ranking, low-stock) happens on the local
// snapshot; the coordinators decide when that snapshot is re-pulled.
type CatalogService struct {
	Products *refresh.Coordinator[[]domain.Product]
	Assets   *refresh.Coordinator[[]domain.InternalAsset]
	search   *catalog.Debouncer
}

func NewCatalogService(products *refresh.Coordinator[[]domain.Product], assets *refresh.Coordinator[[]domain.InternalAsset], search *catalog.Debouncer) *CatalogService {
	if search == nil {
		search = catalog.NewDebouncer(catalog.DefaultDebounce)
	}
	return &CatalogService{Products: products, Assets: assets, search: search}
}

// View filters and sorts the current product snapshot.
func (s *CatalogService) View(spec catalog.Spec) []domain.Product {
	return catalog.View(s.Products.Snapshot(), spec)
}

// QueueSearch applies the spec after the search debounce window. A newer call
// supersedes a pending one; deliver sees the same result a direct View of the
// settled spec would produce.
func (s *CatalogService) QueueSearch(spec catalog.Spec, deliver func([]domain.Product)) {
	s.search.Do(func() { deliver(s.View(spec)) })
}

// Refresh re-pulls both collections from the gateway.
func (s *CatalogService) Refresh(ctx context.Context, loud bool) {
	s.Products.Refresh(ctx, loud)
	s.Assets.Refresh(ctx, loud)
}

// RankByROI scores the whole portfolio by return on cost.
func (s *CatalogService) RankByROI() []pricing.Ranked {
	return pricing.RankByROI(s.Products.Snapshot())
}

// LowStockReport lists everything at or under its reorder threshold.
// Products are judged on their rolled-up variant stock, assets on their own
// configured minimum.
type LowStockReport struct {
	Products []LowProduct           `json:"products"`
	Assets   []domain.InternalAsset `json:"assets"`
}

type LowProduct struct {
	Product domain.Product   `json:"product"`
	Totals  inventory.Totals `json:"totals"`
}

func (s *CatalogService) LowStock() LowStockReport {
	var report LowStockReport
	for _, p := range s.Products.Snapshot() {
		if inventory.ProductIsLow(p) {
			report.Products = append(report.Products, LowProduct{Product: p, Totals: inventory.Aggregate(p)})
		}
	}
	for _, a := range s.Assets.Snapshot() {
		if inventory.AssetIsLow(a) {
			report.Assets = append(report.Assets, a)
		}
	}
	return report
}

// Valuation sums stock value across the whole inventory, products and
// internal assets separately.
type Valuation struct {
	ProductStock int `json:"product_stock"`
	ProductValue int `json:"product_value"`
	AssetStock   int `json:"asset_stock"`
	AssetValue   int `json:"asset_value"`
}

func (s *CatalogService) Valuation() Valuation {
	var v Valuation
	for _, p := range s.Products.Snapshot() {
		t := inventory.Aggregate(p)
		v.ProductStock += t.Stock
		v.ProductValue += t.Value
	}
	for _, a := range s.Assets.Snapshot() {
		v.AssetStock += a.Stock
		v.AssetValue += a.Value()
	}
	return v
}
