package catalog

import (
	"sort"
	"strings"

	"alhaja/internal/domain"
)

// MaxPriceOpen is the sentinel upper bound meaning "no ceiling" on the price
// range filter. The storefront slider tops out here but prices above it must
// still match.
const MaxPriceOpen = 300000

// Audience decides which visibility rules apply.
type Audience string

const (
	// AudiencePublic is the storefront: sold-out products are always hidden.
	AudiencePublic Audience = "public"
	// AudienceAdmin is the back office: everything is visible.
	AudienceAdmin Audience = "admin"
)

// SortKey orders a filtered view. Exactly one key is active at a time.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"

	// back-office list view keys
	SortNameAsc    SortKey = "name_asc"
	SortNameDesc   SortKey = "name_desc"
	SortStockAsc   SortKey = "stock_asc"
	SortStockDesc  SortKey = "stock_desc"
	SortCategory   SortKey = "category"
	SortCollection SortKey = "collection"
	SortStatus     SortKey = "status"
)

// Spec is a filter/sort specification. Zero values mean "no constraint":
// empty Query matches everything, empty Status/Category/Collection are the
// "All" sentinel, MaxPrice of MaxPriceOpen (or 0) leaves the range open.
type Spec struct {
	Audience   Audience      `json:"audience"`
	Query      string        `json:"query"`
	MinPrice   int           `json:"min_price"`
	MaxPrice   int           `json:"max_price"`
	Status     domain.Status `json:"status"`
	Category   string        `json:"category"`
	Collection string        `json:"collection"`
	Badge      string        `json:"badge"`
	Sort       SortKey       `json:"sort"`
}

// View applies the spec to the collection and returns a new, ordered slice.
// Predicates combine with AND; the input slice is never mutated.
func View(products []domain.Product, spec Spec) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(spec.Query))
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if spec.Audience != AudienceAdmin && p.Status == domain.StatusSoldOut {
			continue
		}
		if q != "" && !matches(p, q) {
			continue
		}
		if p.Price < spec.MinPrice {
			continue
		}
		if spec.MaxPrice > 0 && spec.MaxPrice != MaxPriceOpen && p.Price > spec.MaxPrice {
			continue
		}
		if spec.Status != "" && p.Status != spec.Status {
			continue
		}
		if spec.Category != "" && p.Category != spec.Category {
			continue
		}
		if spec.Collection != "" && p.Collection != spec.Collection {
			continue
		}
		if spec.Badge != "" && p.Badge != spec.Badge {
			continue
		}
		out = append(out, p)
	}
	Sort(out, spec.Sort)
	return out
}

func matches(p domain.Product, q string) bool {
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

// Sort orders the slice in place by the given key. Every comparator is
// stable so ties keep their original relative order.
func Sort(ps []domain.Product, key SortKey) {
	var less func(a, b domain.Product) bool
	switch key {
	case SortPriceAsc:
		less = func(a, b domain.Product) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b domain.Product) bool { return a.Price > b.Price }
	case SortNameAsc:
		less = func(a, b domain.Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortNameDesc:
		less = func(a, b domain.Product) bool { return strings.ToLower(a.Name) > strings.ToLower(b.Name) }
	case SortStockAsc:
		less = func(a, b domain.Product) bool { return a.Stock < b.Stock }
	case SortStockDesc:
		less = func(a, b domain.Product) bool { return a.Stock > b.Stock }
	case SortCategory:
		less = func(a, b domain.Product) bool { return a.Category < b.Category }
	case SortCollection:
		less = func(a, b domain.Product) bool { return a.Collection < b.Collection }
	case SortStatus:
		less = func(a, b domain.Product) bool { return a.Status < b.Status }
	case SortNewest, "":
		// created_at is RFC3339/SQLite text, lexicographic order is time order
		less = func(a, b domain.Product) bool { return a.CreatedAt > b.CreatedAt }
	default:
		less = func(a, b domain.Product) bool { return a.CreatedAt > b.CreatedAt }
	}
	sort.SliceStable(ps, func(i, j int) bool { return less(ps[i], ps[j]) })
}
