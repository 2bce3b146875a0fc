package inventory

import "alhaja/internal/domain"

// DefaultMinStock is the reorder threshold for sellable products and variants
// when no explicit minimum is configured.
const DefaultMinStock = 2

// Totals is a product's rolled-up stock and inventory value.
type Totals struct {
	Stock int `json:"stock"`
	Value int `json:"value"`
}

// Aggregate reconciles a product's stock and value. With variants present the
// variant list is authoritative and the product's own stock/unit_cost fields
// are treated as stale caches; without variants the product fields are used
// directly.
func Aggregate(p domain.Product) Totals {
	if len(p.Variants) == 0 {
		return Totals{Stock: p.Stock, Value: p.Stock * p.UnitCost}
	}
	var t Totals
	for _, v := range p.Variants {
		t.Stock += v.Stock
		t.Value += v.Stock * v.UnitCost
	}
	return t
}

// AverageUnitCost is the cache value written back to a product with variants:
// rolled-up value over rolled-up stock, 0 when there is no stock.
func AverageUnitCost(t Totals) int {
	if t.Stock == 0 {
		return 0
	}
	return t.Value / t.Stock
}

// SetPrimary marks exactly the given variant primary, unsetting every other
// in the same pass so the single-primary invariant holds even transiently.
// It returns the updated list, the cover image to promote (empty when the new
// primary has no images) and whether the variant was found.
func SetPrimary(variants []domain.ProductVariant, variantID string) ([]domain.ProductVariant, string, bool) {
	out := make([]domain.ProductVariant, len(variants))
	copy(out, variants)
	found := false
	for i := range out {
		if out[i].ID == variantID {
			found = true
			break
		}
	}
	if !found {
		return out, "", false
	}
	cover := ""
	for i := range out {
		if out[i].ID == variantID {
			out[i].IsPrimary = true
			if len(out[i].Images) > 0 {
				cover = out[i].Images[0]
			}
		} else {
			out[i].IsPrimary = false
		}
	}
	return out, cover, true
}

// PromoteCover moves the image to position 0 of the list, removing any prior
// occurrence first so it never appears twice.
func PromoteCover(images []string, cover string) []string {
	if cover == "" {
		return images
	}
	out := make([]string, 0, len(images)+1)
	out = append(out, cover)
	for _, img := range images {
		if img != cover {
			out = append(out, img)
		}
	}
	return out
}

// IsLow reports whether stock has reached the reorder threshold.
func IsLow(stock, min int) bool { return stock <= min }

// ProductIsLow applies the low-stock rule to a product using its rolled-up
// stock. Products with variants are judged on the aggregate, never
// per-variant, so list views and alerts agree.
func ProductIsLow(p domain.Product) bool {
	return IsLow(Aggregate(p).Stock, DefaultMinStock)
}

// AssetIsLow applies the asset's own configured minimum.
func AssetIsLow(a domain.InternalAsset) bool {
	return IsLow(a.Stock, a.MinStock)
}
