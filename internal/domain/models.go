package domain

// Status of a sellable product.
type Status string

const (
	StatusInStock     Status = "IN_STOCK"
	StatusMadeToOrder Status = "MADE_TO_ORDER"
	StatusSoldOut     Status = "SOLD_OUT"
)

func (s Status) Valid() bool {
	switch s {
	case StatusInStock, StatusMadeToOrder, StatusSoldOut:
		return true
	}
	return false
}

// Product is a sellable catalog entry. Prices and costs are whole pesos.
// When Variants is non-empty, Stock and UnitCost are display caches kept in
// sync from the variant aggregate on every save that touches variants.
type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       int              `json:"price"`
	Images      []string         `json:"images"`
	Status      Status           `json:"status"`
	Category    string           `json:"category"`
	Collection  string           `json:"collection"`
	Badge       string           `json:"badge,omitempty"`
	Stock       int              `json:"stock"`
	UnitCost    int              `json:"unit_cost"`
	Variants    []ProductVariant `json:"variants,omitempty"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at,omitempty"`
}

// ProductVariant is a sub-option of a product (e.g. metal type) with its own
// price, stock and cost. At most one variant per product is primary.
type ProductVariant struct {
	ID        string   `json:"id"`
	ProductID string   `json:"product_id"`
	Name      string   `json:"name"`
	Price     int      `json:"price"` // 0 inherits the product price
	Stock     int      `json:"stock"`
	UnitCost  int      `json:"unit_cost"`
	Images    []string `json:"images,omitempty"`
	Location  string   `json:"location,omitempty"`
	IsPrimary bool     `json:"is_primary"`
}

// EffectivePrice is the variant price, falling back to the product price.
func (v ProductVariant) EffectivePrice(p Product) int {
	if v.Price > 0 {
		return v.Price
	}
	return p.Price
}

// InternalAsset is a non-sellable supply or consumable tracked for valuation
// and reorder alerts only.
type InternalAsset struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Stock     int    `json:"stock"`
	MinStock  int    `json:"min_stock"`
	UnitCost  int    `json:"unit_cost"`
	Location  string `json:"location,omitempty"`
	CreatedAt string `json:"created_at"`
}

// Value is the asset's stock valuation.
func (a InternalAsset) Value() int { return a.Stock * a.UnitCost }
