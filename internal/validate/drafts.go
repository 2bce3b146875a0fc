package validate

import (
	"strings"

	"alhaja/internal/domain"
)

// ProductDraft carries form input for creating or updating a product.
// Optional fields are pointers; nil means "leave untouched" on update.
// Validate runs before anything reaches the gateway.
type ProductDraft struct {
	Name        string
	Description string
	Price       int
	Images      []string
	Status      domain.Status
	Category    string
	Collection  string
	Badge       string
	Stock       *int
	UnitCost    *int
}

// Validate checks the draft and normalizes it in place (trimmed name,
// clamped quantities).
func (d *ProductDraft) Validate() Errors {
	errs := Errors{}
	name, ok := Name(d.Name)
	if !ok {
		errs["name"] = "name is required (max 80 chars)"
	}
	d.Name = name
	if d.Price < 0 {
		errs["price"] = "price must be >= 0"
	}
	if len(nonEmpty(d.Images)) == 0 {
		errs["images"] = "at least one image is required"
	}
	d.Images = nonEmpty(d.Images)
	if !d.Status.Valid() {
		errs["status"] = "unknown status"
	}
	if d.Stock != nil {
		*d.Stock = Clamp(*d.Stock)
	}
	if d.UnitCost != nil {
		*d.UnitCost = Clamp(*d.UnitCost)
	}
	return errs
}

// VariantDraft carries form input for one product variant.
type VariantDraft struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Price     int      `json:"price"`
	Stock     int      `json:"stock"`
	UnitCost  int      `json:"unit_cost"`
	Images    []string `json:"images"`
	Location  string   `json:"location"`
	IsPrimary bool     `json:"is_primary"`
}

func (d *VariantDraft) Validate() Errors {
	errs := Errors{}
	name, ok := Name(d.Name)
	if !ok {
		errs["name"] = "variant name is required (max 80 chars)"
	}
	d.Name = name
	if d.Price < 0 {
		errs["price"] = "price must be >= 0"
	}
	d.Stock = Clamp(d.Stock)
	d.UnitCost = Clamp(d.UnitCost)
	d.Images = nonEmpty(d.Images)
	return errs
}

// AssetDraft carries form input for an internal asset.
type AssetDraft struct {
	Name     string
	Category string
	Stock    int
	MinStock int
	UnitCost int
	Location string
}

func (d *AssetDraft) Validate() Errors {
	errs := Errors{}
	name, ok := Name(d.Name)
	if !ok {
		errs["name"] = "name is required (max 80 chars)"
	}
	d.Name = name
	d.Stock = Clamp(d.Stock)
	d.MinStock = Clamp(d.MinStock)
	d.UnitCost = Clamp(d.UnitCost)
	return errs
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}
