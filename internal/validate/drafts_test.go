package validate_test

import (
	"testing"

	"alhaja/internal/domain"
	"alhaja/internal/validate"
)

func TestProductDraftValidate(t *testing.T) {
	stock := -3
	d := &validate.ProductDraft{
		Name:   "  Anillo Sol  ",
		Price:  120000,
		Images: []string{"main.jpg"},
		Status: domain.StatusInStock,
		Stock:  &stock,
	}
	errs := d.Validate()
	if !errs.Ok() {
		t.Fatalf("valid draft rejected: %v", errs)
	}
	if d.Name != "Anillo Sol" {
		t.Fatalf("name not trimmed: %q", d.Name)
	}
	if *d.Stock != 0 {
		t.Fatalf("negative stock must clamp to 0, got %d", *d.Stock)
	}
}

func TestProductDraftRequiredFields(t *testing.T) {
	d := &validate.ProductDraft{Name: "   ", Price: -1, Status: "???"}
	errs := d.Validate()
	for _, field := range []string{"name", "price", "images", "status"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected error for %s, got %v", field, errs)
		}
	}
	if errs.Ok() {
		t.Fatal("draft with no name/images must not validate")
	}
	// blank image entries don't count
	d = &validate.ProductDraft{Name: "x", Images: []string{"  ", ""}, Status: domain.StatusInStock}
	if errs := d.Validate(); errs["images"] == "" {
		t.Fatal("blank-only image list must be rejected")
	}
}

func TestAssetDraftClamps(t *testing.T) {
	d := &validate.AssetDraft{Name: "Cajas", Stock: -2, MinStock: -1, UnitCost: -100}
	if errs := d.Validate(); !errs.Ok() {
		t.Fatalf("asset draft rejected: %v", errs)
	}
	if d.Stock != 0 || d.MinStock != 0 || d.UnitCost != 0 {
		t.Fatalf("negatives must clamp: %+v", d)
	}
}
