package domain_test

import (
	"testing"

	"alhaja/internal/domain"
)

func TestVariantEffectivePrice(t *testing.T) {
	p := domain.Product{Price: 120000}
	v := domain.ProductVariant{Name: "Oro"}
	if got := v.EffectivePrice(p); got != 120000 {
		t.Fatalf("zero-price variant must inherit the product price, got %d", got)
	}
	v.Price = 95000
	if got := v.EffectivePrice(p); got != 95000 {
		t.Fatalf("variant price must win when set, got %d", got)
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []domain.Status{domain.StatusInStock, domain.StatusMadeToOrder, domain.StatusSoldOut} {
		if !s.Valid() {
			t.Fatalf("%s must be valid", s)
		}
	}
	if domain.Status("RETIRED").Valid() {
		t.Fatal("unknown status must be invalid")
	}
}
