package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alhaja/internal/catalog"
	"alhaja/internal/domain"
	"alhaja/internal/log"
	"alhaja/internal/services"
	"alhaja/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

// specFromQuery builds a filter spec from request params. Missing params are
// the "All"/open sentinels.
func specFromQuery(c *fiber.Ctx, audience catalog.Audience) catalog.Spec {
	spec := catalog.Spec{
		Audience:   audience,
		MinPrice:   atoi(c.Query("min"), 0),
		MaxPrice:   atoi(c.Query("max"), catalog.MaxPriceOpen),
		Status:     domain.Status(strings.TrimSpace(c.Query("status"))),
		Category:   strings.TrimSpace(c.Query("category")),
		Collection: strings.TrimSpace(c.Query("collection")),
		Badge:      strings.TrimSpace(c.Query("badge")),
		Sort:       catalog.SortKey(strings.TrimSpace(c.Query("sort"))),
	}
	if q, ok := validate.Q(c.Query("q")); ok {
		spec.Query = q
	}
	return spec
}

func atoi(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return def
	}
	return n
}

// Home renders the public storefront with the filtered, sorted catalog.
func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	rawQ := strings.TrimSpace(c.Query("q"))
	if rawQ != "" {
		if _, ok := validate.Q(rawQ); !ok {
			log.Warn(c, "validation.fail", map[string]any{"field": "q"})
			return c.Status(fiber.StatusBadRequest).Render("catalog", fiber.Map{
				"Products": []any{}, "Count": 0, "Err": "Enter a valid keyword (letters/numbers only)",
			})
		}
	}
	spec := specFromQuery(c, catalog.AudiencePublic)
	products := h.Catalog.View(spec)
	return render(c, "catalog", fiber.Map{
		"Products": products, "Count": len(products),
		"Q": spec.Query, "Category": spec.Category, "Collection": spec.Collection,
	})
}

type variantView struct {
	Name      string
	Price     int
	IsPrimary bool
	InStock   bool
}

// Detail renders one product page. Sold-out products are hidden from the
// public exactly like in list views; variants without a price of their own
// display the product price.
func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Warn(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This piece is no longer available"})
	}
	for _, p := range h.Catalog.View(catalog.Spec{Audience: catalog.AudiencePublic}) {
		if p.ID == id {
			views := make([]variantView, 0, len(p.Variants))
			for _, v := range p.Variants {
				views = append(views, variantView{
					Name:      v.Name,
					Price:     v.EffectivePrice(p),
					IsPrimary: v.IsPrimary,
					InStock:   v.Stock > 0,
				})
			}
			return render(c, "product", fiber.Map{"P": p, "Variants": views})
		}
	}
	return c.Status(404).Render("notfound", fiber.Map{"Message": "This piece is no longer available"})
}
