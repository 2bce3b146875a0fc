package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alhaja/internal/catalog"
	"alhaja/internal/domain"
	applog "alhaja/internal/log"
	"alhaja/internal/repos"
	"alhaja/internal/services"
	"alhaja/internal/validate"
)

type AdminHandler struct {
	Catalog  *services.CatalogService
	Products *services.ProductService
	Assets   *services.AssetService
}

// GET /admin/products
func (h *AdminHandler) ListProducts(c *fiber.Ctx) error {
	spec := specFromQuery(c, catalog.AudienceAdmin)
	products := h.Catalog.View(spec)
	return c.JSON(fiber.Map{"products": products, "count": len(products)})
}

type productBody struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int      `json:"price"`
	Images      []string `json:"images"`
	Status      string   `json:"status"`
	Category    string   `json:"category"`
	Collection  string   `json:"collection"`
	Badge       string   `json:"badge"`
	Stock       *int     `json:"stock"`
	UnitCost    *int     `json:"unit_cost"`
}

// POST /admin/products
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var body productBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "bad json"})
	}
	draft := &validate.ProductDraft{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Images:      body.Images,
		Status:      domain.Status(body.Status),
		Category:    body.Category,
		Collection:  body.Collection,
		Badge:       body.Badge,
		Stock:       body.Stock,
		UnitCost:    body.UnitCost,
	}
	p, err := h.Products.Create(draft)
	if err != nil {
		applog.Warn(c, "admin.product.create.fail", map[string]any{"err": err.Error()})
		return fail(c, err)
	}
	applog.Audit(c, "admin.product.create", map[string]any{"product": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

type productPatchBody struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Price       *int           `json:"price"`
	Images      *[]string      `json:"images"`
	Status      *domain.Status `json:"status"`
	Category    *string        `json:"category"`
	Collection  *string        `json:"collection"`
	Badge       *string        `json:"badge"`
	Stock       *int           `json:"stock"`
	UnitCost    *int           `json:"unit_cost"`
}

// PATCH /admin/products/:id
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}
	var body productPatchBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "bad json"})
	}
	p, err := h.Products.Update(id, repos.ProductPatch{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Images:      body.Images,
		Status:      body.Status,
		Category:    body.Category,
		Collection:  body.Collection,
		Badge:       body.Badge,
		Stock:       body.Stock,
		UnitCost:    body.UnitCost,
	})
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.product.update", map[string]any{"product": id})
	return c.JSON(p)
}

type idsBody struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status,omitempty"`
}

// POST /admin/products/delete
func (h *AdminHandler) DeleteProducts(c *fiber.Ctx) error {
	var body idsBody
	if err := c.BodyParser(&body); err != nil || len(body.IDs) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "ids required"})
	}
	sum := h.Products.Delete(body.IDs)
	applog.Audit(c, "admin.product.delete", map[string]any{"requested": sum.Requested, "succeeded": sum.Succeeded})
	return c.JSON(sum)
}

// POST /admin/products/status
func (h *AdminHandler) BulkStatus(c *fiber.Ctx) error {
	var body idsBody
	if err := c.BodyParser(&body); err != nil || len(body.IDs) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "ids required"})
	}
	sum, err := h.Products.SetStatusBulk(body.IDs, domain.Status(body.Status))
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.product.status", map[string]any{"status": body.Status, "succeeded": sum.Succeeded})
	return c.JSON(sum)
}

type variantsBody struct {
	Variants []validate.VariantDraft `json:"variants"`
}

// PUT /admin/products/:id/variants
func (h *AdminHandler) SaveVariants(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}
	var body variantsBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "bad json"})
	}
	p, err := h.Products.SaveVariants(id, body.Variants)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.product.variants", map[string]any{"product": id, "variants": len(p.Variants)})
	return c.JSON(p)
}

// POST /admin/products/:id/primary/:variantId
func (h *AdminHandler) SetPrimary(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	vid, ok2 := validate.ID(c.Params("variantId"))
	if !ok || !ok2 {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}
	p, err := h.Products.SetPrimary(id, vid)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.product.primary", map[string]any{"product": id, "variant": vid})
	return c.JSON(p)
}

// GET /admin/roi
func (h *AdminHandler) ROIRanking(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ranking": h.Catalog.RankByROI()})
}

// GET /admin/low-stock
func (h *AdminHandler) LowStock(c *fiber.Ctx) error {
	return c.JSON(h.Catalog.LowStock())
}

// GET /admin/valuation
func (h *AdminHandler) Valuation(c *fiber.Ctx) error {
	return c.JSON(h.Catalog.Valuation())
}

// POST /admin/refresh — a user-initiated, loud re-pull.
func (h *AdminHandler) Refresh(c *fiber.Ctx) error {
	// not the request context: the fetch may outlive this handler
	h.Catalog.Refresh(context.Background(), true)
	return c.JSON(fiber.Map{"ok": true})
}

// ---- internal assets ----

type assetBody struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"min_stock"`
	UnitCost int    `json:"unit_cost"`
	Location string `json:"location"`
}

func (b assetBody) draft() *validate.AssetDraft {
	return &validate.AssetDraft{
		Name:     b.Name,
		Category: b.Category,
		Stock:    b.Stock,
		MinStock: b.MinStock,
		UnitCost: b.UnitCost,
		Location: b.Location,
	}
}

// GET /admin/assets
func (h *AdminHandler) ListAssets(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"assets": h.Catalog.Assets.Snapshot()})
}

// POST /admin/assets
func (h *AdminHandler) CreateAsset(c *fiber.Ctx) error {
	var body assetBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "bad json"})
	}
	a, err := h.Assets.Create(body.draft())
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.asset.create", map[string]any{"asset": a.ID})
	return c.Status(fiber.StatusCreated).JSON(a)
}

// PUT /admin/assets/:id
func (h *AdminHandler) UpdateAsset(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}
	var body assetBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "bad json"})
	}
	a, err := h.Assets.Update(id, body.draft())
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.asset.update", map[string]any{"asset": id})
	return c.JSON(a)
}

// POST /admin/assets/delete
func (h *AdminHandler) DeleteAssets(c *fiber.Ctx) error {
	var body idsBody
	if err := c.BodyParser(&body); err != nil || len(body.IDs) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "ids required"})
	}
	sum := h.Assets.Delete(body.IDs)
	applog.Audit(c, "admin.asset.delete", map[string]any{"requested": sum.Requested, "succeeded": sum.Succeeded})
	return c.JSON(sum)
}

type relocateBody struct {
	IDs      []string `json:"ids"`
	Location string   `json:"location"`
}

// POST /admin/assets/relocate
func (h *AdminHandler) RelocateAssets(c *fiber.Ctx) error {
	var body relocateBody
	if err := c.BodyParser(&body); err != nil || len(body.IDs) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "ids required"})
	}
	if strings.TrimSpace(body.Location) == "" {
		return c.Status(400).JSON(fiber.Map{"error": "location required"})
	}
	sum := h.Assets.Relocate(body.IDs, strings.TrimSpace(body.Location))
	applog.Audit(c, "admin.asset.relocate", map[string]any{"location": body.Location, "succeeded": sum.Succeeded})
	return c.JSON(sum)
}
