package services

import (
	"fmt"

	"github.com/google/uuid"

	"alhaja/internal/domain"
	"alhaja/internal/inventory"
	"alhaja/internal/realtime"
	"alhaja/internal/repos"
	"alhaja/internal/validate"
)

// BulkSummary reports a non-transactional batch write: some items may have
// been applied even when others failed. One summary covers the whole batch.
type BulkSummary struct {
	Requested int               `json:"requested"`
	Succeeded int               `json:"succeeded"`
	Failed    map[string]string `json:"failed,omitempty"`
}

func summarize(ids []string, failed map[string]error) BulkSummary {
	s := BulkSummary{Requested: len(ids), Succeeded: len(ids) - len(failed)}
	if len(failed) > 0 {
		s.Failed = make(map[string]string, len(failed))
		for id, err := range failed {
			s.Failed[id] = err.Error()
		}
	}
	return s
}

// ProductService owns every product write. Validation runs before anything
// touches the gateway; successful writes publish a product change signal so
// other sessions silently re-pull.
type ProductService struct {
	Products *repos.ProductRepo
	Notifier realtime.Notifier
}

func NewProductService(products *repos.ProductRepo, notifier realtime.Notifier) *ProductService {
	return &ProductService{Products: products, Notifier: notifier}
}

func (s *ProductService) notify() {
	if s.Notifier != nil {
		s.Notifier.Publish(realtime.EntityProduct)
	}
}

// Create validates the draft and inserts a new product.
func (s *ProductService) Create(d *validate.ProductDraft) (domain.Product, error) {
	if errs := d.Validate(); !errs.Ok() {
		return domain.Product{}, errs
	}
	p := domain.Product{
		ID:          uuid.NewString(),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Images:      d.Images,
		Status:      d.Status,
		Category:    d.Category,
		Collection:  d.Collection,
		Badge:       d.Badge,
	}
	if d.Stock != nil {
		p.Stock = *d.Stock
	}
	if d.UnitCost != nil {
		p.UnitCost = *d.UnitCost
	}
	if err := s.Products.Create(p); err != nil {
		return domain.Product{}, fmt.Errorf("gateway: %w", err)
	}
	s.notify()
	return s.get(p.ID)
}

// Update applies a partial patch after validating the fields it names.
func (s *ProductService) Update(id string, patch repos.ProductPatch) (domain.Product, error) {
	errs := validate.Errors{}
	if patch.Name != nil {
		name, ok := validate.Name(*patch.Name)
		if !ok {
			errs["name"] = "name is required (max 80 chars)"
		}
		*patch.Name = name
	}
	if patch.Price != nil && *patch.Price < 0 {
		errs["price"] = "price must be >= 0"
	}
	if patch.Images != nil && len(*patch.Images) == 0 {
		errs["images"] = "at least one image is required"
	}
	if patch.Status != nil && !patch.Status.Valid() {
		errs["status"] = "unknown status"
	}
	if patch.Stock != nil {
		*patch.Stock = validate.Clamp(*patch.Stock)
	}
	if patch.UnitCost != nil {
		*patch.UnitCost = validate.Clamp(*patch.UnitCost)
	}
	if !errs.Ok() {
		return domain.Product{}, errs
	}
	if err := s.Products.Update(id, patch); err != nil {
		return domain.Product{}, fmt.Errorf("gateway: %w", err)
	}
	s.notify()
	return s.get(id)
}

// SaveVariants validates and rewrites the product's whole variant list,
// enforcing the single-primary invariant and refreshing the product's
// stock/unit_cost caches from the new aggregate.
func (s *ProductService) SaveVariants(productID string, drafts []validate.VariantDraft) (domain.Product, error) {
	variants := make([]domain.ProductVariant, 0, len(drafts))
	primarySeen := false
	for i := range drafts {
		d := &drafts[i]
		if errs := d.Validate(); !errs.Ok() {
			return domain.Product{}, errs
		}
		isPrimary := d.IsPrimary && !primarySeen
		if isPrimary {
			primarySeen = true
		}
		id := d.ID
		if id == "" {
			id = uuid.NewString()
		}
		variants = append(variants, domain.ProductVariant{
			ID:        id,
			ProductID: productID,
			Name:      d.Name,
			Price:     d.Price,
			Stock:     d.Stock,
			UnitCost:  d.UnitCost,
			Images:    d.Images,
			Location:  d.Location,
			IsPrimary: isPrimary,
		})
	}

	totals := inventory.Aggregate(domain.Product{Variants: variants})
	cacheStock, cacheCost := totals.Stock, inventory.AverageUnitCost(totals)
	if len(variants) == 0 {
		// back to variant-less: leave the existing product fields alone
		p, err := s.get(productID)
		if err != nil {
			return domain.Product{}, err
		}
		cacheStock, cacheCost = p.Stock, p.UnitCost
	}
	if err := s.Products.ReplaceVariants(productID, variants, cacheStock, cacheCost); err != nil {
		return domain.Product{}, fmt.Errorf("gateway: %w", err)
	}
	s.notify()
	return s.get(productID)
}

// SetPrimary atomically marks one variant primary and promotes its first
// image to the product's cover slot.
func (s *ProductService) SetPrimary(productID, variantID string) (domain.Product, error) {
	p, err := s.get(productID)
	if err != nil {
		return domain.Product{}, err
	}
	variants, cover, found := inventory.SetPrimary(p.Variants, variantID)
	if !found {
		return domain.Product{}, fmt.Errorf("variant %s not found on product %s", variantID, productID)
	}
	totals := inventory.Aggregate(domain.Product{Variants: variants})
	if err := s.Products.ReplaceVariants(productID, variants, totals.Stock, inventory.AverageUnitCost(totals)); err != nil {
		return domain.Product{}, fmt.Errorf("gateway: %w", err)
	}
	if cover != "" && (len(p.Images) == 0 || p.Images[0] != cover) {
		images := inventory.PromoteCover(p.Images, cover)
		if err := s.Products.Update(productID, repos.ProductPatch{Images: &images}); err != nil {
			return domain.Product{}, fmt.Errorf("gateway: %w", err)
		}
	}
	s.notify()
	return s.get(productID)
}

// Delete removes the given products, best effort per id.
func (s *ProductService) Delete(ids []string) BulkSummary {
	failed := s.Products.DeleteMany(ids)
	if len(failed) < len(ids) {
		s.notify()
	}
	return summarize(ids, failed)
}

// SetStatusBulk updates status on each id independently.
func (s *ProductService) SetStatusBulk(ids []string, status domain.Status) (BulkSummary, error) {
	if !status.Valid() {
		return BulkSummary{}, validate.Errors{"status": "unknown status"}
	}
	failed := s.Products.UpdateStatusBulk(ids, status)
	if len(failed) < len(ids) {
		s.notify()
	}
	return summarize(ids, failed), nil
}

func (s *ProductService) get(id string) (domain.Product, error) {
	p, err := s.Products.Get(id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("gateway: %w", err)
	}
	return p, nil
}
