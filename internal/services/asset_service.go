package services

import (
	"fmt"

	"github.com/google/uuid"

	"alhaja/internal/domain"
	"alhaja/internal/realtime"
	"alhaja/internal/repos"
	"alhaja/internal/validate"
)

// AssetService owns internal asset writes, the same shape as ProductService
// on the supplies side.
type AssetService struct {
	Assets   *repos.AssetRepo
	Notifier realtime.Notifier
}

func NewAssetService(assets *repos.AssetRepo, notifier realtime.Notifier) *AssetService {
	return &AssetService{Assets: assets, Notifier: notifier}
}

func (s *AssetService) notify() {
	if s.Notifier != nil {
		s.Notifier.Publish(realtime.EntityAsset)
	}
}

func (s *AssetService) Create(d *validate.AssetDraft) (domain.InternalAsset, error) {
	if errs := d.Validate(); !errs.Ok() {
		return domain.InternalAsset{}, errs
	}
	a := domain.InternalAsset{
		ID:       uuid.NewString(),
		Name:     d.Name,
		Category: d.Category,
		Stock:    d.Stock,
		MinStock: d.MinStock,
		UnitCost: d.UnitCost,
		Location: d.Location,
	}
	if err := s.Assets.Create(a); err != nil {
		return domain.InternalAsset{}, fmt.Errorf("gateway: %w", err)
	}
	s.notify()
	return s.Assets.Get(a.ID)
}

func (s *AssetService) Update(id string, d *validate.AssetDraft) (domain.InternalAsset, error) {
	if errs := d.Validate(); !errs.Ok() {
		return domain.InternalAsset{}, errs
	}
	a := domain.InternalAsset{
		ID:       id,
		Name:     d.Name,
		Category: d.Category,
		Stock:    d.Stock,
		MinStock: d.MinStock,
		UnitCost: d.UnitCost,
		Location: d.Location,
	}
	if err := s.Assets.Update(a); err != nil {
		return domain.InternalAsset{}, fmt.Errorf("gateway: %w", err)
	}
	s.notify()
	return s.Assets.Get(id)
}

func (s *AssetService) Delete(ids []string) BulkSummary {
	failed := s.Assets.DeleteMany(ids)
	if len(failed) < len(ids) {
		s.notify()
	}
	return summarize(ids, failed)
}

// Relocate moves a multi-selection to one location, best effort per id.
func (s *AssetService) Relocate(ids []string, location string) BulkSummary {
	failed := s.Assets.RelocateBulk(ids, location)
	if len(failed) < len(ids) {
		s.notify()
	}
	return summarize(ids, failed)
}
