package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"alhaja/internal/domain"
)

type AssetRepo struct{ db *sqlx.DB }

func NewAssetRepo(db *sqlx.DB) *AssetRepo { return &AssetRepo{db: db} }

type assetRow struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Category  string `db:"category"`
	Stock     int    `db:"stock"`
	MinStock  int    `db:"min_stock"`
	UnitCost  int    `db:"unit_cost"`
	Location  string `db:"location"`
	CreatedAt string `db:"created_at"`
}

const assetCols = `
  id, name, COALESCE(category,'') AS category, stock, min_stock, unit_cost,
  COALESCE(location,'') AS location, created_at`

func (r assetRow) toDomain() domain.InternalAsset {
	return domain.InternalAsset{
		ID:        r.ID,
		Name:      r.Name,
		Category:  r.Category,
		Stock:     r.Stock,
		MinStock:  r.MinStock,
		UnitCost:  r.UnitCost,
		Location:  r.Location,
		CreatedAt: r.CreatedAt,
	}
}

func (r *AssetRepo) List() ([]domain.InternalAsset, error) {
	var rows []assetRow
	if err := r.db.Select(&rows, `SELECT `+assetCols+` FROM internal_assets ORDER BY name`); err != nil {
		return nil, err
	}
	out := make([]domain.InternalAsset, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *AssetRepo) Get(id string) (domain.InternalAsset, error) {
	var row assetRow
	if err := r.db.Get(&row, `SELECT `+assetCols+` FROM internal_assets WHERE id = ?`, id); err != nil {
		return domain.InternalAsset{}, err
	}
	return row.toDomain(), nil
}

func (r *AssetRepo) Create(a domain.InternalAsset) error {
	_, err := r.db.Exec(`
		INSERT INTO internal_assets(id,name,category,stock,min_stock,unit_cost,location)
		VALUES (?,?,?,?,?,?,?)
	`, a.ID, a.Name, a.Category, a.Stock, a.MinStock, a.UnitCost, a.Location)
	return err
}

func (r *AssetRepo) Update(a domain.InternalAsset) error {
	res, err := r.db.Exec(`
		UPDATE internal_assets
		SET name = ?, category = ?, stock = ?, min_stock = ?, unit_cost = ?, location = ?
		WHERE id = ?
	`, a.Name, a.Category, a.Stock, a.MinStock, a.UnitCost, a.Location, a.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("asset %s not found", a.ID)
	}
	return nil
}

func (r *AssetRepo) DeleteMany(ids []string) map[string]error {
	failed := map[string]error{}
	for _, id := range ids {
		res, err := r.db.Exec(`DELETE FROM internal_assets WHERE id = ?`, id)
		if err != nil {
			failed[id] = err
			continue
		}
		if n, _ := res.RowsAffected(); n == 0 {
			failed[id] = fmt.Errorf("asset %s not found", id)
		}
	}
	return failed
}

// RelocateBulk moves each asset to the location independently; per-id
// failures are reported, not rolled back.
func (r *AssetRepo) RelocateBulk(ids []string, location string) map[string]error {
	failed := map[string]error{}
	for _, id := range ids {
		res, err := r.db.Exec(`UPDATE internal_assets SET location = ? WHERE id = ?`, location, id)
		if err != nil {
			failed[id] = err
			continue
		}
		if n, _ := res.RowsAffected(); n == 0 {
			failed[id] = fmt.Errorf("asset %s not found", id)
		}
	}
	return failed
}
