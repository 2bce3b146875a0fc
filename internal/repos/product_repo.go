package repos

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"alhaja/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

type productRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Price       int    `db:"price"`
	ImagesJSON  string `db:"images_json"`
	Status      string `db:"status"`
	Category    string `db:"category"`
	Collection  string `db:"collection"`
	Badge       string `db:"badge"`
	Stock       int    `db:"stock"`
	UnitCost    int    `db:"unit_cost"`
	CreatedAt   string `db:"created_at"`
	UpdatedAt   string `db:"updated_at"`
}

type variantRow struct {
	ID         string `db:"id"`
	ProductID  string `db:"product_id"`
	Name       string `db:"name"`
	Price      int    `db:"price"`
	Stock      int    `db:"stock"`
	UnitCost   int    `db:"unit_cost"`
	ImagesJSON string `db:"images_json"`
	Location   string `db:"location"`
	IsPrimary  bool   `db:"is_primary"`
	Position   int    `db:"position"`
}

const productCols = `
  id, name, COALESCE(description,'') AS description, price,
  COALESCE(images_json,'[]') AS images_json, status,
  COALESCE(category,'') AS category, COALESCE(collection,'') AS collection,
  COALESCE(badge,'') AS badge, stock, unit_cost,
  created_at, COALESCE(updated_at,'') AS updated_at`

const variantCols = `
  id, product_id, name, price, stock, unit_cost,
  COALESCE(images_json,'[]') AS images_json,
  COALESCE(location,'') AS location, is_primary, position`

func (r productRow) toDomain(variants []domain.ProductVariant) domain.Product {
	return domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Images:      decodeImages(r.ImagesJSON),
		Status:      domain.Status(r.Status),
		Category:    r.Category,
		Collection:  r.Collection,
		Badge:       r.Badge,
		Stock:       r.Stock,
		UnitCost:    r.UnitCost,
		Variants:    variants,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r variantRow) toDomain() domain.ProductVariant {
	return domain.ProductVariant{
		ID:        r.ID,
		ProductID: r.ProductID,
		Name:      r.Name,
		Price:     r.Price,
		Stock:     r.Stock,
		UnitCost:  r.UnitCost,
		Images:    decodeImages(r.ImagesJSON),
		Location:  r.Location,
		IsPrimary: r.IsPrimary,
	}
}

func decodeImages(s string) []string {
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return []string{}
	}
	return out
}

func encodeImages(imgs []string) string {
	if imgs == nil {
		imgs = []string{}
	}
	b, _ := json.Marshal(imgs)
	return string(b)
}

// List returns every product with its variants attached, newest first.
func (r *ProductRepo) List() ([]domain.Product, error) {
	var rows []productRow
	err := r.db.Select(&rows, `SELECT `+productCols+` FROM products ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}

	var vrows []variantRow
	err = r.db.Select(&vrows, `SELECT `+variantCols+` FROM product_variants ORDER BY product_id, position`)
	if err != nil {
		return nil, err
	}
	byProduct := make(map[string][]domain.ProductVariant)
	for _, v := range vrows {
		byProduct[v.ProductID] = append(byProduct[v.ProductID], v.toDomain())
	}

	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain(byProduct[row.ID]))
	}
	return out, nil
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var row productRow
	if err := r.db.Get(&row, `SELECT `+productCols+` FROM products WHERE id = ?`, id); err != nil {
		return domain.Product{}, err
	}
	var vrows []variantRow
	err := r.db.Select(&vrows, `SELECT `+variantCols+` FROM product_variants WHERE product_id = ? ORDER BY position`, id)
	if err != nil {
		return domain.Product{}, err
	}
	variants := make([]domain.ProductVariant, 0, len(vrows))
	for _, v := range vrows {
		variants = append(variants, v.toDomain())
	}
	return row.toDomain(variants), nil
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
		INSERT INTO products(id,name,description,price,images_json,status,category,collection,badge,stock,unit_cost)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)
	`, p.ID, p.Name, p.Description, p.Price, encodeImages(p.Images), string(p.Status),
		p.Category, p.Collection, p.Badge, p.Stock, p.UnitCost)
	return err
}

// ProductPatch names the fields an update may touch; nil leaves a column as is.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *int
	Images      *[]string
	Status      *domain.Status
	Category    *string
	Collection  *string
	Badge       *string
	Stock       *int
	UnitCost    *int
}

// Update applies the non-nil patch fields to one product.
func (r *ProductRepo) Update(id string, patch ProductPatch) error {
	set := []string{}
	args := []any{}
	add := func(col string, v any) {
		set = append(set, col+" = ?")
		args = append(args, v)
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.Images != nil {
		add("images_json", encodeImages(*patch.Images))
	}
	if patch.Status != nil {
		add("status", string(*patch.Status))
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Collection != nil {
		add("collection", *patch.Collection)
	}
	if patch.Badge != nil {
		add("badge", *patch.Badge)
	}
	if patch.Stock != nil {
		add("stock", *patch.Stock)
	}
	if patch.UnitCost != nil {
		add("unit_cost", *patch.UnitCost)
	}
	if len(set) == 0 {
		return nil
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	res, err := r.db.Exec(`UPDATE products SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("product %s not found", id)
	}
	return nil
}

// DeleteMany removes products one by one; a failure on one id does not roll
// back the others. The returned map holds the ids that failed.
func (r *ProductRepo) DeleteMany(ids []string) map[string]error {
	failed := map[string]error{}
	for _, id := range ids {
		res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
		if err != nil {
			failed[id] = err
			continue
		}
		if n, _ := res.RowsAffected(); n == 0 {
			failed[id] = fmt.Errorf("product %s not found", id)
		}
	}
	return failed
}

// UpdateStatusBulk sets the status on each id independently, reporting
// per-id failures like DeleteMany.
func (r *ProductRepo) UpdateStatusBulk(ids []string, status domain.Status) map[string]error {
	failed := map[string]error{}
	for _, id := range ids {
		res, err := r.db.Exec(`UPDATE products SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, string(status), id)
		if err != nil {
			failed[id] = err
			continue
		}
		if n, _ := res.RowsAffected(); n == 0 {
			failed[id] = fmt.Errorf("product %s not found", id)
		}
	}
	return failed
}

// ReplaceVariants rewrites a product's whole variant list in one transaction
// and refreshes the stock/unit_cost display caches from the aggregate.
func (r *ProductRepo) ReplaceVariants(productID string, variants []domain.ProductVariant, cacheStock, cacheUnitCost int) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM product_variants WHERE product_id = ?`, productID); err != nil {
		return err
	}
	for i, v := range variants {
		_, err := tx.Exec(`
			INSERT INTO product_variants(id,product_id,name,price,stock,unit_cost,images_json,location,is_primary,position)
			VALUES (?,?,?,?,?,?,?,?,?,?)
		`, v.ID, productID, v.Name, v.Price, v.Stock, v.UnitCost, encodeImages(v.Images), v.Location, v.IsPrimary, i)
		if err != nil {
			return err
		}
	}
	_, err = tx.Exec(`UPDATE products SET stock = ?, unit_cost = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		cacheStock, cacheUnitCost, productID)
	if err != nil {
		return err
	}
	return tx.Commit()
}
