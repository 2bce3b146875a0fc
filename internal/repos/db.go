package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	// sqlite allows a single writer; a second pooled conn on :memory: would
	// also see a fresh empty database
	db.SetMaxOpenConns(1)

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo catalog if the DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Products. stock/unit_cost are display caches when variants exist; the
-- variant rows are authoritative and the caches are rewritten on save.
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  price INTEGER NOT NULL CHECK (price >= 0),
  images_json TEXT,
  status TEXT NOT NULL CHECK (status IN ('IN_STOCK','MADE_TO_ORDER','SOLD_OUT')),
  category TEXT,
  collection TEXT,
  badge TEXT,
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  unit_cost INTEGER NOT NULL DEFAULT 0 CHECK (unit_cost >= 0),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_status     ON products(status);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_collection ON products(collection);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Variants. is_primary holds the single-primary invariant per product;
-- writes go through ReplaceVariants which rewrites the whole list.
CREATE TABLE IF NOT EXISTS product_variants(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  price INTEGER NOT NULL DEFAULT 0 CHECK (price >= 0),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  unit_cost INTEGER NOT NULL DEFAULT 0 CHECK (unit_cost >= 0),
  images_json TEXT,
  location TEXT,
  is_primary INTEGER NOT NULL DEFAULT 0,
  position INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_variants_product ON product_variants(product_id);

-- Internal supplies/consumables, valued but never sold.
CREATE TABLE IF NOT EXISTS internal_assets(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT,
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  min_stock INTEGER NOT NULL DEFAULT 0 CHECK (min_stock >= 0),
  unit_cost INTEGER NOT NULL DEFAULT 0 CHECK (unit_cost >= 0),
  location TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo catalog")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(id,name,description,price,images_json,status,category,collection,badge,stock,unit_cost) VALUES
	  ('anillo-sol','Anillo Sol','Anillo en oro laminado 18k',120000,'["products/anillo-sol/main.jpg"]','IN_STOCK','anillos','sol','Nuevo',0,0),
	  ('aretes-luna','Aretes Luna','Aretes en plata 950',45000,'["products/aretes-luna/main.jpg"]','IN_STOCK','aretes','luna','',4,15000),
	  ('dije-estrella','Dije Estrella','Dije con circon engastado',38000,'["products/dije-estrella/main.jpg"]','MADE_TO_ORDER','dijes','luna','',0,12000),
	  ('collar-aurora','Collar Aurora','Collar de eslabones con banio de oro',350000,'["products/collar-aurora/main.jpg"]','SOLD_OUT','collares','sol','',0,140000)`)

	tx.MustExec(`INSERT INTO product_variants(id,product_id,name,price,stock,unit_cost,images_json,location,is_primary,position) VALUES
	  ('v-sol-oro','anillo-sol','Oro laminado',120000,3,40000,'["products/anillo-sol/oro.jpg"]','vitrina',1,0),
	  ('v-sol-plata','anillo-sol','Plata 950',95000,2,30000,'["products/anillo-sol/plata.jpg"]','bodega',0,1)`)

	tx.MustExec(`INSERT INTO internal_assets(id,name,category,stock,min_stock,unit_cost,location) VALUES
	  ('cajas-regalo','Cajas de regalo','empaque',40,10,1200,'bodega'),
	  ('hilo-nylon','Hilo nylon 0.3mm','insumo',2,5,3500,'taller')`)

	if _, err := tx.Exec(`UPDATE products SET stock=5, unit_cost=36000 WHERE id='anillo-sol'`); err != nil {
		return err
	}
	return tx.Commit()
}
