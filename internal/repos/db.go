package repos

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// OpenDB opens (or creates) the single marketplace database file, brings its
// schema up to date and seeds demo data when the store is brand new. The
// returned handle is the one connection object the rest of the app shares;
// there is no package-level singleton.
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	// One connection: the store serves a single logical client, and the
	// foreign_keys pragma (like a :memory: DSN) is per-connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	// Seed demo users/products if DB is empty (gated on zero users)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

// SchemaVersion reports the store's current migration level.
func SchemaVersion(db *sqlx.DB) (int, error) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version(version INTEGER NOT NULL)`); err != nil {
		return 0, err
	}
	var v int
	if err := db.Get(&v, `SELECT COALESCE(MAX(version),0) FROM schema_version`); err != nil {
		return 0, err
	}
	return v, nil
}

// Migrate applies every pending migration step in order, each inside its own
// transaction together with the version bump. Steps are idempotent and never
// drop data; a failure leaves the store at the last fully applied version.
func Migrate(db *sqlx.DB) error {
	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}

	for i, step := range migrations {
		v := i + 1
		if v <= current {
			continue
		}
		tx, err := db.Beginx()
		if err != nil {
			return err
		}
		if err := step(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", v, err)
		}
		if _, err := tx.Exec(`DELETE FROM schema_version`); err != nil {
			_ = tx.Rollback()
			return err
		}
		if _, err := tx.Exec(`INSERT INTO schema_version(version) VALUES(?)`, v); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		log.Printf("[migrate] schema at version %d", v)
	}
	return nil
}

var migrations = []func(tx *sqlx.Tx) error{
	migrateBaseSchema,
	migrateOrderNumbers,
}

// migrateBaseSchema creates all tables in dependency order. Matches the
// schema the first shipped release wrote (orders had no order_number yet).
func migrateBaseSchema(tx *sqlx.Tx) error {
	schema := `
-- Users (farmers and feed sellers)
CREATE TABLE IF NOT EXISTS users(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL UNIQUE,
  phone TEXT NOT NULL DEFAULT '',
  user_type TEXT NOT NULL CHECK (user_type IN ('farmer','seller')),
  first_name TEXT NOT NULL DEFAULT '',
  last_name TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  profile_image TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_nocase ON users(LOWER(email));

-- Feed products
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  seller_id INTEGER NOT NULL REFERENCES users(id),
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  category TEXT NOT NULL,
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  image TEXT NOT NULL DEFAULT '',
  weight TEXT NOT NULL DEFAULT '',
  brand TEXT NOT NULL DEFAULT '',
  ingredients TEXT NOT NULL DEFAULT '',
  nutritional_info TEXT NOT NULL DEFAULT '',
  certificate TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_seller   ON products(seller_id);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  farmer_id INTEGER NOT NULL REFERENCES users(id),
  total_amount NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending'
    CHECK (status IN ('pending','confirmed','shipped','delivered','cancelled')),
  delivery_address TEXT NOT NULL DEFAULT '',
  payment_method TEXT NOT NULL DEFAULT '',
  order_date TEXT DEFAULT CURRENT_TIMESTAMP,
  estimated_delivery TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_farmer ON orders(farmer_id);

CREATE TABLE IF NOT EXISTS order_items(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id INTEGER NOT NULL REFERENCES orders(id),
  product_id INTEGER NOT NULL REFERENCES products(id),
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  price NUMERIC NOT NULL,
  total_price NUMERIC NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);

-- Buyer/seller chat
CREATE TABLE IF NOT EXISTS messages(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  sender_id INTEGER NOT NULL REFERENCES users(id),
  receiver_id INTEGER NOT NULL REFERENCES users(id),
  order_id INTEGER REFERENCES orders(id),
  content TEXT NOT NULL,
  message_type TEXT NOT NULL DEFAULT 'text' CHECK (message_type IN ('text','image')),
  is_read INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_messages_receiver ON messages(receiver_id, is_read);
CREATE INDEX IF NOT EXISTS idx_messages_sender   ON messages(sender_id);

-- Product reviews
CREATE TABLE IF NOT EXISTS ratings(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id INTEGER NOT NULL REFERENCES products(id),
  farmer_id INTEGER NOT NULL REFERENCES users(id),
  rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
  review TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_ratings_product ON ratings(product_id);

-- Sessions (mobile client holds the token)
CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  user_id INTEGER NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := tx.Exec(schema)
	return err
}

// migrateOrderNumbers adds the human-facing order_number column and backfills
// any rows written before it existed. Safe to re-run: the column add is
// guarded by a live-column check, the backfill only touches NULL rows.
func migrateOrderNumbers(tx *sqlx.Tx) error {
	var n int
	if err := tx.Get(&n, `SELECT COUNT(*) FROM pragma_table_info('orders') WHERE name = 'order_number'`); err != nil {
		return err
	}
	if n == 0 {
		if _, err := tx.Exec(`ALTER TABLE orders ADD COLUMN order_number TEXT`); err != nil {
			return err
		}
	}

	var ids []int64
	if err := tx.Select(&ids, `SELECT id FROM orders WHERE order_number IS NULL`); err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := tx.Exec(`UPDATE orders SET order_number = ? WHERE id = ?`, NewOrderNumber(), id); err != nil {
			return err
		}
	}

	_, err := tx.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_number ON orders(order_number)`)
	return err
}

// NewOrderNumber synthesizes a human-readable order number from the low-order
// digits of the clock plus a random suffix. Practical uniqueness only; the
// unique index on orders.order_number turns a collision into an insert error
// instead of a silent overwrite.
func NewOrderNumber() string {
	ts := time.Now().UnixMilli() % 1_000_000_000
	return fmt.Sprintf("FS-%09d-%04d", ts, rand.Intn(10_000))
}

// seedIfEmpty inserts two demo farmers, one feed seller and four products so
// a fresh install has a browsable catalog. All-or-nothing, gated only on an
// empty users table, so a second startup changes nothing.
func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM users`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo users/products")

	hash := func(raw string) string {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return string(h)
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	users := []struct {
		Username, Email, Phone, Type, First, Last, Location string
	}{
		{"wanjiku_farm", "wanjiku@feedsoko.test", "+254712000001", "farmer", "Grace", "Wanjiku", "Nakuru, Kenya"},
		{"okello_poultry", "okello@feedsoko.test", "+256772000002", "farmer", "James", "Okello", "Kampala, Uganda"},
		{"pembe_feeds", "sales@pembefeeds.test", "+254722000003", "seller", "Amina", "Hassan", "Nairobi, Kenya"},
	}
	for _, u := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(username,email,phone,user_type,first_name,last_name,location,password_hash)
			VALUES(?,?,?,?,?,?,?,?)`,
			u.Username, u.Email, u.Phone, u.Type, u.First, u.Last, u.Location, hash("Passw0rd!")); err != nil {
			return err
		}
	}

	var sellerID int64
	if err := tx.Get(&sellerID, `SELECT id FROM users WHERE username = 'pembe_feeds'`); err != nil {
		return err
	}

	products := []struct {
		Name, Desc, Category, Weight, Brand string
		Price                               float64
		Stock                               int
	}{
		{"Layers Mash", "Complete feed for laying hens, 16% crude protein.", "poultry", "70kg", "Pembe", 3400, 120},
		{"Dairy Meal", "High-energy concentrate for lactating dairy cows.", "cattle", "70kg", "Pembe", 2950, 80},
		{"Pig Finisher Pellets", "Finishing ration for pigs from 60kg to market weight.", "pig", "50kg", "Pembe", 2600, 45},
		{"Tilapia Starter Crumble", "Floating crumble for tilapia fingerlings.", "fish", "20kg", "Pembe", 1850, 60},
	}
	for _, p := range products {
		if _, err := tx.Exec(`
			INSERT INTO products(seller_id,name,description,price,category,stock,weight,brand)
			VALUES(?,?,?,?,?,?,?,?)`,
			sellerID, p.Name, p.Desc, p.Price, p.Category, p.Stock, p.Weight, p.Brand); err != nil {
			return err
		}
	}

	return tx.Commit()
}
