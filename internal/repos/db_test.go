package repos

import (
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

func TestOpenDBSeedsDemoData(t *testing.T) {
	db, err := OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	var users, products int
	if err := db.Get(&users, `SELECT COUNT(*) FROM users`); err != nil {
		t.Fatal(err)
	}
	if err := db.Get(&products, `SELECT COUNT(*) FROM products`); err != nil {
		t.Fatal(err)
	}
	if users != 3 {
		t.Fatalf("want 3 seed users (two farmers, one seller), got %d", users)
	}
	if products != 4 {
		t.Fatalf("want 4 seed products, got %d", products)
	}

	var farmers int
	if err := db.Get(&farmers, `SELECT COUNT(*) FROM users WHERE user_type='farmer'`); err != nil {
		t.Fatal(err)
	}
	if farmers != 2 {
		t.Fatalf("want 2 seed farmers, got %d", farmers)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db, err := OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	// Re-running the init routine against a populated store must not
	// duplicate the demo records.
	if err := Migrate(db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	if err := seedIfEmpty(db); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var users, products int
	_ = db.Get(&users, `SELECT COUNT(*) FROM users`)
	_ = db.Get(&products, `SELECT COUNT(*) FROM products`)
	if users != 3 || products != 4 {
		t.Fatalf("seed duplicated: users=%d products=%d", users, products)
	}
}

func TestMigrateRecordsVersion(t *testing.T) {
	db, err := OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	v, err := SchemaVersion(db)
	if err != nil {
		t.Fatal(err)
	}
	if v != len(migrations) {
		t.Fatalf("want schema version %d, got %d", len(migrations), v)
	}
}

// A store written by the first release has orders without order_number.
// Migrating it must add the column and backfill every row, never drop data.
func TestMigrateBackfillsLegacyOrders(t *testing.T) {
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	tx, err := db.Beginx()
	if err != nil {
		t.Fatal(err)
	}
	if err := migrateBaseSchema(tx); err != nil {
		t.Fatalf("base schema: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}

	if _, err := db.Exec(`INSERT INTO users(username,email,user_type,password_hash)
		VALUES('legacy_farmer','legacy@feedsoko.test','farmer','x')`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO orders(farmer_id,total_amount,status) VALUES(1,2500,'pending')`); err != nil {
		t.Fatal(err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate legacy store: %v", err)
	}

	var num string
	if err := db.Get(&num, `SELECT order_number FROM orders WHERE id=1`); err != nil {
		t.Fatalf("backfilled order number missing: %v", err)
	}
	if !strings.HasPrefix(num, "FS-") {
		t.Fatalf("unexpected order number format: %q", num)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM orders`); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("migration lost data: %d orders", n)
	}
}

func TestNewOrderNumberFormat(t *testing.T) {
	num := NewOrderNumber()
	if !strings.HasPrefix(num, "FS-") {
		t.Fatalf("missing prefix: %q", num)
	}
	if len(num) != len("FS-000000000-0000") {
		t.Fatalf("unexpected length: %q", num)
	}
}
