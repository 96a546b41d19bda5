package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"feedsoko/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `
  id, order_number, farmer_id, total_amount, status, delivery_address,
  payment_method, order_date, estimated_delivery, created_at`

// CreateWithItems writes the order header and every line item inside one
// transaction. If any insert fails nothing is persisted and the error is
// returned to the caller; no one ever observes an order with partial items.
func (r *OrderRepo) CreateWithItems(o *domain.Order, items []domain.OrderItem) (int64, error) {
	if len(items) == 0 {
		return 0, errors.New("order has no items")
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
		INSERT INTO orders(order_number,farmer_id,total_amount,status,delivery_address,payment_method,order_date,estimated_delivery)
		VALUES(?,?,?,?,?,?,CURRENT_TIMESTAMP,?)`,
		o.OrderNumber, o.FarmerID, o.TotalAmount, o.Status, o.DeliveryAddress, o.PaymentMethod, o.EstimatedDelivery)
	if err != nil {
		return 0, err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, it := range items {
		if _, err := tx.Exec(`
			INSERT INTO order_items(order_id,product_id,product_name,quantity,price,total_price)
			VALUES(?,?,?,?,?,?)`,
			orderID, it.ProductID, it.ProductName, it.Quantity, it.Price, it.TotalPrice); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return orderID, nil
}

// Get returns (nil, nil) when the order does not exist.
func (r *OrderRepo) Get(id int64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetWithItems loads the order header together with its line items.
func (r *OrderRepo) GetWithItems(id int64) (*domain.Order, []domain.OrderItem, error) {
	o, err := r.Get(id)
	if err != nil || o == nil {
		return o, nil, err
	}
	var items []domain.OrderItem
	if err := r.db.Select(&items, `
		SELECT id, order_id, product_id, product_name, quantity, price, total_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY id`, id); err != nil {
		return nil, nil, err
	}
	return o, items, nil
}

func (r *OrderRepo) ListByFarmer(farmerID int64) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
		SELECT `+orderCols+`
		FROM orders
		WHERE farmer_id = ?
		ORDER BY datetime(created_at) DESC`, farmerID)
	return out, err
}

// ListBySeller returns orders containing at least one of the seller's
// products (the seller-facing order-management view).
func (r *OrderRepo) ListBySeller(sellerID int64) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
		SELECT DISTINCT o.id, o.order_number, o.farmer_id, o.total_amount, o.status,
		       o.delivery_address, o.payment_method, o.order_date, o.estimated_delivery, o.created_at
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p ON p.id = oi.product_id
		WHERE p.seller_id = ?
		ORDER BY datetime(o.created_at) DESC`, sellerID)
	return out, err
}

func (r *OrderRepo) ListAll(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Order
	err := r.db.Select(&out, `
		SELECT `+orderCols+`
		FROM orders
		ORDER BY datetime(created_at) DESC
		LIMIT ?`, limit)
	return out, err
}

// UpdateStatus sets the status unconditionally (no transition graph; the
// data layer is caller-directed). Reports false when the id does not exist.
// Concurrent updates are last-writer-wins; SQLite serializes the writes.
func (r *OrderRepo) UpdateStatus(id int64, status domain.OrderStatus) (bool, error) {
	res, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
