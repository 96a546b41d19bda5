package domain

// OrderStatus is the closed order-lifecycle enumeration. The data layer does
// not enforce a transition graph; any status may be set by an authorized
// update (caller-directed, matching the seller order-management flow).
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type Order struct {
	ID                int64       `db:"id" json:"id"`
	OrderNumber       string      `db:"order_number" json:"orderNumber"`
	FarmerID          int64       `db:"farmer_id" json:"farmerId"`
	TotalAmount       float64     `db:"total_amount" json:"totalAmount"`
	Status            OrderStatus `db:"status" json:"status"`
	DeliveryAddress   string      `db:"delivery_address" json:"deliveryAddress"`
	PaymentMethod     string      `db:"payment_method" json:"paymentMethod"`
	OrderDate         string      `db:"order_date" json:"orderDate"`
	EstimatedDelivery string      `db:"estimated_delivery" json:"estimatedDelivery,omitempty"`
	CreatedAt         string      `db:"created_at" json:"createdAt"`
}

// OrderItem is a line item written atomically with its parent order and
// immutable afterwards. ProductName is a point-of-sale snapshot so the
// receipt survives later product edits.
type OrderItem struct {
	ID          int64   `db:"id" json:"id"`
	OrderID     int64   `db:"order_id" json:"orderId"`
	ProductID   int64   `db:"product_id" json:"productId"`
	ProductName string  `db:"product_name" json:"productName"`
	Quantity    int     `db:"quantity" json:"quantity"`
	Price       float64 `db:"price" json:"price"`
	TotalPrice  float64 `db:"total_price" json:"totalPrice"`
}
