package services

import (
	"errors"
	"fmt"

	"feedsoko/internal/domain"
	"feedsoko/internal/repos"
)

var (
	ErrEmptyOrder   = errors.New("order has no items")
	ErrBadStatus    = errors.New("unknown order status")
	ErrNotYourOrder = errors.New("order belongs to another farmer")
)

// CartLine is one checkout line as sent by the mobile client. Prices and
// totals are recomputed server-side from the catalog; the client copy is
// never trusted.
type CartLine struct {
	ProductID int64
	Quantity  int
}

type OrderService struct {
	Orders   *repos.OrderRepo
	Products *repos.ProductRepo
}

func NewOrderService(orders *repos.OrderRepo, products *repos.ProductRepo) *OrderService {
	return &OrderService{Orders: orders, Products: products}
}

// Place checks out a farmer's cart: resolves each line against the catalog,
// decrements stock, computes line totals and the grand total, generates the
// order number and writes header plus items in one transaction.
func (s *OrderService) Place(farmer *domain.User, lines []CartLine, deliveryAddress, paymentMethod string) (int64, error) {
	if len(lines) == 0 {
		return 0, ErrEmptyOrder
	}

	items := make([]domain.OrderItem, 0, len(lines))
	total := 0.0
	for _, l := range lines {
		if l.Quantity < 1 {
			l.Quantity = 1
		}
		p, err := s.Products.Get(l.ProductID)
		if err != nil {
			return 0, err
		}
		if p == nil {
			return 0, fmt.Errorf("product %d not found", l.ProductID)
		}
		ok, err := s.Products.AdjustStock(p.ID, l.Quantity)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, fmt.Errorf("insufficient stock for %s (need %d, have %d)", p.Name, l.Quantity, p.Stock)
		}
		items = append(items, domain.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    l.Quantity,
			Price:       p.Price,
			TotalPrice:  p.Price * float64(l.Quantity),
		})
		total += p.Price * float64(l.Quantity)
	}

	o := &domain.Order{
		OrderNumber:     repos.NewOrderNumber(),
		FarmerID:        farmer.ID,
		TotalAmount:     total,
		Status:          domain.OrderPending,
		DeliveryAddress: deliveryAddress,
		PaymentMethod:   paymentMethod,
	}
	return s.Orders.CreateWithItems(o, items)
}

// History is role-aware: farmers see their own orders, sellers see orders
// containing their products.
func (s *OrderService) History(u *domain.User) ([]domain.Order, error) {
	if u.UserType == domain.UserSeller {
		return s.Orders.ListBySeller(u.ID)
	}
	return s.Orders.ListByFarmer(u.ID)
}

type OrderDetail struct {
	domain.Order
	Items []domain.OrderItem `json:"items"`
}

// Detail returns (nil, nil) when the order does not exist or the user may
// not see it. Farmers see their own orders; sellers see orders they fulfil.
func (s *OrderService) Detail(u *domain.User, id int64) (*OrderDetail, error) {
	o, items, err := s.Orders.GetWithItems(id)
	if err != nil || o == nil {
		return nil, err
	}
	if u.UserType == domain.UserFarmer && o.FarmerID != u.ID {
		return nil, nil
	}
	return &OrderDetail{Order: *o, Items: items}, nil
}

// SetStatus is the seller-facing order-management mutation. Any of the five
// statuses may be set; there is no enforced transition graph.
func (s *OrderService) SetStatus(u *domain.User, id int64, status domain.OrderStatus) (bool, error) {
	if u.UserType != domain.UserSeller {
		return false, ErrNotSeller
	}
	if !status.Valid() {
		return false, ErrBadStatus
	}
	return s.Orders.UpdateStatus(id, status)
}
