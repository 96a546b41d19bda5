package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"feedsoko/internal/domain"
	applog "feedsoko/internal/log"
	"feedsoko/internal/services"
	"feedsoko/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

type placeOrderReq struct {
	Items []struct {
		ProductID int64 `json:"productId" validate:"required,gt=0"`
		Quantity  int   `json:"quantity" validate:"required,gte=1"`
	} `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress string `json:"deliveryAddress" validate:"required,max=255"`
	PaymentMethod   string `json:"paymentMethod" validate:"required,oneof=mpesa airtel_money cash_on_delivery bank_transfer"`
}

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	u := currentUser(c)
	if u.UserType != domain.UserFarmer {
		applog.Security(c, "order.place.denied", nil)
		return jsonErr(c, fiber.StatusForbidden, "only farmers place orders")
	}

	var req placeOrderReq
	if err := bind(c, &req); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "order_body"})
		return jsonErr(c, fiber.StatusBadRequest, "invalid order details")
	}

	lines := make([]services.CartLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, services.CartLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	id, err := h.Orders.Place(u, lines, req.DeliveryAddress, req.PaymentMethod)
	if err != nil {
		// business rule errors (missing product, insufficient stock) surface as 400
		applog.Security(c, "order.place.fail", map[string]any{"error": err.Error()})
		return jsonErr(c, fiber.StatusBadRequest, "could not place order: "+err.Error())
	}

	detail, err := h.Orders.Detail(u, id)
	if err != nil || detail == nil {
		applog.Error(c, "order.place.load", err, map[string]any{"order_id": id})
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
	}
	applog.Audit(c, "order.place", map[string]any{"order_id": id, "order_number": detail.OrderNumber, "total": detail.TotalAmount})
	return c.Status(fiber.StatusCreated).JSON(detail)
}

func (h *OrderHandler) History(c *fiber.Ctx) error {
	orders, err := h.Orders.History(currentUser(c))
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load orders")
	}
	return c.JSON(orders)
}

func (h *OrderHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "order not found")
	}
	detail, err := h.Orders.Detail(currentUser(c), id)
	if err != nil {
		applog.Error(c, "orders.detail.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load order")
	}
	if detail == nil {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": id})
		return notFound(c, "order not found")
	}
	return c.JSON(detail)
}

type statusReq struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed shipped delivered cancelled"`
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "order not found")
	}
	var req statusReq
	if err := bind(c, &req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid status")
	}
	changed, err := h.Orders.SetStatus(currentUser(c), id, domain.OrderStatus(req.Status))
	if err != nil {
		if errors.Is(err, services.ErrNotSeller) {
			return jsonErr(c, fiber.StatusForbidden, err.Error())
		}
		applog.Error(c, "orders.status.fail", err, nil)
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	}
	if !changed {
		return notFound(c, "order not found")
	}
	applog.Audit(c, "orders.status", map[string]any{"order_id": id, "status": req.Status})
	return c.JSON(fiber.Map{"ok": true})
}
