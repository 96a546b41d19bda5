package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"feedsoko/internal/domain"
	applog "feedsoko/internal/log"
	"feedsoko/internal/services"
	"feedsoko/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	category := c.Query("category")
	if sellerParam := c.Query("seller"); sellerParam != "" {
		sellerID, ok := validate.ID(sellerParam)
		if !ok {
			return jsonErr(c, fiber.StatusBadRequest, "invalid seller id")
		}
		out, err := h.Catalog.BySeller(sellerID)
		if err != nil {
			applog.Error(c, "products.list.fail", err, nil)
			return jsonErr(c, fiber.StatusInternalServerError, "could not load products")
		}
		return c.JSON(out)
	}

	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)
	out, err := h.Catalog.Browse(category, limit, offset)
	if err != nil {
		if errors.Is(err, services.ErrBadCategory) {
			return jsonErr(c, fiber.StatusBadRequest, err.Error())
		}
		applog.Error(c, "products.list.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load products")
	}
	return c.JSON(out)
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return notFound(c, "product not found")
	}
	p, err := h.Catalog.Detail(id)
	if err != nil {
		applog.Error(c, "products.detail.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load product")
	}
	if p == nil {
		return notFound(c, "product not found")
	}
	return c.JSON(p)
}

type productReq struct {
	Name            string  `json:"name" validate:"required,max=100"`
	Description     string  `json:"description" validate:"max=2000"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	Category        string  `json:"category" validate:"required,oneof=poultry cattle pig fish other"`
	Stock           int     `json:"stock" validate:"gte=0"`
	Image           string  `json:"image" validate:"max=255"`
	Weight          string  `json:"weight" validate:"max=30"`
	Brand           string  `json:"brand" validate:"max=60"`
	Ingredients     string  `json:"ingredients" validate:"max=2000"`
	NutritionalInfo string  `json:"nutritionalInfo" validate:"max=2000"`
	Certificate     string  `json:"certificate" validate:"max=255"`
}

func (r *productReq) toDomain() *domain.Product {
	return &domain.Product{
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		Category:        r.Category,
		Stock:           r.Stock,
		Image:           r.Image,
		Weight:          r.Weight,
		Brand:           r.Brand,
		Ingredients:     r.Ingredients,
		NutritionalInfo: r.NutritionalInfo,
		Certificate:     r.Certificate,
	}
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req productReq
	if err := bind(c, &req); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "product_body"})
		return jsonErr(c, fiber.StatusBadRequest, "invalid product details")
	}
	id, err := h.Catalog.CreateProduct(currentUser(c), req.toDomain())
	if err != nil {
		applog.Error(c, "products.create.fail", err, nil)
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	}
	applog.Audit(c, "products.create", map[string]any{"product_id": id})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "product not found")
	}
	var req productReq
	if err := bind(c, &req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid product details")
	}
	p := req.toDomain()
	p.ID = id
	changed, err := h.Catalog.UpdateProduct(currentUser(c), p)
	if err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			applog.Security(c, "access.denied.product", map[string]any{"product_id": id})
			return jsonErr(c, fiber.StatusForbidden, err.Error())
		}
		applog.Error(c, "products.update.fail", err, nil)
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	}
	if !changed {
		return notFound(c, "product not found")
	}
	applog.Audit(c, "products.update", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "product not found")
	}
	deleted, err := h.Catalog.DeleteProduct(currentUser(c), id)
	if err != nil {
		applog.Error(c, "products.delete.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not delete product")
	}
	if !deleted {
		// unknown id or someone else's listing; same answer either way
		return notFound(c, "product not found")
	}
	applog.Audit(c, "products.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"ok": true})
}
