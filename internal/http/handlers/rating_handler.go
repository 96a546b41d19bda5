package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "feedsoko/internal/log"
	"feedsoko/internal/services"
	"feedsoko/internal/validate"
)

type RatingHandler struct {
	Ratings *services.RatingService
}

type rateReq struct {
	ProductID int64  `json:"productId" validate:"required,gt=0"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Review    string `json:"review" validate:"max=2000"`
}

func (h *RatingHandler) Rate(c *fiber.Ctx) error {
	var req rateReq
	if err := bind(c, &req); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "rating_body"})
		return jsonErr(c, fiber.StatusBadRequest, "rating must be 1-5 with an optional review")
	}
	id, err := h.Ratings.Rate(currentUser(c), req.ProductID, req.Rating, req.Review)
	if err != nil {
		if errors.Is(err, services.ErrNotFarmer) {
			return jsonErr(c, fiber.StatusForbidden, err.Error())
		}
		applog.Error(c, "ratings.create.fail", err, nil)
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	}
	applog.Audit(c, "ratings.create", map[string]any{"rating_id": id, "product_id": req.ProductID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *RatingHandler) ForProduct(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "product not found")
	}
	ratings, err := h.Ratings.ForProduct(productID)
	if err != nil {
		applog.Error(c, "ratings.list.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load ratings")
	}
	return c.JSON(ratings)
}
