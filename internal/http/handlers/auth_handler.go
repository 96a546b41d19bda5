package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"feedsoko/internal/domain"
	"feedsoko/internal/log"
	"feedsoko/internal/services"
	"feedsoko/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	if sid := SessionToken(c); sid != "" {
		return sid
	}
	sid := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false, // enable true behind TLS
	})
	return sid
}

type registerReq struct {
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
	UserType  string `json:"userType" validate:"required,oneof=farmer seller"`
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Location  string `json:"location" validate:"max=100"`
	Password  string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := bind(c, &req); err != nil {
		log.Security(c, "auth.register.fail", map[string]any{"reason": "bad_body"})
		return jsonErr(c, fiber.StatusBadRequest, "invalid registration details")
	}
	username, ok := validate.Username(req.Username)
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "username must be 3-30 lowercase letters, digits or underscores")
	}
	phone, ok := validate.Phone(req.Phone)
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid phone number")
	}
	if !validate.Password(req.Password) {
		return jsonErr(c, fiber.StatusBadRequest, "password must be 8-64 characters with letters and digits")
	}

	u, err := h.Auth.Register(services.Registration{
		Username:  username,
		Email:     req.Email,
		Phone:     phone,
		UserType:  domain.UserType(req.UserType),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Location:  req.Location,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) || errors.Is(err, services.ErrNameTaken) {
			log.Security(c, "auth.register.fail", map[string]any{"reason": "duplicate"})
			return jsonErr(c, fiber.StatusConflict, err.Error())
		}
		log.Error(c, "auth.register.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not create account")
	}

	log.Audit(c, "auth.register", map[string]any{"user_id": u.ID, "user_type": u.UserType})
	return c.Status(fiber.StatusCreated).JSON(u)
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := bind(c, &req); err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"reason": "bad_body"})
		return jsonErr(c, fiber.StatusUnauthorized, "invalid email or password")
	}
	sid := ensureSID(c)
	u, err := h.Auth.Login(sid, req.Email, req.Password)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": req.Email})
		return jsonErr(c, fiber.StatusUnauthorized, "invalid email or password")
	}
	log.Audit(c, "auth.login.success", map[string]any{"user_id": u.ID})
	return c.JSON(fiber.Map{"token": sid, "user": u})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := SessionToken(c)
	if sid != "" {
		_ = h.Auth.Logout(sid)
	}
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"ok": true})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u := currentUser(c)
	if u == nil {
		return jsonErr(c, fiber.StatusUnauthorized, "login required")
	}
	return c.JSON(u)
}
