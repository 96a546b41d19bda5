package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"feedsoko/internal/config"
	"feedsoko/internal/http/handlers"
	applog "feedsoko/internal/log"
	"feedsoko/internal/repos"
	"feedsoko/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please try again",
			})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(handlers.AttachUser(authSvc))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	deps := handlers.NewDeps(db, authSvc)

	api := app.Group("/api/v1")

	// Auth (login throttled)
	auth := api.Group("/auth")
	auth.Post("/register", deps.AuthHandler.Register)
	auth.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	}), deps.AuthHandler.Login)
	auth.Post("/logout", deps.AuthHandler.Logout)
	auth.Get("/me", deps.AuthHandler.Me)

	// Catalog
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Detail)
	api.Get("/products/:id/ratings", deps.RatingHandler.ForProduct)
	api.Post("/products", handlers.RequireSeller(authSvc), deps.ProductHandler.Create)
	api.Put("/products/:id", handlers.RequireSeller(authSvc), deps.ProductHandler.Update)
	api.Delete("/products/:id", handlers.RequireSeller(authSvc), deps.ProductHandler.Delete)

	// Orders
	api.Post("/orders", handlers.RequireUser(authSvc), deps.OrderHandler.Place)
	api.Get("/orders", handlers.RequireUser(authSvc), deps.OrderHandler.History)
	api.Get("/orders/:id", handlers.RequireUser(authSvc), deps.OrderHandler.Detail)
	api.Post("/orders/:id/status", handlers.RequireSeller(authSvc), deps.OrderHandler.UpdateStatus)

	// Chat
	api.Get("/messages", handlers.RequireUser(authSvc), deps.MessageHandler.Inbox)
	api.Get("/messages/with/:id", handlers.RequireUser(authSvc), deps.MessageHandler.Conversation)
	api.Post("/messages", handlers.RequireUser(authSvc), deps.MessageHandler.Send)
	api.Post("/messages/read", handlers.RequireUser(authSvc), deps.MessageHandler.MarkRead)
	api.Get("/messages/unread-count", handlers.RequireUser(authSvc), deps.MessageHandler.UnreadCount)

	// Ratings
	api.Post("/ratings", handlers.RequireUser(authSvc), deps.RatingHandler.Rate)

	// Quality-assurance content
	api.Get("/qa", deps.QAHandler.List)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
