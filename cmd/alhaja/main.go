package main

import (
	"context"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"alhaja/internal/config"
	"alhaja/internal/http/handlers"
	applog "alhaja/internal/log"
	"alhaja/internal/realtime"
	"alhaja/internal/repos"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Change notifications: local bus, bridged over redis when configured so
	// several back-office instances converge after any write.
	bus := realtime.NewBus()
	var notifier realtime.Notifier = bus
	if cfg.RedisAddr != "" {
		rdb := realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
		notifier = realtime.NewRedisNotifier(ctx, rdb, bus)
		log.Printf("[realtime] redis bridge on %s", cfg.RedisAddr)
	}

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
	}))

	deps := handlers.NewDeps(ctx, db, cfg, notifier)

	// Public storefront
	app.Static("/static", "./web/static")
	app.Get("/", deps.CatalogHandler.Home)
	app.Get("/product/:id", deps.CatalogHandler.Detail)

	// Back-office API
	admin := app.Group("/admin")
	admin.Get("/products", deps.AdminHandler.ListProducts)
	admin.Post("/products", deps.AdminHandler.CreateProduct)
	admin.Patch("/products/:id", deps.AdminHandler.UpdateProduct)
	admin.Post("/products/delete", deps.AdminHandler.DeleteProducts)
	admin.Post("/products/status", deps.AdminHandler.BulkStatus)
	admin.Put("/products/:id/variants", deps.AdminHandler.SaveVariants)
	admin.Post("/products/:id/primary/:variantId", deps.AdminHandler.SetPrimary)

	admin.Get("/assets", deps.AdminHandler.ListAssets)
	admin.Post("/assets", deps.AdminHandler.CreateAsset)
	admin.Put("/assets/:id", deps.AdminHandler.UpdateAsset)
	admin.Post("/assets/delete", deps.AdminHandler.DeleteAssets)
	admin.Post("/assets/relocate", deps.AdminHandler.RelocateAssets)

	admin.Get("/roi", deps.AdminHandler.ROIRanking)
	admin.Get("/low-stock", deps.AdminHandler.LowStock)
	admin.Get("/valuation", deps.AdminHandler.Valuation)
	admin.Post("/refresh", deps.AdminHandler.Refresh)

	admin.Post("/calc", deps.CalcHandler.Open)
	admin.Get("/calc/:id", deps.CalcHandler.Get)
	admin.Delete("/calc/:id", deps.CalcHandler.Close)
	admin.Put("/calc/:id/lines", deps.CalcHandler.SetLine)
	admin.Post("/calc/:id/lines", deps.CalcHandler.AddLine)
	admin.Delete("/calc/:id/lines/:lineId", deps.CalcHandler.RemoveLine)
	admin.Post("/calc/:id/markup", deps.CalcHandler.SetMarkup)
	admin.Post("/calc/:id/target", deps.CalcHandler.SetTarget)
	admin.Post("/calc/:id/seed/:productId", deps.CalcHandler.Seed)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
