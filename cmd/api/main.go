package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/savdohub/savdo-backend/internal/config"
	"github.com/savdohub/savdo-backend/internal/modules/auth"
	"github.com/savdohub/savdo-backend/internal/modules/billing"
	"github.com/savdohub/savdo-backend/internal/modules/customer"
	"github.com/savdohub/savdo-backend/internal/modules/notify"
	"github.com/savdohub/savdo-backend/internal/modules/order"
	"github.com/savdohub/savdo-backend/internal/modules/product"
	"github.com/savdohub/savdo-backend/internal/modules/stats"
	"github.com/savdohub/savdo-backend/internal/modules/user"
)

func main() {
	// Missing .env is fine in containerised deployments.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// ── Record store: one backend, chosen once ──────────────
	var (
		userRepo     user.Repository
		customerRepo customer.Repository
		productRepo  product.Repository
		orderRepo    order.Repository
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Fatal(err)
		}
		if err := applyMigrations(db); err != nil {
			log.Fatal(err)
		}
		log.Println("using postgres record store")

		userRepo = user.NewPostgresRepository(db)
		customerRepo = customer.NewPostgresRepository(db)
		productRepo = product.NewPostgresRepository(db)
		orderRepo = order.NewPostgresRepository(db)
	} else {
		log.Printf("using flat-file record store in %s", cfg.DataDir)
		userRepo = user.NewJSONRepository(filepath.Join(cfg.DataDir, "users.json"))
		customerRepo = customer.NewJSONRepository(filepath.Join(cfg.DataDir, "customers.json"))
		productRepo = product.NewJSONRepository(filepath.Join(cfg.DataDir, "products.json"))
		orderRepo = order.NewJSONRepository(filepath.Join(cfg.DataDir, "orders.json"))
	}

	tokens := auth.NewTokens(cfg.JWTSecret)

	// ── Notification side-channel ───────────────────────────
	var notifier interface {
		order.Notifier
		notify.Sender
	} = notify.Noop{}
	if cfg.TelegramBotToken != "" {
		tg, err := notify.NewTelegram(cfg.TelegramBotToken, userRepo, productRepo)
		if err != nil {
			log.Printf("telegram bot unavailable, notifications disabled: %v", err)
		} else {
			notifier = tg
		}
	}

	// ── Services ────────────────────────────────────────────
	userService := user.NewService(userRepo)
	customerService := customer.NewService(customerRepo)
	productService := product.NewService(productRepo)
	orderService := order.NewService(orderRepo, productRepo, customerService, notifier)
	statsService := stats.NewService(orderService, productService, nil)
	billingService := billing.NewService(userRepo)

	if cfg.AdminPassword != "" {
		if err := userService.EnsureSuperAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
			log.Fatal(err)
		}
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(tokens.Middleware)

	user.NewHandler(userService, tokens).RegisterRoutes(router)
	customer.NewHandler(customerService, tokens).RegisterRoutes(router)
	product.NewHandler(productService).RegisterRoutes(router)
	order.NewHandler(orderService).RegisterRoutes(router)
	stats.NewHandler(statsService).RegisterRoutes(router)
	billing.NewHandler(billingService).RegisterRoutes(router)
	notify.NewHandler(notifier).RegisterRoutes(router)

	log.Printf("api server starting on :%s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}

func applyMigrations(db *sql.DB) error {
	schema, err := os.ReadFile(filepath.Join("migrations", "schema.sql"))
	if err != nil {
		return err
	}
	_, err = db.Exec(string(schema))
	return err
}
