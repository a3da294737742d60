package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/wearlyshop/wearly-backend/internal/modules/auth"
	"github.com/wearlyshop/wearly-backend/internal/modules/cart"
	"github.com/wearlyshop/wearly-backend/internal/modules/catalog"
	"github.com/wearlyshop/wearly-backend/internal/modules/notify"
	"github.com/wearlyshop/wearly-backend/internal/modules/order"
	"github.com/wearlyshop/wearly-backend/internal/modules/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Identity ────────────────────────────────────────────
	authCfg := auth.Config{
		BotToken:          os.Getenv("TELEGRAM_BOT_TOKEN"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}
	userRepo := user.NewPostgresRepository(db)
	authService := auth.NewService(userRepo, authCfg)
	auth.NewHandler(authService).RegisterRoutes(router)

	guards := auth.NewMiddleware(authCfg.JWTSecret)
	user.NewHandler(userRepo, guards.RequireUser, auth.UserID).RegisterRoutes(router)

	// ── Catalog ─────────────────────────────────────────────
	var productCache *catalog.Cache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		productCache = catalog.NewCache(client)
	}
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo, productCache)
	catalog.NewHandler(catalogService, guards.RequireAdmin).RegisterRoutes(router)

	// ── Cart ────────────────────────────────────────────────
	sessions := cart.NewManager()
	cart.NewHandler(sessions, catalogService, guards.RequireUser, auth.UserID).RegisterRoutes(router)

	// ── Orders & staff notifications ────────────────────────
	var notifier notify.Notifier = notify.Nop{}
	adminBotToken := os.Getenv("TELEGRAM_ADMIN_BOT_TOKEN")
	adminChatID := os.Getenv("TELEGRAM_ADMIN_CHAT_ID")
	if adminBotToken != "" && adminChatID != "" {
		notifier = notify.NewTelegram(adminBotToken, adminChatID)
	} else {
		log.Println("Telegram admin credentials not set, order notifications disabled")
	}

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, notifier)
	order.NewHandler(orderService, sessions, guards.RequireUser, guards.RequireAdmin, auth.UserID).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Wearly API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
