package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bbqgrill/backend/internal/config"
	"github.com/bbqgrill/backend/internal/handler"
	"github.com/bbqgrill/backend/internal/logging"
	"github.com/bbqgrill/backend/internal/metrics"
	"github.com/bbqgrill/backend/internal/model"
	"github.com/bbqgrill/backend/internal/repository"
	"github.com/bbqgrill/backend/internal/service"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	_ = godotenv.Load()
	logging.Setup(os.Getenv("LOG_LEVEL"))

	src, err := config.LoadFile(config.ConfigFile(os.Getenv))
	if err != nil {
		logging.Fatal("failed to load configuration", "error", err)
	}
	cfg := config.NewResolver(src)

	connString, err := cfg.ConnectionString(config.DefaultConnectionName)
	if err != nil {
		logging.Fatal("database is not configured", "error", err)
	}

	catalog, err := model.LoadMenuCatalog(cfg.MenuCatalogFile())
	if err != nil {
		logging.Fatal("failed to load menu", "error", err)
	}

	if err := metrics.Register(nil); err != nil {
		logging.Fatal("failed to register metrics", "error", err)
	}

	gateway := repository.NewGateway(connString)
	locationService := service.NewLocationService(gateway)
	emailService := service.NewEmailService(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	h := handler.New(gateway, cfg.FrontendURL())
	locationHandler := handler.NewLocationHandler(locationService)
	contactHandler := handler.NewContactHandler(emailService)
	menuHandler := handler.NewMenuHandler(catalog)
	contactLimiter := handler.NewRateLimiter(ctx, cfg.ContactRateLimit())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("GET /api/locations", locationHandler.Search)
	mux.HandleFunc("GET /api/menu", menuHandler.List)
	mux.Handle("POST /api/contact", contactLimiter.Middleware(http.HandlerFunc(contactHandler.Submit)))
	mux.Handle("GET /metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         cfg.ServerAddr(),
		Handler:      handler.RequestLogger(handler.SecurityHeaders(h.CORS(mux))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.SMTPTimeout() + 10*time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "smtp_from", logging.MaskEmail(cfg.SMTPFromEmail()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
