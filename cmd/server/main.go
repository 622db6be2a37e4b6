package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/cache"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/config"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/db"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/handler"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/prefs"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/repository"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/server"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/service"
	"github.com/redis/go-redis/v9"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	pg, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect database", "err", err)
		os.Exit(1)
	}
	defer pg.Close()

	// Redis cache (optional)
	var storefrontCache *cache.StorefrontCache
	if cfg.RedisAddr != "" {
		storefrontCache = &cache.StorefrontCache{
			Client: redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}),
			TTL:    cfg.RedisCacheTTL,
			Logger: logger,
		}
	}

	store, err := prefs.NewFileStore(cfg.PrefsDir)
	if err != nil {
		logger.Error("failed to open prefs store", "err", err)
		os.Exit(1)
	}
	state := prefs.State{Store: store}

	// repositories
	userRepo := repository.UserRepository{DB: pg}
	productRepo := repository.ProductRepository{DB: pg}
	serviceRepo := repository.ServiceRepository{DB: pg}
	clientRepo := repository.ClientRepository{DB: pg}
	saleRepo := repository.SaleRepository{DB: pg, Products: productRepo}
	bannerRepo := repository.BannerRepository{DB: pg}

	// services
	authSvc := service.AuthService{Config: cfg, Users: userRepo, Logger: logger}

	// handlers
	healthHandler := handler.HealthHandler{DB: pg}
	authHandler := handler.AuthHandler{Service: &authSvc}
	storefrontHandler := handler.StorefrontHandler{Products: productRepo, Services: serviceRepo, Banners: bannerRepo, Cache: storefrontCache, Logger: logger}
	productHandler := handler.ProductHandler{Repo: productRepo, PageSize: cfg.PageSize}
	productAdminHandler := handler.ProductAdminHandler{Repo: productRepo, Prefs: state, Cache: storefrontCache}
	serviceHandler := handler.ServiceHandler{Repo: serviceRepo, PageSize: cfg.PageSize}
	serviceAdminHandler := handler.ServiceAdminHandler{Repo: serviceRepo, Prefs: state, Cache: storefrontCache}
	saleHandler := handler.SaleHandler{Repo: saleRepo, Prefs: state}
	clientHandler := handler.ClientHandler{Repo: clientRepo}
	userHandler := handler.UserHandler{Repo: userRepo, Auth: &authSvc, Prefs: state}
	bannerHandler := handler.BannerHandler{Repo: bannerRepo, Cache: storefrontCache}
	dashboardHandler := handler.DashboardHandler{Products: productRepo, Prefs: state}
	activityHandler := handler.ActivityLogHandler{Prefs: state}
	prefsHandler := handler.PrefsHandler{Prefs: state}
	exportHandler := handler.ExportHandler{Products: productRepo}

	router := server.NewRouter(cfg, logger, healthHandler, authHandler, storefrontHandler, productHandler, productAdminHandler, serviceHandler, serviceAdminHandler, saleHandler, clientHandler, userHandler, bannerHandler, dashboardHandler, activityHandler, prefsHandler, exportHandler)

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
