package app

import (
	"context"
	"log/slog"

	httpapp "storefront/internal/app/http"
	"storefront/internal/config"
	"storefront/internal/repository"
	"storefront/internal/services/auth"
	catalogservice "storefront/internal/services/catalog_service"
	imageservice "storefront/internal/services/image_service"
	productservice "storefront/internal/services/product_service"
	filestorage "storefront/internal/storage/filestorage"
	"storefront/internal/storage/postgresql"
	httprouters "storefront/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server
	Storage    *postgresql.Storage
}

func New(log *slog.Logger, cfg *config.Config) *App {
	storage, err := postgresql.New(context.Background(), cfg.DSN)
	if err != nil {
		panic(err)
	}

	if err := postgresql.Migrate(cfg.DSN, cfg.MigrationsPath); err != nil {
		panic(err)
	}

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.FileStorage.BaseDir, cfg.FileStorage.BaseURL)
	if err != nil {
		panic(err)
	}

	repos := repository.NewRepository(storage.Pool())

	imageService := imageservice.NewImageService(log, repos.Image, repos.Product, fileStorage)
	productService := productservice.NewProductService(log, repos.Product, imageService)
	catalogService := catalogservice.NewCatalogService(log, repos.Product, repos.Image)
	authService := auth.New(log, cfg.Admin, cfg.Session)

	routers := httprouters.NewRouter(log, catalogService, productService, authService)

	server := httpapp.New(log, cfg, routers)

	return &App{
		HTTPServer: server,
		Storage:    storage,
	}
}

func (a *App) Stop() {
	_ = a.HTTPServer.Stop()
	a.Storage.Stop()
}
