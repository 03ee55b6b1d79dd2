package services

import (
	"context"
	"fmt"
	"log/slog"

	"storefront/internal/domain/models"
	"storefront/internal/lib/logger/sl"
	"storefront/internal/repository"
	"storefront/internal/transport/http/dto"
)

// CatalogService собирает публичную выдачу: фильтрованный список,
// значения для контролов фильтра и карточку товара
type CatalogService struct {
	log    *slog.Logger
	repo   repository.ProductRepository
	images repository.ImageRepository
}

func NewCatalogService(log *slog.Logger, repo repository.ProductRepository, images repository.ImageRepository) *CatalogService {
	return &CatalogService{
		log:    log,
		repo:   repo,
		images: images,
	}
}

// ListFiltered возвращает товары под заданные критерии. Пустой результат —
// валидная выдача из нуля товаров.
func (s *CatalogService) ListFiltered(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	const op = "catalog_service.ListFiltered"

	products, err := s.repo.ListFiltered(ctx, filter)
	if err != nil {
		s.log.Error("failed to list products", slog.String("op", op), sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if products == nil {
		products = []models.Product{}
	}

	return products, nil
}

// FilterOptions читает актуальные наборы значений напрямую из хранилища
// при каждом вызове, без кэша
func (s *CatalogService) FilterOptions(ctx context.Context) ([]string, []string, error) {
	const op = "catalog_service.FilterOptions"

	materials, err := s.repo.DistinctValues(ctx, models.FilterMaterial)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	productTypes, err := s.repo.DistinctValues(ctx, models.FilterProductType)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return materials, productTypes, nil
}

// ProductDetail возвращает товар и его картинки: главная первой, затем
// галерея в стабильном порядке
func (s *CatalogService) ProductDetail(ctx context.Context, id int64) (dto.ProductDetail, error) {
	const op = "catalog_service.ProductDetail"

	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return dto.ProductDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	gallery, err := s.images.ListByProduct(ctx, id)
	if err != nil {
		return dto.ProductDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	images := make([]string, 0, len(gallery)+1)
	if product.Image != "" {
		images = append(images, product.Image)
	}
	for _, img := range gallery {
		images = append(images, img.Filename)
	}

	return dto.ProductDetail{
		Product: product,
		Images:  images,
	}, nil
}
