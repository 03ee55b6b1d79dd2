package services

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"

	"storefront/internal/domain/models"
	"storefront/internal/lib/logger/sl"
	"storefront/internal/metrics"
	"storefront/internal/repository"
	"storefront/internal/transport/http/dto"
)

// ImageManager — часть ImageService, нужная товарному сервису
type ImageManager interface {
	SetMainImage(ctx context.Context, productID int64, file *multipart.FileHeader) error
	AddGalleryImages(ctx context.Context, productID int64, files []*multipart.FileHeader) error
	RemoveGalleryImages(ctx context.Context, productID int64, filenames []string) error
	DeleteAllForProduct(ctx context.Context, productID int64) error
}

type ProductService struct {
	log    *slog.Logger
	repo   repository.ProductRepository
	images ImageManager
}

func NewProductService(log *slog.Logger, repo repository.ProductRepository, images ImageManager) *ProductService {
	return &ProductService{
		log:    log,
		repo:   repo,
		images: images,
	}
}

// Create заводит товар и привязывает загруженные картинки
func (s *ProductService) Create(ctx context.Context, input dto.ProductCreateInput) (int64, error) {
	const op = "product_service.Create"

	log := s.log.With(
		slog.String("op", op),
		slog.String("title", input.Title),
	)

	log.Info("creating product")

	id, err := s.repo.CreateProduct(ctx, models.Product{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Material:    input.Material,
		ProductType: input.ProductType,
	})
	if err != nil {
		log.Error("failed to create product", sl.Err(err))

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.images.SetMainImage(ctx, id, input.Image); err != nil {
		log.Error("failed to set main image", sl.Err(err))

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.images.AddGalleryImages(ctx, id, input.ExtraImages); err != nil {
		log.Error("failed to add gallery images", sl.Err(err))

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	metrics.ProductsCreated.Inc()

	log.Info("product created", slog.Int64("product_id", id))

	return id, nil
}

// Update заменяет поля существующего товара, затем применяет изменения
// картинок: новая главная, добавленные и удаленные файлы галереи
func (s *ProductService) Update(ctx context.Context, id int64, input dto.ProductUpdateInput) error {
	const op = "product_service.Update"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("product_id", id),
	)

	if _, err := s.repo.GetProduct(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := s.repo.UpdateProduct(ctx, id, models.Product{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Material:    input.Material,
		ProductType: input.ProductType,
	})
	if err != nil {
		log.Error("failed to update product", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.images.SetMainImage(ctx, id, input.Image); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.images.AddGalleryImages(ctx, id, input.ExtraImages); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.images.RemoveGalleryImages(ctx, id, input.DeleteImages); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("product updated")

	return nil
}

// Delete — одна логическая операция удаления товара: сначала каскад по
// галерее (строки и файлы), потом строка товара. Висячих ссылок на товар
// после выхода не остается.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	const op = "product_service.Delete"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("product_id", id),
	)

	if _, err := s.repo.GetProduct(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.images.DeleteAllForProduct(ctx, id); err != nil {
		log.Error("failed to cascade gallery", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		log.Error("failed to delete product row", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	metrics.ProductsDeleted.Inc()

	log.Info("product deleted")

	return nil
}
