package repository

import (
	"context"

	"storefront/internal/domain/models"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product models.Product) (int64, error)
	GetProduct(ctx context.Context, id int64) (models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListFiltered(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	DistinctValues(ctx context.Context, field models.FilterField) ([]string, error)
	UpdateProduct(ctx context.Context, id int64, product models.Product) error
	UpdateMainImage(ctx context.Context, id int64, filename string) error
	DeleteProduct(ctx context.Context, id int64) error
}

type ImageRepository interface {
	AddImage(ctx context.Context, productID int64, filename string) (int64, error)
	ListByProduct(ctx context.Context, productID int64) ([]models.GalleryImage, error)
	DeleteByFilenames(ctx context.Context, productID int64, filenames []string) error
	DeleteAllByProduct(ctx context.Context, productID int64) ([]string, error)
}
