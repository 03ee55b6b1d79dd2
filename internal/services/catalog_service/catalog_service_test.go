package services_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"storefront/internal/domain/models"
	services "storefront/internal/services/catalog_service"
	"storefront/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, product models.Product) (int64, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) ListFiltered(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) DistinctValues(ctx context.Context, field models.FilterField) ([]string, error) {
	args := m.Called(ctx, field)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, id int64, product models.Product) error {
	args := m.Called(ctx, id, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateMainImage(ctx context.Context, id int64, filename string) error {
	args := m.Called(ctx, id, filename)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) AddImage(ctx context.Context, productID int64, filename string) (int64, error) {
	args := m.Called(ctx, productID, filename)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockImageRepository) ListByProduct(ctx context.Context, productID int64) ([]models.GalleryImage, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]models.GalleryImage), args.Error(1)
}

func (m *MockImageRepository) DeleteByFilenames(ctx context.Context, productID int64, filenames []string) error {
	args := m.Called(ctx, productID, filenames)
	return args.Error(0)
}

func (m *MockImageRepository) DeleteAllByProduct(ctx context.Context, productID int64) ([]string, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]string), args.Error(1)
}

func newCatalogService(t *testing.T) (*services.CatalogService, *MockProductRepository, *MockImageRepository) {
	t.Helper()

	mockRepo := new(MockProductRepository)
	mockImages := new(MockImageRepository)
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))

	return services.NewCatalogService(log, mockRepo, mockImages), mockRepo, mockImages
}

func TestCatalogService_ListFiltered(t *testing.T) {
	ctx := context.Background()

	t.Run("passes filter through unchanged", func(t *testing.T) {
		svc, mockRepo, _ := newCatalogService(t)

		filter := models.ProductFilter{
			Material:    "ceramic",
			ProductType: "vase",
			Sort:        models.SortPriceDesc,
		}
		expected := []models.Product{{ID: 2, Title: "Vase", Price: 59.90}}

		mockRepo.On("ListFiltered", ctx, filter).Return(expected, nil).Once()

		products, err := svc.ListFiltered(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, expected, products)
	})

	t.Run("nil result becomes empty slice", func(t *testing.T) {
		svc, mockRepo, _ := newCatalogService(t)

		mockRepo.On("ListFiltered", ctx, models.ProductFilter{Sort: models.SortPriceAsc}).
			Return([]models.Product(nil), nil).Once()

		products, err := svc.ListFiltered(ctx, models.ProductFilter{Sort: models.SortPriceAsc})
		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})
}

func TestCatalogService_FilterOptions(t *testing.T) {
	ctx := context.Background()
	svc, mockRepo, _ := newCatalogService(t)

	mockRepo.On("DistinctValues", ctx, models.FilterMaterial).Return([]string{"ceramic", "clay"}, nil).Once()
	mockRepo.On("DistinctValues", ctx, models.FilterProductType).Return([]string{"vase"}, nil).Once()

	materials, productTypes, err := svc.FilterOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ceramic", "clay"}, materials)
	assert.Equal(t, []string{"vase"}, productTypes)

	mockRepo.AssertExpectations(t)
}

func TestCatalogService_ProductDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("main image comes first", func(t *testing.T) {
		svc, mockRepo, mockImages := newCatalogService(t)

		mockRepo.On("GetProduct", ctx, int64(2)).Return(models.Product{ID: 2, Title: "Vase", Image: "main.jpg"}, nil).Once()
		mockImages.On("ListByProduct", ctx, int64(2)).Return([]models.GalleryImage{
			{ID: 1, ProductID: 2, Filename: "side.jpg"},
			{ID: 2, ProductID: 2, Filename: "top.jpg"},
		}, nil).Once()

		detail, err := svc.ProductDetail(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"main.jpg", "side.jpg", "top.jpg"}, detail.Images)
		assert.Equal(t, "Vase", detail.Product.Title)
	})

	t.Run("without main image only the gallery", func(t *testing.T) {
		svc, mockRepo, mockImages := newCatalogService(t)

		mockRepo.On("GetProduct", ctx, int64(2)).Return(models.Product{ID: 2}, nil).Once()
		mockImages.On("ListByProduct", ctx, int64(2)).Return([]models.GalleryImage{
			{ID: 1, ProductID: 2, Filename: "side.jpg"},
		}, nil).Once()

		detail, err := svc.ProductDetail(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"side.jpg"}, detail.Images)
	})

	t.Run("missing product", func(t *testing.T) {
		svc, mockRepo, mockImages := newCatalogService(t)

		mockRepo.On("GetProduct", ctx, int64(99)).Return(models.Product{}, storage.ErrProductNotFound).Once()

		_, err := svc.ProductDetail(ctx, 99)
		assert.ErrorIs(t, err, storage.ErrProductNotFound)

		mockImages.AssertNotCalled(t, "ListByProduct")
	})
}
