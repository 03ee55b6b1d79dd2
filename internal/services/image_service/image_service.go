package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strconv"

	"storefront/internal/lib/logger/sl"
	"storefront/internal/metrics"
	"storefront/internal/repository"
	storage "storefront/internal/storage/filestorage"
)

// ImageService отвечает за жизненный цикл картинок товара: главная картинка,
// галерея и файлы в хранилище. Строка метаданных и файл удаляются в связке.
type ImageService struct {
	log         *slog.Logger
	repo        repository.ImageRepository
	products    repository.ProductRepository
	fileStorage storage.FileStorage
}

func NewImageService(log *slog.Logger, repo repository.ImageRepository, products repository.ProductRepository, fileStorage storage.FileStorage) *ImageService {
	return &ImageService{
		log:         log,
		repo:        repo,
		products:    products,
		fileStorage: fileStorage,
	}
}

// productDir — подкаталог хранилища для одного товара. Одинаковые имена
// файлов у разных товаров не конфликтуют.
func productDir(productID int64) string {
	return filepath.Join("products", strconv.FormatInt(productID, 10))
}

// SetMainImage сохраняет новую главную картинку и пишет ее имя в товар.
// Без файла (или с пустым именем) поле не трогается. Прежний файл остается
// в хранилище: источник не занимался его чисткой, поведение сохранено.
func (s *ImageService) SetMainImage(ctx context.Context, productID int64, file *multipart.FileHeader) error {
	const op = "image_service.SetMainImage"

	if file == nil || file.Filename == "" {
		return nil
	}

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("product_id", productID),
	)

	if _, err := s.products.GetProduct(ctx, productID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	filePath, _, err := s.fileStorage.Save(ctx, file, productDir(productID))
	if err != nil {
		log.Error("failed to save main image", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	filename := filepath.Base(filePath)

	if err := s.products.UpdateMainImage(ctx, productID, filename); err != nil {
		// Файл без строки метаданных не оставляем
		_ = s.fileStorage.Delete(ctx, filePath)
		log.Error("failed to update main image field", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	metrics.ImagesUploaded.Inc()

	log.Info("main image updated", slog.String("filename", filename))

	return nil
}

// AddGalleryImages добавляет файлы в галерею товара. Пустые имена молча
// пропускаются; каждый файл обрабатывается независимо, сбой одного не
// останавливает остальные.
func (s *ImageService) AddGalleryImages(ctx context.Context, productID int64, files []*multipart.FileHeader) error {
	const op = "image_service.AddGalleryImages"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("product_id", productID),
	)

	if len(files) == 0 {
		return nil
	}

	if _, err := s.products.GetProduct(ctx, productID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, file := range files {
		if file == nil || file.Filename == "" {
			continue
		}

		filePath, _, err := s.fileStorage.Save(ctx, file, productDir(productID))
		if err != nil {
			log.Error("failed to save gallery file", slog.String("filename", file.Filename), sl.Err(err))
			continue
		}

		filename := filepath.Base(filePath)

		if _, err := s.repo.AddImage(ctx, productID, filename); err != nil {
			// Строку вставить не удалось — файл без метаданных не оставляем
			_ = s.fileStorage.Delete(ctx, filePath)
			log.Error("failed to insert gallery row", slog.String("filename", filename), sl.Err(err))
			continue
		}

		metrics.ImagesUploaded.Inc()
	}

	return nil
}

// RemoveGalleryImages удаляет названные файлы и их строки, только в рамках
// данного товара. Уже отсутствующий файл ошибкой не считается; повторный
// вызов — no-op.
func (s *ImageService) RemoveGalleryImages(ctx context.Context, productID int64, filenames []string) error {
	const op = "image_service.RemoveGalleryImages"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("product_id", productID),
	)

	// Строки хранят уже очищенные имена, поэтому файл и строка удаляются
	// под одним и тем же ключом
	keys := make([]string, 0, len(filenames))
	for _, name := range filenames {
		if name == "" {
			continue
		}
		keys = append(keys, storage.SanitizeFilename(name))
	}

	if len(keys) == 0 {
		return nil
	}

	for _, key := range keys {
		filePath := filepath.Join(productDir(productID), key)
		if err := s.fileStorage.Delete(ctx, filePath); err != nil && !errors.Is(err, storage.ErrFileNotFound) {
			log.Warn("failed to delete gallery file", slog.String("filename", key), sl.Err(err))
		}
	}

	if err := s.repo.DeleteByFilenames(ctx, productID, keys); err != nil {
		log.Error("failed to delete gallery rows", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ListGalleryImages возвращает имена файлов галереи в стабильном порядке
func (s *ImageService) ListGalleryImages(ctx context.Context, productID int64) ([]string, error) {
	const op = "image_service.ListGalleryImages"

	images, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	filenames := make([]string, 0, len(images))
	for _, img := range images {
		filenames = append(filenames, img.Filename)
	}

	return filenames, nil
}

// DeleteAllForProduct — первый шаг каскадного удаления товара: снимает все
// строки галереи и затем их файлы. Идемпотентен для товара без картинок.
func (s *ImageService) DeleteAllForProduct(ctx context.Context, productID int64) error {
	const op = "image_service.DeleteAllForProduct"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("product_id", productID),
	)

	filenames, err := s.repo.DeleteAllByProduct(ctx, productID)
	if err != nil {
		log.Error("failed to delete gallery rows", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	for _, name := range filenames {
		filePath := filepath.Join(productDir(productID), name)
		if err := s.fileStorage.Delete(ctx, filePath); err != nil && !errors.Is(err, storage.ErrFileNotFound) {
			log.Warn("failed to delete gallery file", slog.String("filename", name), sl.Err(err))
		}
	}

	log.Info("gallery cleared", slog.Int("files", len(filenames)))

	return nil
}
