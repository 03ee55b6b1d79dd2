package repository

import (
	"context"
	"fmt"

	"storefront/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"
)

const imageTable = "product_images"

type ImageRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewImageRepository(db *pgxpool.Pool) *ImageRepo {
	return &ImageRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ImageRepo) AddImage(ctx context.Context, productID int64, filename string) (int64, error) {
	const op = "repository.image_repository.AddImage"

	query, args, err := r.sb.Insert(imageTable).
		Columns("product_id", "filename").
		Values(productID, filename).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// ListByProduct возвращает галерею товара в стабильном порядке вставки
func (r *ImageRepo) ListByProduct(ctx context.Context, productID int64) ([]models.GalleryImage, error) {
	const op = "repository.image_repository.ListByProduct"

	query, args, err := r.sb.Select("id", "product_id", "filename", "created_at").
		From(imageTable).
		Where(sq.Eq{"product_id": productID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var images []models.GalleryImage
	for rows.Next() {
		var img models.GalleryImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.Filename, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: row scanning failed: %w", op, err)
		}
		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", op, err)
	}

	return images, nil
}

// DeleteByFilenames удаляет строки галереи только данного товара.
// Совпадение имен у чужих товаров не задевается. Повторный вызов — no-op.
func (r *ImageRepo) DeleteByFilenames(ctx context.Context, productID int64, filenames []string) error {
	const op = "repository.image_repository.DeleteByFilenames"

	if len(filenames) == 0 {
		return nil
	}

	query, args, err := r.sb.Delete(imageTable).
		Where(sq.Eq{"product_id": productID}).
		Where("filename = ANY(?)", pq.Array(filenames)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteAllByProduct удаляет все строки галереи товара и возвращает имена
// файлов для последующей чистки хранилища
func (r *ImageRepo) DeleteAllByProduct(ctx context.Context, productID int64) ([]string, error) {
	const op = "repository.image_repository.DeleteAllByProduct"

	query, args, err := r.sb.Delete(imageTable).
		Where(sq.Eq{"product_id": productID}).
		Suffix("RETURNING filename").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var filenames []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%s: row scanning failed: %w", op, err)
		}
		filenames = append(filenames, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", op, err)
	}

	return filenames, nil
}
