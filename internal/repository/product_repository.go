package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain/models"
	"storefront/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const productTable = "products"

var productColumns = []string{
	"id",
	"title",
	"description",
	"price",
	"image",
	"material",
	"product_type",
	"created_at",
	"updated_at",
}

type ProductRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ProductRepo) CreateProduct(ctx context.Context, product models.Product) (int64, error) {
	const op = "repository.product_repository.CreateProduct"

	query, args, err := r.sb.Insert(productTable).
		Columns("title", "description", "price", "image", "material", "product_type").
		Values(
			product.Title,
			product.Description,
			product.Price,
			product.Image,
			product.Material,
			product.ProductType,
		).
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

func (r *ProductRepo) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	const op = "repository.product_repository.GetProduct"

	query, args, err := r.sb.Select(productColumns...).
		From(productTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Product{}, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var p models.Product
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.Image,
		&p.Material,
		&p.ProductType,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Product{}, fmt.Errorf("%s: %w", op, storage.ErrProductNotFound)
		}
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (r *ProductRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	const op = "repository.product_repository.ListProducts"

	query, args, err := r.sb.Select(productColumns...).
		From(productTable).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	return r.queryProducts(ctx, op, query, args)
}

// ListFiltered строит выборку по закрытому набору критериев. Непустые
// критерии соединяются через AND; сортировка всегда по цене, с id как
// детерминированным разрешением равных цен.
func (r *ProductRepo) ListFiltered(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	const op = "repository.product_repository.ListFiltered"

	qb := r.sb.Select(productColumns...).From(productTable)

	if filter.Material != "" {
		qb = qb.Where(sq.Eq{"material": filter.Material})
	}
	if filter.ProductType != "" {
		qb = qb.Where(sq.Eq{"product_type": filter.ProductType})
	}

	switch filter.Sort {
	case models.SortPriceDesc:
		qb = qb.OrderBy("price DESC", "id ASC")
	default:
		qb = qb.OrderBy("price ASC", "id ASC")
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	return r.queryProducts(ctx, op, query, args)
}

// DistinctValues возвращает все различные непустые значения поля фильтра.
// Имя колонки берется только из перечисления, не из пользовательского ввода.
func (r *ProductRepo) DistinctValues(ctx context.Context, field models.FilterField) ([]string, error) {
	const op = "repository.product_repository.DistinctValues"

	var column string
	switch field {
	case models.FilterMaterial:
		column = "material"
	case models.FilterProductType:
		column = "product_type"
	default:
		return nil, fmt.Errorf("%s: %q: %w", op, field, storage.ErrUnknownFilterField)
	}

	query, args, err := r.sb.Select("DISTINCT " + column).
		From(productTable).
		Where(sq.NotEq{column: ""}).
		OrderBy(column).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("%s: row scanning failed: %w", op, err)
		}
		values = append(values, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", op, err)
	}

	return values, nil
}

// UpdateProduct заменяет изменяемые поля товара. Несуществующий id — no-op,
// существование проверяет вызывающий через GetProduct.
func (r *ProductRepo) UpdateProduct(ctx context.Context, id int64, product models.Product) error {
	const op = "repository.product_repository.UpdateProduct"

	query, args, err := r.sb.Update(productTable).
		Set("title", product.Title).
		Set("description", product.Description).
		Set("price", product.Price).
		Set("material", product.Material).
		Set("product_type", product.ProductType).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *ProductRepo) UpdateMainImage(ctx context.Context, id int64, filename string) error {
	const op = "repository.product_repository.UpdateMainImage"

	query, args, err := r.sb.Update(productTable).
		Set("image", filename).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteProduct удаляет только строку товара. Каскад по галерее выполняет
// слой сервисов до этого вызова.
func (r *ProductRepo) DeleteProduct(ctx context.Context, id int64) error {
	const op = "repository.product_repository.DeleteProduct"

	query, args, err := r.sb.Delete(productTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *ProductRepo) queryProducts(ctx context.Context, op, query string, args []interface{}) ([]models.Product, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Description,
			&p.Price,
			&p.Image,
			&p.Material,
			&p.ProductType,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: row scanning failed: %w", op, err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", op, err)
	}

	return products, nil
}
