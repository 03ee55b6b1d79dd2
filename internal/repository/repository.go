package repository

import (
	"github.com/jackc/pgx/v4/pgxpool"
)

type Repository struct {
	db      *pgxpool.Pool
	Product ProductRepository
	Image   ImageRepository
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		db:      db,
		Product: NewProductRepository(db),
		Image:   NewImageRepository(db),
	}
}

func (r *Repository) Close() {
	r.db.Close()
}
