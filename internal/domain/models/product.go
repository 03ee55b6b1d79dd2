package models

import "time"

type SortOrder string

const (
	SortPriceAsc  SortOrder = "asc"
	SortPriceDesc SortOrder = "desc"
)

type FilterField string

const (
	FilterMaterial    FilterField = "material"
	FilterProductType FilterField = "product_type"
)

// Product представляет товар каталога. Пустая строка в Image, Material и
// ProductType означает "не задано".
type Product struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Price       float64   `db:"price" json:"price"`
	Image       string    `db:"image" json:"image,omitempty"`
	Material    string    `db:"material" json:"material,omitempty"`
	ProductType string    `db:"product_type" json:"product_type,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// GalleryImage представляет дополнительную картинку товара
type GalleryImage struct {
	ID        int64     `db:"id" json:"id"`
	ProductID int64     `db:"product_id" json:"product_id"`
	Filename  string    `db:"filename" json:"filename"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ProductFilter описывает критерии публичной выдачи: равенство по полям
// из закрытого набора, сортировка по цене.
type ProductFilter struct {
	Material    string
	ProductType string
	Sort        SortOrder
}
