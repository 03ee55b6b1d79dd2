package dto

import (
	"mime/multipart"

	"storefront/internal/domain/models"
)

// ProductCreateInput — поля формы создания товара. Файлы берутся из
// multipart-формы, пустой выбор файла не является ошибкой.
type ProductCreateInput struct {
	Title       string  `form:"title" json:"title" validate:"required"`
	Description string  `form:"description" json:"description"`
	Price       float64 `form:"price" json:"price"`
	Material    string  `form:"material" json:"material"`
	ProductType string  `form:"product_type" json:"product_type"`

	Image       *multipart.FileHeader   `form:"-" json:"-"`
	ExtraImages []*multipart.FileHeader `form:"-" json:"-"`
}

// ProductUpdateInput дополняет форму создания списком имен файлов галереи
// на удаление
type ProductUpdateInput struct {
	Title       string  `form:"title" json:"title" validate:"required"`
	Description string  `form:"description" json:"description"`
	Price       float64 `form:"price" json:"price"`
	Material    string  `form:"material" json:"material"`
	ProductType string  `form:"product_type" json:"product_type"`

	Image        *multipart.FileHeader   `form:"-" json:"-"`
	ExtraImages  []*multipart.FileHeader `form:"-" json:"-"`
	DeleteImages []string                `form:"delete_images" json:"delete_images"`
}

type ProductListQuery struct {
	Material    string `query:"material"`
	ProductType string `query:"product_type"`
	Sort        string `query:"sort" validate:"omitempty,oneof=asc desc"`
}

func (q ProductListQuery) ToFilter() models.ProductFilter {
	sort := models.SortPriceAsc
	if q.Sort == string(models.SortPriceDesc) {
		sort = models.SortPriceDesc
	}

	return models.ProductFilter{
		Material:    q.Material,
		ProductType: q.ProductType,
		Sort:        sort,
	}
}

// ProductListing — ответ публичной выдачи: товары плюс наборы значений
// для контролов фильтра
type ProductListing struct {
	Products     []models.Product `json:"products"`
	Materials    []string         `json:"materials"`
	ProductTypes []string         `json:"product_types"`
}

// ProductDetail — товар и его картинки; главная первой, затем галерея
type ProductDetail struct {
	Product models.Product `json:"product"`
	Images  []string       `json:"images"`
}
