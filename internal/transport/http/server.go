package http

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"storefront/internal/domain/models"
	"storefront/internal/lib/logger/sl"
	"storefront/internal/services/auth"
	"storefront/internal/storage"
	"storefront/internal/transport/http/dto"
	"storefront/internal/transport/http/dto/request"
	"storefront/internal/transport/http/dto/response"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const sessionTokenKey = "admin_token"

type CatalogService interface {
	ListFiltered(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	FilterOptions(ctx context.Context) (materials []string, productTypes []string, err error)
	ProductDetail(ctx context.Context, id int64) (dto.ProductDetail, error)
}

type ProductService interface {
	Create(ctx context.Context, input dto.ProductCreateInput) (int64, error)
	Update(ctx context.Context, id int64, input dto.ProductUpdateInput) error
	Delete(ctx context.Context, id int64) error
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Authorize(token string) (models.Session, error)
}

type Routers struct {
	log            *slog.Logger
	CatalogService CatalogService
	ProductService ProductService
	AuthService    AuthService
}

func NewRouter(log *slog.Logger, catalogService CatalogService, productService ProductService, authService AuthService) *Routers {
	return &Routers{
		log:            log,
		CatalogService: catalogService,
		ProductService: productService,
		AuthService:    authService,
	}
}

// ListProducts — публичная выдача: ?material=&product_type=&sort=asc|desc.
// Вместе с товарами отдаются оба набора значений для контролов фильтра.
func (r *Routers) ListProducts(c echo.Context) error {
	const op = "http.routers.ListProducts"

	log := r.log.With(
		slog.String("op", op),
	)

	var q dto.ProductListQuery

	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(q); err != nil {
		resp := response.ErrInvalidRequestFormat
		resp.Details = err.Error()
		return c.JSON(http.StatusBadRequest, resp)
	}

	products, err := r.CatalogService.ListFiltered(c.Request().Context(), q.ToFilter())
	if err != nil {
		log.Error("listing failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to list products"))
	}

	materials, productTypes, err := r.CatalogService.FilterOptions(c.Request().Context())
	if err != nil {
		log.Error("filter options failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to load filter options"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.ProductListing{
		Products:     products,
		Materials:    materials,
		ProductTypes: productTypes,
	}))
}

// GetProduct — карточка товара с картинками, главная первой
func (r *Routers) GetProduct(c echo.Context) error {
	const op = "http.routers.GetProduct"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	detail, err := r.CatalogService.ProductDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrProductNotFound)
		}

		log.Error("detail failed", slog.Int64("product_id", id), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to load product"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(detail))
}

// Login устанавливает админскую сессию по преднастроенной учетке
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.LoginRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		resp := response.ErrInvalidRequestFormat
		resp.Details = err.Error()
		log.Warn("invalid login request", slog.String("username", req.Username))
		return c.JSON(http.StatusBadRequest, resp)
	}

	token, err := r.AuthService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
		}

		log.Error("login failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "login failed"))
	}

	sess, err := session.Get("session", c)
	if err != nil {
		log.Error("session unavailable", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "session unavailable"))
	}

	sess.Values[sessionTokenKey] = token
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		log.Error("failed to save session", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "session unavailable"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]bool{"is_admin": true}))
}

// Logout снимает админский флаг сессии
func (r *Routers) Logout(c echo.Context) error {
	sess, err := session.Get("session", c)
	if err == nil {
		delete(sess.Values, sessionTokenKey)
		_ = sess.Save(c.Request(), c.Response())
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]bool{"is_admin": false}))
}

// LoginHint — цель редиректа для неавторизованных мутаций
func (r *Routers) LoginHint(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationRequired)
}

// CreateProduct принимает multipart-форму: скалярные поля, файл image и
// файлы extra_images
func (r *Routers) CreateProduct(c echo.Context) error {
	const op = "http.routers.CreateProduct"

	log := r.log.With(
		slog.String("op", op),
	)

	var input dto.ProductCreateInput

	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(input); err != nil {
		resp := response.ErrInvalidRequestFormat
		resp.Details = err.Error()
		return c.JSON(http.StatusBadRequest, resp)
	}

	input.Image, input.ExtraImages = formFiles(c)

	id, err := r.ProductService.Create(c.Request().Context(), input)
	if err != nil {
		log.Error("create failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to create product"))
	}

	log.Info("product created", slog.Int64("product_id", id))

	return c.JSON(http.StatusCreated, response.SuccessResponse(map[string]int64{"product_id": id}))
}

// UpdateProduct — та же форма, плюс delete_images со списком имен файлов
// галереи на удаление
func (r *Routers) UpdateProduct(c echo.Context) error {
	const op = "http.routers.UpdateProduct"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	var input dto.ProductUpdateInput

	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(input); err != nil {
		resp := response.ErrInvalidRequestFormat
		resp.Details = err.Error()
		return c.JSON(http.StatusBadRequest, resp)
	}

	input.Image, input.ExtraImages = formFiles(c)

	if err := r.ProductService.Update(c.Request().Context(), id, input); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrProductNotFound)
		}

		log.Error("update failed", slog.Int64("product_id", id), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to update product"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]int64{"product_id": id}))
}

func (r *Routers) DeleteProduct(c echo.Context) error {
	const op = "http.routers.DeleteProduct"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := r.ProductService.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrProductNotFound)
		}

		log.Error("delete failed", slog.Int64("product_id", id), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to delete product"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]int64{"product_id": id}))
}

// formFiles достает из multipart-формы главную картинку и файлы галереи.
// Отсутствие файлов — обычный случай, не ошибка.
func formFiles(c echo.Context) (*multipart.FileHeader, []*multipart.FileHeader) {
	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return image, nil
	}

	return image, form.File["extra_images"]
}
