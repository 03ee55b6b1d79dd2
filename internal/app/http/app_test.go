package httpapp

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"storefront/internal/config"
	"storefront/internal/domain/models"
	"storefront/internal/services/auth"
	httprouters "storefront/internal/transport/http"
	"storefront/internal/transport/http/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalogService struct{}

func (stubCatalogService) ListFiltered(context.Context, models.ProductFilter) ([]models.Product, error) {
	return []models.Product{}, nil
}

func (stubCatalogService) FilterOptions(context.Context) ([]string, []string, error) {
	return nil, nil, nil
}

func (stubCatalogService) ProductDetail(context.Context, int64) (dto.ProductDetail, error) {
	return dto.ProductDetail{}, nil
}

type stubProductService struct{}

func (stubProductService) Create(context.Context, dto.ProductCreateInput) (int64, error) {
	return 42, nil
}

func (stubProductService) Update(context.Context, int64, dto.ProductUpdateInput) error { return nil }
func (stubProductService) Delete(context.Context, int64) error                         { return nil }

// stubAuthService принимает единственный токен good-token
type stubAuthService struct{}

func (stubAuthService) Login(_ context.Context, username, password string) (string, error) {
	if username == "admin" && password == "password" {
		return "good-token", nil
	}
	return "", auth.ErrInvalidCredentials
}

func (stubAuthService) Authorize(token string) (models.Session, error) {
	if token == "good-token" {
		return models.Session{IsAdmin: true}, nil
	}
	return models.Session{}, auth.ErrUnauthorized
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	cfg := &config.Config{
		HTTP:        config.HTTPConfig{Host: "localhost", Port: "0"},
		FileStorage: config.FileStorageConfig{BaseDir: t.TempDir(), BaseURL: "/uploads"},
		Session:     config.SessionConfig{Secret: "test-secret"},
	}

	routers := httprouters.NewRouter(log, stubCatalogService{}, stubProductService{}, stubAuthService{})

	srv := New(log, cfg, routers)
	srv.BuildRouters()

	return srv
}

func TestAdminGate(t *testing.T) {
	srv := newTestServer(t)

	t.Run("mutation without session redirects to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/products", nil)
		rec := httptest.NewRecorder()

		srv.e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/api/v1/login", rec.Header().Get("Location"))
	})

	t.Run("delete without session redirects too", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/products/1", nil)
		rec := httptest.NewRecorder()

		srv.e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/api/v1/login", rec.Header().Get("Location"))
	})

	t.Run("redirect target explains itself", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/login", nil)
		rec := httptest.NewRecorder()

		srv.e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("public reads are not gated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		rec := httptest.NewRecorder()

		srv.e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("session from login opens the admin group", func(t *testing.T) {
		loginReq := httptest.NewRequest(http.MethodPost, "/api/v1/login",
			strings.NewReader(`{"username":"admin","password":"password"}`))
		loginReq.Header.Set("Content-Type", "application/json")
		loginRec := httptest.NewRecorder()

		srv.e.ServeHTTP(loginRec, loginReq)
		require.Equal(t, http.StatusOK, loginRec.Code)

		cookies := loginRec.Result().Cookies()
		require.NotEmpty(t, cookies)

		form := strings.NewReader("title=Vase&price=10")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/products", form)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		for _, cookie := range cookies {
			req.AddCookie(cookie)
		}
		rec := httptest.NewRecorder()

		srv.e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"product_id":42`)
	})

	t.Run("logout closes the admin group again", func(t *testing.T) {
		loginReq := httptest.NewRequest(http.MethodPost, "/api/v1/login",
			strings.NewReader(`{"username":"admin","password":"password"}`))
		loginReq.Header.Set("Content-Type", "application/json")
		loginRec := httptest.NewRecorder()

		srv.e.ServeHTTP(loginRec, loginReq)
		require.Equal(t, http.StatusOK, loginRec.Code)

		logoutReq := httptest.NewRequest(http.MethodPost, "/api/v1/logout", nil)
		for _, cookie := range loginRec.Result().Cookies() {
			logoutReq.AddCookie(cookie)
		}
		logoutRec := httptest.NewRecorder()

		srv.e.ServeHTTP(logoutRec, logoutReq)
		require.Equal(t, http.StatusOK, logoutRec.Code)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/products/1", nil)
		for _, cookie := range logoutRec.Result().Cookies() {
			req.AddCookie(cookie)
		}
		rec := httptest.NewRecorder()

		srv.e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})
}
