package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/config"
	custommw "storefront/internal/middleware"
	httprouters "storefront/internal/transport/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	log       *slog.Logger
	e         *echo.Echo
	routers   *httprouters.Routers
	host      string
	port      string
	uploadDir string
	uploadURL string
}

func New(log *slog.Logger, cfg *config.Config, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}

	e.Use(session.Middleware(sessions.NewCookieStore([]byte(cfg.Session.Secret))))

	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(custommw.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	return &Server{
		log:       log,
		e:         e,
		routers:   routers,
		host:      cfg.HTTP.Host,
		port:      cfg.HTTP.Port,
		uploadDir: cfg.FileStorage.BaseDir,
		uploadURL: cfg.FileStorage.BaseURL,
	}
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(fmt.Sprintf("%s:%s", s.host, s.port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", op, "http server")

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

// adminOnlyMiddleware пропускает только запросы с валидным админским
// токеном в сессии; остальные уводятся на логин. Публичные чтения этим
// не гейтятся.
func (s *Server) adminOnlyMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := session.Get("session", c)
		if err != nil {
			return c.Redirect(http.StatusSeeOther, "/api/v1/login")
		}

		token, ok := sess.Values["admin_token"].(string)
		if !ok || token == "" {
			return c.Redirect(http.StatusSeeOther, "/api/v1/login")
		}

		adminSession, err := s.routers.AuthService.Authorize(token)
		if err != nil || !adminSession.IsAdmin {
			return c.Redirect(http.StatusSeeOther, "/api/v1/login")
		}

		return next(c)
	}
}

func (s *Server) BuildRouters() {
	s.e.Static(s.uploadURL, s.uploadDir)
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.e.Group("/api/v1")
	{
		api.GET("/products", s.routers.ListProducts)
		api.GET("/products/:id", s.routers.GetProduct)

		api.GET("/login", s.routers.LoginHint)
		api.POST("/login", s.routers.Login)
		api.POST("/logout", s.routers.Logout)

		adminGroup := api.Group("/admin", s.adminOnlyMiddleware)
		{
			adminGroup.POST("/products", s.routers.CreateProduct)
			adminGroup.POST("/products/:id", s.routers.UpdateProduct)
			adminGroup.DELETE("/products/:id", s.routers.DeleteProduct)
		}
	}
}
