package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	appmiddleware "photo_stories/internal/middleware"
	httprouters "photo_stories/internal/transport/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	host    string
	port    string
}

func New(log *slog.Logger, sessionSecret, host, port string, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}

	e.Use(session.Middleware(sessions.NewCookieStore([]byte(sessionSecret))))

	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(appmiddleware.PrometheusMetrics)

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
		log:     log,
		e:       e,
		routers: routers,
		host:    host,
		port:    port,
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

	if err := s.e.Start(fmt.Sprintf(":%s", s.port)); err != nil && err != http.ErrServerClosed {
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

func (s *Server) BuildRouters() {
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	swagger := s.e.Group("/swag")
	{
		swagger.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	api := s.e.Group("/api/v1")
	{
		api.GET("/settings", s.routers.GetSettings)
		api.PUT("/settings", s.routers.UpdateSettings)

		api.GET("/passphrase/suggest", s.routers.SuggestPassphrase)

		galleries := api.Group("/galleries")
		{
			galleries.GET("", s.routers.ListGalleries)
			galleries.POST("", s.routers.CreateGallery)
			galleries.GET("/:id", s.routers.GetGallery)
			galleries.DELETE("/:id", s.routers.DeleteGallery)
			galleries.PATCH("/:id/archive", s.routers.ArchiveGallery)
			galleries.PATCH("/:id/restore", s.routers.RestoreGallery)

			galleries.POST("/:id/verify", s.routers.VerifyAccess)
			galleries.DELETE("/:id/verify", s.routers.RevokeAccess)

			draft := galleries.Group("/:id/draft")
			{
				draft.POST("", s.routers.OpenDraft)
				draft.PATCH("", s.routers.UpdateDraft)
				draft.POST("/save", s.routers.SaveDraft)
				draft.POST("/discard", s.routers.DiscardDraft)
				draft.POST("/reorder", s.routers.ReorderPhoto)
				draft.POST("/photos", s.routers.UploadPhotos)
				draft.DELETE("/photos/:photo_id", s.routers.DeletePhoto)
				draft.POST("/photos/:photo_id/move", s.routers.MovePhoto)
			}
		}
	}
}
