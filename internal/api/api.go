package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/showyourheart/data-api/internal/api/controller"
	"github.com/showyourheart/data-api/internal/pkg/cache"
	"github.com/showyourheart/data-api/internal/pkg/logger"
	"github.com/showyourheart/data-api/internal/pkg/store"
	"github.com/showyourheart/data-api/internal/service/answers"
	"github.com/showyourheart/data-api/internal/service/export"
)

type APIService struct {
	router         *echo.Echo
	answersService *answers.Service
	exportService  *export.Service
}

func (svc *APIService) Serve(addr string) {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(context.Background(), err)
	}
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func NewAPIService(store store.Store, responseCache *cache.Cache) (*APIService, error) {
	svc := &APIService{router: echo.New()}

	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.JSONSerializer = NewSerializer()
	svc.router.Logger.SetLevel(log.INFO)
	svc.router.HideBanner = true
	svc.router.Use(middleware.Logger())
	svc.router.Use(middleware.Recover())
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	svc.answersService = answers.NewService(store, responseCache)
	svc.exportService = export.NewService(store)

	cntrl := controller.NewController(svc.answersService, svc.exportService)

	svc.router.GET("/healthz", cntrl.Health)

	api := svc.router.Group("/api/v1")

	answersGroup := api.Group("/answers")
	answersGroup.GET("", cntrl.GetAnswers)
	answersGroup.GET("/export", cntrl.ExportAnswers)

	return svc, nil
}
