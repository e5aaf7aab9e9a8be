package main

import (
	"context"
	"time"

	"github.com/currybox/currybox/internal/api"
	v1 "github.com/currybox/currybox/internal/api/v1"
	"github.com/currybox/currybox/internal/cache"
	"github.com/currybox/currybox/internal/config"
	"github.com/currybox/currybox/internal/httpclient"
	"github.com/currybox/currybox/internal/integration/orderapi"
	"github.com/currybox/currybox/internal/integration/payment"
	"github.com/currybox/currybox/internal/integration/promo"
	"github.com/currybox/currybox/internal/logger"
	"github.com/currybox/currybox/internal/reconciler"
	"github.com/currybox/currybox/internal/repository"
	gormstore "github.com/currybox/currybox/internal/repository/gorm"
	"github.com/currybox/currybox/internal/service"
	"github.com/currybox/currybox/internal/types"
	"github.com/currybox/currybox/internal/validator"
	validatorpkg "github.com/go-playground/validator/v10"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title CurryBox API
// @version 1.0
// @description Food box configurator and checkout service
// @BasePath /v1
// @schemes http https

func init() {
	// UTC everywhere
	time.Local = time.UTC
}

func main() {
	// optional; env vars beat the config file either way
	_ = godotenv.Load()

	app := fx.New(
		fx.Provide(
			validator.NewValidator,
			config.NewConfig,
			logger.NewLogger,
			cache.NewInMemoryCache,
			httpclient.NewDefaultClient,

			repository.NewGormClient,
			repository.NewRepositories,

			promo.NewClient,
			payment.NewClient,
			orderapi.NewClient,
			provideReconciler,

			service.NewSessionLocks,
			provideServiceParams,
			service.NewCatalogService,
			service.NewBuilderService,
			service.NewCartService,
			service.NewCheckoutService,

			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)
	app.Run()
}

func provideReconciler(
	repos repository.Repositories,
	orders orderapi.Client,
	log *logger.Logger,
) *reconciler.Reconciler {
	return reconciler.New(repos.PendingOrder, orders, log)
}

func provideServiceParams(
	log *logger.Logger,
	cfg *config.Configuration,
	c cache.Cache,
	locks *service.SessionLocks,
	repos repository.Repositories,
	promoClient promo.Client,
	paymentClient payment.Client,
	orderClient orderapi.Client,
	rec *reconciler.Reconciler,
) service.ServiceParams {
	return service.ServiceParams{
		Logger:           log,
		Config:           cfg,
		Cache:            c,
		Locks:            locks,
		CatalogRepo:      repos.Catalog,
		BuilderRepo:      repos.Builder,
		CartRepo:         repos.Cart,
		CheckoutRepo:     repos.Checkout,
		SavedCartRepo:    repos.SavedCart,
		PendingOrderRepo: repos.PendingOrder,
		PromoClient:      promoClient,
		PaymentClient:    paymentClient,
		OrderClient:      orderClient,
		Reconciler:       rec,
	}
}

func provideHandlers(
	log *logger.Logger,
	catalogService service.CatalogService,
	builderService service.BuilderService,
	cartService service.CartService,
	checkoutService service.CheckoutService,
) api.Handlers {
	return api.Handlers{
		Health:   v1.NewHealthHandler(),
		Catalog:  v1.NewCatalogHandler(catalogService, log),
		Builder:  v1.NewBuilderHandler(builderService, log),
		Cart:     v1.NewCartHandler(cartService, log),
		Checkout: v1.NewCheckoutHandler(checkoutService, log),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, log)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	rec *reconciler.Reconciler,
	db *gorm.DB,
	log *logger.Logger,
	// request validation is package global, constructing it here wires it up
	_ *validatorpkg.Validate,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal:
		// local runs migrate itself; deployed environments use cmd/migrate
		if err := gormstore.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		startAPIServer(lc, r, cfg, log)
		startReconciler(lc, rec, log)
	case types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	case types.ModeWorker:
		startReconciler(lc, rec, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}

func startReconciler(lc fx.Lifecycle, rec *reconciler.Reconciler, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("starting order reconciler")
			return rec.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return rec.Stop(ctx)
		},
	})
}
