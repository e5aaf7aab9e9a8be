package api

import (
	v1 "github.com/currybox/currybox/internal/api/v1"
	"github.com/currybox/currybox/internal/config"
	"github.com/currybox/currybox/internal/logger"
	"github.com/currybox/currybox/internal/rest/middleware"
	"github.com/currybox/currybox/internal/types"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers bundles the route handlers for injection
type Handlers struct {
	Health   *v1.HealthHandler
	Catalog  *v1.CatalogHandler
	Builder  *v1.BuilderHandler
	Cart     *v1.CartHandler
	Checkout *v1.CheckoutHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestContext())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.Health.Health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	root := router.Group("/v1")

	catalog := root.Group("/catalog")
	{
		catalog.GET("", handlers.Catalog.Get)
		catalog.GET("/items/:category", handlers.Catalog.GetItems)
	}

	builder := root.Group("/builder")
	{
		builder.GET("", handlers.Builder.Get)
		builder.POST("/start", handlers.Builder.Start)
		builder.POST("/steps/go", handlers.Builder.GoToStep)
		builder.POST("/steps/next", handlers.Builder.NextStep)
		builder.POST("/steps/prev", handlers.Builder.PrevStep)
		builder.POST("/items/increment", handlers.Builder.IncrementItem)
		builder.POST("/items/decrement", handlers.Builder.DecrementItem)
		builder.POST("/curries/add", handlers.Builder.AddCurry)
		builder.POST("/curries/remove", handlers.Builder.RemoveCurry)
		builder.POST("/curries/increment", handlers.Builder.IncrementCurry)
		builder.POST("/curries/decrement", handlers.Builder.DecrementCurry)
		builder.PUT("/curries/spice", handlers.Builder.UpdateCurrySpice)
		builder.PUT("/notes", handlers.Builder.SetNotes)
		builder.POST("/skip-bunny-builder", handlers.Builder.SkipBunnyBuilder)
		builder.POST("/reset", handlers.Builder.Reset)
		builder.POST("/add-to-cart", handlers.Builder.AddToCart)
	}

	cart := root.Group("/cart")
	{
		cart.GET("", handlers.Cart.Get)
		cart.POST("/items", handlers.Cart.AddItem)
		cart.PUT("/items/:id", handlers.Cart.UpdateQuantity)
		cart.DELETE("/items/:id", handlers.Cart.RemoveItem)
		cart.POST("/clear", handlers.Cart.Clear)
		cart.POST("/promo", handlers.Cart.ApplyPromo)
		cart.DELETE("/promo", handlers.Cart.RemovePromo)
		cart.POST("/sync", handlers.Cart.Sync)
	}

	checkout := root.Group("/checkout")
	{
		checkout.GET("", handlers.Checkout.Get)
		checkout.PUT("", handlers.Checkout.Update)
		checkout.POST("/reset", handlers.Checkout.Reset)
		checkout.POST("/order", handlers.Checkout.PlaceOrder)
	}

	return router
}
