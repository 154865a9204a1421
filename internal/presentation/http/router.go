package httppresentation

import (
	"net/http"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/admin"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/auth"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/cart"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/catalog"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/identity"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/interest"
	apporder "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/order"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/observability"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Auth           *auth.Service
	Catalog        *catalog.Service
	Cart           *cart.Service
	Orders         *apporder.Service
	Interests      *interest.Service
	Admin          *admin.Service
	Resolver       *identity.Resolver
	Metrics        *observability.Metrics
	Logger         *zap.Logger
	MetricsHandler http.Handler
}

// NewRouter classifies every route into one of three tiers: public,
// authenticated, or privileged. The identity middleware runs ahead of the
// gate, so a classification miss short-circuits before any business logic.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(HTTPMetrics(deps.Metrics))
	}
	r.Use(cors())
	r.Use(Identity(deps.Resolver))

	authHandler := NewAuthHandler(deps.Auth)
	catalogHandler := NewCatalogHandler(deps.Catalog)
	cartHandler := NewCartHandler(deps.Cart)
	orderHandler := NewOrderHandler(deps.Orders)
	interestHandler := NewInterestHandler(deps.Interests)
	adminHandler := NewAdminHandler(deps.Admin)

	// Public tier.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	if deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	api := r.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/products", catalogHandler.List)
	api.GET("/products/search", catalogHandler.Search)
	api.GET("/products/:id", catalogHandler.Get)
	api.GET("/products/category/:category", catalogHandler.ListByCategory)
	api.GET("/categories", catalogHandler.Categories)

	// Authenticated tier.
	authed := api.Group("")
	authed.Use(RequireAuthenticated())
	authed.GET("/cart", cartHandler.Get)
	authed.POST("/cart", cartHandler.Add)
	authed.PUT("/cart", cartHandler.Update)
	authed.DELETE("/cart/clear", cartHandler.Clear)
	authed.DELETE("/cart/:productId", cartHandler.Remove)
	authed.POST("/orders", orderHandler.Create)
	authed.GET("/orders/:id", orderHandler.Get)
	authed.GET("/orders/user/:userId", orderHandler.ListByUser)
	authed.POST("/interests/:productId", interestHandler.Track)
	authed.GET("/interests/recommended", interestHandler.Recommended)

	// Privileged tier.
	privileged := api.Group("")
	privileged.Use(RequireAdmin())
	privileged.GET("/orders", orderHandler.ListAll)
	privileged.GET("/admin/stats", adminHandler.Stats)
	privileged.GET("/admin/sales-by-category", adminHandler.SalesByCategory)
	privileged.GET("/admin/top-products", adminHandler.TopProducts)
	privileged.GET("/admin/sales-by-payment", adminHandler.SalesByPayment)

	return r
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers",
			"Content-Type, Authorization, X-User-Id, X-Demo-Mode, X-Demo-User")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
