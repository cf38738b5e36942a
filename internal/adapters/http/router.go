package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storehaus/orders-api/internal/adapters/config"
	"github.com/storehaus/orders-api/internal/adapters/http/controllers"
	"github.com/storehaus/orders-api/internal/adapters/http/middleware"
)

type Router struct {
	healthController    *controllers.HealthController
	orderController     *controllers.OrderController
	productController   *controllers.ProductController
	analyticsController *controllers.AnalyticsController
	rateLimiter         middleware.RateLimiter
}

func NewRouter(
	healthController *controllers.HealthController,
	orderController *controllers.OrderController,
	productController *controllers.ProductController,
	analyticsController *controllers.AnalyticsController,
	rateLimiter middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:    healthController,
		orderController:     orderController,
		productController:   productController,
		analyticsController: analyticsController,
		rateLimiter:         rateLimiter,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	rl := r.rateLimiter

	router.Use(middleware.LogRequest())
	router.GET("/", controllers.Index)
	router.GET("/health", r.healthController.Health)

	router.GET("/products", r.productController.GetAll)
	router.GET("/products/:id", r.productController.GetByID)
	router.POST("/products", r.productController.CreateProduct)

	router.POST("/orders", middleware.RateLimit(rl, 15, 1*time.Minute), r.orderController.CreateOrder)
	router.GET("/orders", r.orderController.GetAll)
	router.GET("/orders/:orderId", r.orderController.GetOrderByID)
	router.DELETE("/orders/:orderId", middleware.RateLimit(rl, 20, 1*time.Minute), r.orderController.CancelOrder)
	router.PATCH("/orders/change-status/:orderId", middleware.RateLimit(rl, 20, 1*time.Minute), r.orderController.UpdateOrderStatus)

	router.GET("/analytics/allorders", r.analyticsController.AllOrders)
	router.GET("/analytics/cancelled-orders", r.analyticsController.CancelledOrders)
	router.GET("/analytics/shipped", r.analyticsController.ShippedOrders)
	router.GET("/analytics/total-revenue/:productId", r.analyticsController.ProductRevenue)
	router.GET("/analytics/alltotalrevenue", r.analyticsController.OverallRevenue)
}

func (r *Router) ListenAndServe(ctx context.Context, config config.HTTPConfig) error {
	engine := gin.Default()
	r.SetupRoutes(engine)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", config.BindInterface, config.Port),
		Handler: engine,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
