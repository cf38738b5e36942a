package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storehaus/orders-api/internal/adapters/http/handlers"
	"github.com/storehaus/orders-api/internal/core/domain"
	"github.com/storehaus/orders-api/internal/core/service"
	"github.com/storehaus/orders-api/internal/core/serviceerrors"
)

type AnalyticsController struct {
	analyticsService *service.AnalyticsService
}

type ProductRevenueResponse struct {
	ProductID    int64  `json:"productId"`
	ProductName  string `json:"productName"`
	TotalRevenue int64  `json:"totalRevenue"`
	OrderCount   int    `json:"orderCount"`
}

type RevenueSummaryResponse struct {
	TotalRevenue int64 `json:"totalRevenue"`
	OrderCount   int   `json:"orderCount"`
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService}
}

// AllOrders godoc
// @Summary     All orders report
// @Description Returns every order with a total count
// @Tags        analytics
// @Produce     json
// @Success     200 {object} OrderListResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /analytics/allorders [get]
func (ac *AnalyticsController) AllOrders(c *gin.Context) {
	orders, err := ac.analyticsService.AllOrders(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewOrderListResponse(orders))
}

// CancelledOrders godoc
// @Summary     Cancelled orders report
// @Description Returns all cancelled orders with a total count
// @Tags        analytics
// @Produce     json
// @Success     200 {object} OrderListResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /analytics/cancelled-orders [get]
func (ac *AnalyticsController) CancelledOrders(c *gin.Context) {
	orders, err := ac.analyticsService.CancelledOrders(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewOrderListResponse(orders))
}

// ShippedOrders godoc
// @Summary     Shipped orders report
// @Description Returns all shipped orders with a total count
// @Tags        analytics
// @Produce     json
// @Success     200 {object} OrderListResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /analytics/shipped [get]
func (ac *AnalyticsController) ShippedOrders(c *gin.Context) {
	orders, err := ac.analyticsService.ShippedOrders(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewOrderListResponse(orders))
}

// ProductRevenue godoc
// @Summary     Revenue for a product
// @Description Returns revenue over the product's non-cancelled orders at the current price
// @Tags        analytics
// @Produce     json
// @Param       productId path     int true "Product ID"
// @Success     200       {object} ProductRevenueResponse
// @Failure     404       {object} handlers.ErrorResponse
// @Failure     500       {object} handlers.ErrorResponse
// @Router      /analytics/total-revenue/{productId} [get]
func (ac *AnalyticsController) ProductRevenue(c *gin.Context) {
	productID, ok := domain.ParseID(c.Param("productId"))
	if !ok {
		handlers.HandleError(c, serviceerrors.NewNotFoundError("Product not found"))
		return
	}
	revenue, err := ac.analyticsService.ProductRevenue(c.Request.Context(), productID)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ProductRevenueResponse{
		ProductID:    int64(revenue.ProductID),
		ProductName:  revenue.ProductName,
		TotalRevenue: int64(revenue.TotalRevenue),
		OrderCount:   revenue.OrderCount,
	})
}

// OverallRevenue godoc
// @Summary     Overall revenue
// @Description Returns total revenue over all non-cancelled orders at current prices
// @Tags        analytics
// @Produce     json
// @Success     200 {object} RevenueSummaryResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /analytics/alltotalrevenue [get]
func (ac *AnalyticsController) OverallRevenue(c *gin.Context) {
	summary, err := ac.analyticsService.OverallRevenue(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, RevenueSummaryResponse{
		TotalRevenue: int64(summary.TotalRevenue),
		OrderCount:   summary.OrderCount,
	})
}
