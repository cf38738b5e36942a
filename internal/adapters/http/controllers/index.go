package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Index godoc
// @Summary     API index
// @Description Lists the available endpoints
// @Tags        index
// @Produce     json
// @Success     200 {object} map[string]interface{}
// @Router      / [get]
func Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "E-commerce Orders & Analytics API",
		"endpoints": gin.H{
			"orders": gin.H{
				"create":       "POST /orders",
				"getAll":       "GET /orders",
				"cancel":       "DELETE /orders/:orderId",
				"changeStatus": "PATCH /orders/change-status/:orderId",
			},
			"analytics": gin.H{
				"allOrders":       "GET /analytics/allorders",
				"cancelledOrders": "GET /analytics/cancelled-orders",
				"shippedOrders":   "GET /analytics/shipped",
				"totalRevenue":    "GET /analytics/total-revenue/:productId",
				"overallRevenue":  "GET /analytics/alltotalrevenue",
			},
		},
	})
}
