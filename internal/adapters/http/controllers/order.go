package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storehaus/orders-api/internal/adapters/http/handlers"
	"github.com/storehaus/orders-api/internal/core/domain"
	"github.com/storehaus/orders-api/internal/core/dto"
	"github.com/storehaus/orders-api/internal/core/service"
	"github.com/storehaus/orders-api/internal/core/serviceerrors"
)

type OrderController struct {
	orderService *service.OrderService
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type OrderResponse struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"productId"`
	Quantity    int    `json:"quantity"`
	TotalAmount int64  `json:"totalAmount"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

type OrderListResponse struct {
	Count  int             `json:"count"`
	Orders []OrderResponse `json:"orders"`
}

type OrderDetailResponse struct {
	Order OrderResponse `json:"order"`
}

type OrderMutationResponse struct {
	Message string        `json:"message"`
	Order   OrderResponse `json:"order"`
}

func NewOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:          int64(order.ID),
		ProductID:   int64(order.ProductID),
		Quantity:    order.Quantity,
		TotalAmount: int64(order.TotalAmount),
		Status:      string(order.Status),
		CreatedAt:   order.PlacedDate(),
	}
}

func NewOrderListResponse(orders []*domain.Order) OrderListResponse {
	response := make([]OrderResponse, len(orders))
	for i, order := range orders {
		response[i] = NewOrderResponse(order)
	}
	return OrderListResponse{Count: len(orders), Orders: response}
}

func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// CreateOrder godoc
// @Summary     Create an order
// @Description Places a new order, deducting product stock. Supports idempotent retries.
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key header   string                 false "Idempotency key"
// @Param       request         body     dto.CreateOrderRequest  true  "Order data"
// @Success     201             {object} OrderMutationResponse
// @Failure     400             {object} handlers.ErrorResponse
// @Failure     404             {object} handlers.ErrorResponse
// @Failure     409             {object} handlers.ErrorResponse
// @Failure     429             {object} handlers.ErrorResponse
// @Failure     500             {object} handlers.ErrorResponse
// @Router      /orders [post]
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var request dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError("productId and quantity are required"))
		return
	}
	idempotencyKey := c.GetHeader("Idempotency-Key")
	order, err := oc.orderService.CreateOrder(c.Request.Context(), idempotencyKey, &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, OrderMutationResponse{
		Message: "Order created successfully",
		Order:   NewOrderResponse(order),
	})
}

// GetAll godoc
// @Summary     List all orders
// @Description Returns every order regardless of status
// @Tags        orders
// @Produce     json
// @Success     200 {object} OrderListResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /orders [get]
func (oc *OrderController) GetAll(c *gin.Context) {
	orders, err := oc.orderService.ListOrders(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewOrderListResponse(orders))
}

// GetOrderByID godoc
// @Summary     Get order by ID
// @Description Returns a single order by its ID
// @Tags        orders
// @Produce     json
// @Param       orderId path     int true "Order ID"
// @Success     200     {object} OrderDetailResponse
// @Failure     404     {object} handlers.ErrorResponse
// @Failure     500     {object} handlers.ErrorResponse
// @Router      /orders/{orderId} [get]
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	orderID, ok := domain.ParseID(c.Param("orderId"))
	if !ok {
		handlers.HandleError(c, serviceerrors.NewNotFoundError("Order not found"))
		return
	}
	order, err := oc.orderService.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			handlers.HandleError(c, serviceerrors.NewNotFoundError("Order not found"))
			return
		}
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, OrderDetailResponse{Order: NewOrderResponse(order)})
}

// CancelOrder godoc
// @Summary     Cancel an order
// @Description Cancels an order placed the same day and restores product stock
// @Tags        orders
// @Produce     json
// @Param       orderId path     int true "Order ID"
// @Success     200     {object} OrderMutationResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     404     {object} handlers.ErrorResponse
// @Failure     500     {object} handlers.ErrorResponse
// @Router      /orders/{orderId} [delete]
func (oc *OrderController) CancelOrder(c *gin.Context) {
	orderID, ok := domain.ParseID(c.Param("orderId"))
	if !ok {
		handlers.HandleError(c, serviceerrors.NewNotFoundError("Order not found"))
		return
	}
	order, err := oc.orderService.CancelOrder(c.Request.Context(), orderID)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, OrderMutationResponse{
		Message: "Order cancelled successfully",
		Order:   NewOrderResponse(order),
	})
}

// UpdateOrderStatus godoc
// @Summary     Update order status
// @Description Advances an order one step along placed -> shipped -> delivered
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       orderId path     int                 true "Order ID"
// @Param       request body     UpdateStatusRequest true "New status"
// @Success     200     {object} OrderMutationResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     404     {object} handlers.ErrorResponse
// @Failure     429     {object} handlers.ErrorResponse
// @Failure     500     {object} handlers.ErrorResponse
// @Router      /orders/change-status/{orderId} [patch]
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := domain.ParseID(c.Param("orderId"))
	if !ok {
		handlers.HandleError(c, serviceerrors.NewNotFoundError("Order not found"))
		return
	}
	var request UpdateStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError("Status is required"))
		return
	}
	order, err := oc.orderService.AdvanceStatus(c.Request.Context(), orderID, domain.OrderStatus(request.Status))
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, OrderMutationResponse{
		Message: "Order status updated successfully",
		Order:   NewOrderResponse(order),
	})
}
