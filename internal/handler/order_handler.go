package handler

import (
	"net/http"

	"github.com/projectblurimedia/Veggie-Tracker/internal/service"
	"github.com/projectblurimedia/Veggie-Tracker/pkg/pagination"
	"github.com/projectblurimedia/Veggie-Tracker/pkg/response"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes binds the order endpoints to an authenticated group
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/orders")
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/stats", h.GetStats)
		orders.GET("/date-range", h.ListByDateRange)
		orders.GET("/customer/:customerId", h.ListByCustomer)
		orders.GET("/customer/:customerId/date/:date", h.ListByCustomerAndDate)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id", h.UpdateOrder)
		orders.DELETE("/:id", h.DeleteOrder)
		orders.POST("/:id/payment", h.AddPayment)
	}
}

// CreateOrder handles POST /orders
// @Summary      Create an order
// @Description  Totals, balance and payment status are derived from the items and totalPaid
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateOrderRequest  true  "Order"
// @Success      201      {object}  response.Response{data=service.OrderResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.SuccessWithMessage(http.StatusCreated, "Order created successfully", order))
}

// ListOrders handles GET /orders
// @Summary      List orders, newest first
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  response.Response{data=[]service.OrderResponse}
// @Router       /api/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	p := pagination.Parse(c)

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, orders, p, total))
}

// GetStats handles GET /orders/stats
// @Summary      Order dashboard figures
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=model.OrderDashboard}
// @Router       /api/orders/stats [get]
func (h *OrderHandler) GetStats(c *gin.Context) {
	stats, err := h.orderService.GetDashboard(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// ListByDateRange handles GET /orders/date-range
// @Summary      List orders in an inclusive date range
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        startDate  query     string  true  "YYYY-MM-DD or RFC 3339"
// @Param        endDate    query     string  true  "YYYY-MM-DD or RFC 3339"
// @Success      200        {object}  response.Response{data=[]service.OrderResponse}
// @Failure      400        {object}  response.Response
// @Router       /api/orders/date-range [get]
func (h *OrderHandler) ListByDateRange(c *gin.Context) {
	orders, err := h.orderService.ListOrdersByDateRange(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, orders))
}

// ListByCustomer handles GET /orders/customer/:customerId
// @Summary      List the orders of a customer by unique ID
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        customerId  path      string  true  "Customer unique ID"
// @Success      200         {object}  response.Response{data=[]service.OrderResponse}
// @Router       /api/orders/customer/{customerId} [get]
func (h *OrderHandler) ListByCustomer(c *gin.Context) {
	orders, err := h.orderService.ListOrdersByCustomer(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, orders))
}

// ListByCustomerAndDate handles GET /orders/customer/:customerId/date/:date
// @Summary      List a customer's orders on one day
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        customerId  path      string  true  "Customer unique ID"
// @Param        date        path      string  true  "YYYY-MM-DD"
// @Success      200         {object}  response.Response{data=[]service.OrderResponse}
// @Failure      400         {object}  response.Response
// @Router       /api/orders/customer/{customerId}/date/{date} [get]
func (h *OrderHandler) ListByCustomerAndDate(c *gin.Context) {
	orders, err := h.orderService.ListOrdersByCustomerAndDate(c.Request.Context(), c.Param("customerId"), c.Param("date"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, orders))
}

// GetOrder handles GET /orders/:id
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response{data=service.OrderResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// UpdateOrder handles PUT /orders/:id
// @Summary      Update an order
// @Description  Items, when present, replace the whole item list
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                      true  "Order ID"
// @Param        payload  body      service.UpdateOrderRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=service.OrderResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var req service.UpdateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithMessage(http.StatusOK, "Order updated successfully", order))
}

// DeleteOrder handles DELETE /orders/:id
// @Summary      Delete an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.orderService.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithMessage(http.StatusOK, "Order deleted successfully", nil))
}

// AddPayment handles POST /orders/:id/payment
// @Summary      Record a payment against an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                  true  "Order ID"
// @Param        payload  body      service.PaymentRequest  true  "Payment"
// @Success      200      {object}  response.Response{data=service.OrderResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/orders/{id}/payment [post]
func (h *OrderHandler) AddPayment(c *gin.Context) {
	var req service.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.AddPayment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithMessage(http.StatusOK, "Payment added successfully", order))
}
