package handler

import (
	"net/http"

	"github.com/projectblurimedia/Veggie-Tracker/internal/service"
	"github.com/projectblurimedia/Veggie-Tracker/pkg/response"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerService service.CustomerService
}

func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// RegisterRoutes binds the customer endpoints to an authenticated group
func (h *CustomerHandler) RegisterRoutes(router *gin.RouterGroup) {
	customers := router.Group("/customers")
	{
		customers.POST("", h.CreateCustomer)
		customers.GET("", h.ListCustomers)
		customers.GET("/search", h.SearchCustomers)
		customers.GET("/status/:status", h.ListCustomersByStatus)
		customers.GET("/:id", h.GetCustomer)
		customers.GET("/:id/orders", h.ListCustomerOrders)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)
	}
}

// CreateCustomer handles POST /customers
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateCustomerRequest  true  "Customer"
// @Success      201      {object}  response.Response{data=model.Customer}
// @Failure      400      {object}  response.Response
// @Router       /api/customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req service.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.SuccessWithMessage(http.StatusCreated, "Customer created successfully", customer))
}

// ListCustomers handles GET /customers
// @Summary      List customers with their balances
// @Description  Every customer with order totals and payment summary, newest first, plus totals over all customers
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]repository.CustomerWithSummary,stats=ledger.CustomerStats}
// @Router       /api/customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	res, err := h.customerService.ListCustomers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithStats(http.StatusOK, res.Customers, res.Stats))
}

// SearchCustomers handles GET /customers/search?search=
// @Summary      Search customers by name or phone
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  true  "Name or phone fragment"
// @Success      200     {object}  response.Response{data=[]repository.CustomerWithSummary}
// @Failure      400     {object}  response.Response
// @Router       /api/customers/search [get]
func (h *CustomerHandler) SearchCustomers(c *gin.Context) {
	customers, err := h.customerService.SearchCustomers(c.Request.Context(), c.Query("search"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, customers))
}

// ListCustomersByStatus handles GET /customers/status/:status
// @Summary      List customers by payment summary
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        status  path      string  true  "paid, partial, pending or no-orders"
// @Success      200     {object}  response.Response{data=[]repository.CustomerWithSummary,stats=ledger.CustomerStats}
// @Failure      400     {object}  response.Response
// @Router       /api/customers/status/{status} [get]
func (h *CustomerHandler) ListCustomersByStatus(c *gin.Context) {
	res, err := h.customerService.ListCustomersByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithStats(http.StatusOK, res.Customers, res.Stats))
}

// GetCustomer handles GET /customers/:id
// @Summary      Get a customer with summary and orders
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  response.Response{data=service.CustomerDetailResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, customer))
}

// ListCustomerOrders handles GET /customers/:id/orders
// @Summary      List the orders of a customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  response.Response{data=[]service.OrderResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/customers/{id}/orders [get]
func (h *CustomerHandler) ListCustomerOrders(c *gin.Context) {
	orders, err := h.customerService.ListCustomerOrders(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, orders))
}

// UpdateCustomer handles PUT /customers/:id
// @Summary      Update a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                         true  "Customer ID"
// @Param        payload  body      service.UpdateCustomerRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=model.Customer}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var req service.UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithMessage(http.StatusOK, "Customer updated successfully", customer))
}

// DeleteCustomer handles DELETE /customers/:id
// @Summary      Delete a customer without orders
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	if err := h.customerService.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithMessage(http.StatusOK, "Customer deleted successfully", nil))
}
