package handler

import (
	"net/http"

	"github.com/projectblurimedia/Veggie-Tracker/internal/service"
	"github.com/projectblurimedia/Veggie-Tracker/pkg/pagination"
	"github.com/projectblurimedia/Veggie-Tracker/pkg/response"

	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	expenseService service.ExpenseService
}

func NewExpenseHandler(expenseService service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

func (h *ExpenseHandler) RegisterRoutes(router *gin.RouterGroup) {
	expenses := router.Group("/expenses")
	{
		expenses.POST("", h.CreateExpense)
		expenses.GET("", h.ListExpenses)
		expenses.GET("/stats", h.GetStats)
		expenses.GET("/summary", h.GetSummary)
		expenses.GET("/date-range", h.ListByDateRange)
		expenses.GET("/type/:type", h.ListByType)
		expenses.GET("/date/:date", h.ListByDate)
		expenses.GET("/:id", h.GetExpense)
		expenses.PUT("/:id", h.UpdateExpense)
		expenses.DELETE("/:id", h.DeleteExpense)
	}
}

// CreateExpense handles POST /expenses
// @Summary      Create an owner record
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateExpenseRequest  true  "Record"
// @Success      201      {object}  response.Response{data=service.ExpenseResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req service.CreateExpenseRequest
	if !bindJSON(c, &req) {
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.SuccessWithMessage(http.StatusCreated, "Record created successfully", expense))
}

// ListExpenses returns a page of owner records, newest first
// @Summary      List owner records
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  response.Response{data=[]service.ExpenseResponse}
// @Router       /api/expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	p := pagination.Parse(c)

	expenses, total, err := h.expenseService.ListExpenses(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, expenses, p, total))
}

// GetStats handles GET /expenses/stats
// @Summary      Owner record dashboard figures
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=model.ExpenseDashboard}
// @Router       /api/expenses/stats [get]
func (h *ExpenseHandler) GetStats(c *gin.Context) {
	stats, err := h.expenseService.GetDashboard(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// GetSummary handles GET /expenses/summary
// @Summary      Owner records broken down by type
// @Description  Without dates the summary covers every record
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        startDate  query     string  false  "YYYY-MM-DD or RFC 3339"
// @Param        endDate    query     string  false  "YYYY-MM-DD or RFC 3339"
// @Success      200        {object}  response.Response{data=model.FinancialSummary}
// @Failure      400        {object}  response.Response
// @Router       /api/expenses/summary [get]
func (h *ExpenseHandler) GetSummary(c *gin.Context) {
	summary, err := h.expenseService.GetFinancialSummary(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// ListByDateRange handles GET /expenses/date-range
// @Summary      List owner records in an inclusive date range
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        startDate  query     string  true  "YYYY-MM-DD or RFC 3339"
// @Param        endDate    query     string  true  "YYYY-MM-DD or RFC 3339"
// @Success      200        {object}  response.Response{data=[]service.ExpenseResponse}
// @Failure      400        {object}  response.Response
// @Router       /api/expenses/date-range [get]
func (h *ExpenseHandler) ListByDateRange(c *gin.Context) {
	expenses, err := h.expenseService.ListExpensesByDateRange(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, expenses))
}

// ListByType handles GET /expenses/type/:type
// @Summary      List owner records of one type
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        type  path      string  true  "SALE, PURCHASE, EXPENSE or INCOME"
// @Success      200   {object}  response.Response{data=[]service.ExpenseResponse}
// @Failure      400   {object}  response.Response
// @Router       /api/expenses/type/{type} [get]
func (h *ExpenseHandler) ListByType(c *gin.Context) {
	expenses, err := h.expenseService.ListExpensesByType(c.Request.Context(), c.Param("type"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, expenses))
}

// ListByDate handles GET /expenses/date/:date
// @Summary      List owner records of one day
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        date  path      string  true  "YYYY-MM-DD"
// @Success      200   {object}  response.Response{data=[]service.ExpenseResponse}
// @Failure      400   {object}  response.Response
// @Router       /api/expenses/date/{date} [get]
func (h *ExpenseHandler) ListByDate(c *gin.Context) {
	expenses, err := h.expenseService.ListExpensesByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, expenses))
}

// GetExpense handles GET /expenses/:id
// @Summary      Get an owner record
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Record ID"
// @Success      200  {object}  response.Response{data=service.ExpenseResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	expense, err := h.expenseService.GetExpense(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, expense))
}

// UpdateExpense handles PUT /expenses/:id
// @Summary      Update an owner record
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "Record ID"
// @Param        payload  body      service.UpdateExpenseRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=service.ExpenseResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	var req service.UpdateExpenseRequest
	if !bindJSON(c, &req) {
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithMessage(http.StatusOK, "Record updated successfully", expense))
}

// DeleteExpense handles DELETE /expenses/:id
// @Summary      Delete an owner record
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Record ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	if err := h.expenseService.DeleteExpense(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithMessage(http.StatusOK, "Record deleted successfully", nil))
}
