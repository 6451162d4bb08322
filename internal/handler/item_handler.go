package handler

import (
	"net/http"

	"github.com/projectblurimedia/Veggie-Tracker/internal/service"
	"github.com/projectblurimedia/Veggie-Tracker/pkg/response"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	itemService service.ItemService
}

func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

func (h *ItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	items := router.Group("/items")
	{
		items.POST("", h.CreateItem)
		items.POST("/bulk", h.CreateItems)
		items.GET("", h.ListItems)
		items.GET("/search", h.SearchItems)
		items.DELETE("/:id", h.DeleteItem)
	}
}

// CreateItem handles POST /items
// @Summary      Add a produce name to the catalog
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateItemRequest  true  "Item"
// @Success      201      {object}  response.Response{data=model.Item}
// @Failure      400      {object}  response.Response
// @Router       /api/items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req service.CreateItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.SuccessWithMessage(http.StatusCreated, "Item created successfully", item))
}

// CreateItems handles POST /items/bulk
// @Summary      Add many produce names at once
// @Description  Names already in the catalog are skipped
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.BulkCreateItemsRequest  true  "Names"
// @Success      201      {object}  response.Response{data=service.BulkCreateResult}
// @Failure      400      {object}  response.Response
// @Router       /api/items/bulk [post]
func (h *ItemHandler) CreateItems(c *gin.Context) {
	var req service.BulkCreateItemsRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.itemService.CreateItems(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// ListItems handles GET /items
// @Summary      List the catalog by name
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.Item}
// @Router       /api/items [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	items, err := h.itemService.ListItems(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, items))
}

// SearchItems handles GET /items/search?search=
// @Summary      Search the catalog
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  true  "Name fragment"
// @Success      200     {object}  response.Response{data=[]model.Item}
// @Failure      400     {object}  response.Response
// @Router       /api/items/search [get]
func (h *ItemHandler) SearchItems(c *gin.Context) {
	items, err := h.itemService.SearchItems(c.Request.Context(), c.Query("search"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, items))
}

// DeleteItem handles DELETE /items/:id
// @Summary      Remove a catalog entry
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	if err := h.itemService.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithMessage(http.StatusOK, "Item deleted successfully", nil))
}
