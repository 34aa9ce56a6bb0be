package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "itemvault/internal/errors"
	"itemvault/internal/models"
	"itemvault/internal/pagination"
	"itemvault/internal/services"
)

// ItemHandler handles item-related requests
type ItemHandler struct {
	itemService  services.ItemServicer
	auditService services.AuditServicer
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemService services.ItemServicer, auditService services.AuditServicer) *ItemHandler {
	return &ItemHandler{itemService: itemService, auditService: auditService}
}

// CreateItemRequest represents the request payload for creating an item
type CreateItemRequest struct {
	Title      string            `json:"title" binding:"required,field_name,max=200"`
	CategoryID string            `json:"category_id" binding:"omitempty,uuid"`
	Fields     map[string]string `json:"fields" binding:"max=100,dive,keys,field_name,max=100,endkeys,max=10000"`
}

// UpdateItemRequest represents the request payload for updating an item.
// A present fields object replaces every stored field.
type UpdateItemRequest struct {
	Title      *string           `json:"title" binding:"omitempty,field_name,max=200"`
	CategoryID *string           `json:"category_id" binding:"omitempty,uuid"`
	Fields     map[string]string `json:"fields" binding:"omitempty,max=100,dive,keys,field_name,max=100,endkeys,max=10000"`
}

// ListItemsQuery holds the query parameters for listing items
type ListItemsQuery struct {
	pagination.PageRequest
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	Search     string `form:"search" binding:"max=200"`
}

// ItemResponse represents an item in the response
type ItemResponse struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	CategoryID string            `json:"category_id"`
	Fields     map[string]string `json:"fields"`
}

// CreateItem handles the creation of a new item
// @Summary     Create an item
// @Description Create an item, optionally filed under a category whose required fields must be present
// @Tags        items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateItemRequest true "Item details"
// @Success     201 {object} ItemResponse "Item created"
// @Failure     400 {object} ErrorResponse "Invalid input or missing required fields"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.itemService.CreateItem(req.Title, req.CategoryID, models.ItemFields(req.Fields))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionCreate, "item", item.ID, c.ClientIP(),
		map[string]interface{}{"title": item.Title, "category_id": item.CategoryID})

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// ListItems returns a page of items
// @Summary     List items
// @Description Get items newest first, optionally filtered by category and a search term
// @Tags        items
// @Produce     json
// @Security    BearerAuth
// @Param       page        query int    false "Page number"
// @Param       page_size   query int    false "Page size"
// @Param       category_id query string false "Category ID"
// @Param       search      query string false "Case-insensitive match on title and fields"
// @Success     200 {object} pagination.PageResponse[ItemResponse] "Items"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /items [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var query ListItemsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.itemService.ListItems(query.PageRequest, services.ItemFilter{
		CategoryID: query.CategoryID,
		Search:     strings.TrimSpace(query.Search),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetItemByID returns a single item with raw field values
// @Summary     Get item
// @Description Get an item by ID
// @Tags        items
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Item ID"
// @Success     200 {object} ItemResponse "Item"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /items/{id} [get]
func (h *ItemHandler) GetItemByID(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	item, err := h.itemService.GetItemByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// GetItemView returns an item with every field classified and formatted
// @Summary     View item
// @Description Get an item prepared for display. Secret fields stay masked unless named in reveal.
// @Tags        items
// @Produce     json
// @Security    BearerAuth
// @Param       id     path  string true  "Item ID"
// @Param       reveal query string false "Comma-separated field names to show unmasked"
// @Success     200 {object} services.ItemView "Item view"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /items/{id}/view [get]
func (h *ItemHandler) GetItemView(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	reveal := parseReveal(c.Query("reveal"))
	view, err := h.itemService.GetItemView(id, reveal)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var revealed []string
	for _, f := range view.Fields {
		if reveal[f.FieldName] && f.IsSecret {
			revealed = append(revealed, f.FieldName)
		}
	}
	if len(revealed) > 0 {
		h.auditService.Log(userID, services.AuditActionReveal, "item", view.ID, c.ClientIP(),
			map[string]interface{}{"fields": revealed})
	}

	c.JSON(http.StatusOK, gin.H{"item": view})
}

// UpdateItem updates an item
// @Summary     Update item
// @Description Change an item's title, category or fields
// @Tags        items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Item ID"
// @Param       request body UpdateItemRequest true "Changes"
// @Success     200 {object} ItemResponse "Item updated"
// @Failure     400 {object} ErrorResponse "Invalid input or missing required fields"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Item or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /items/{id} [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.itemService.UpdateItem(id, services.ItemUpdate{
		Title:      req.Title,
		CategoryID: req.CategoryID,
		Fields:     models.ItemFields(req.Fields),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionUpdate, "item", item.ID, c.ClientIP(),
		map[string]interface{}{"title": item.Title, "fields_replaced": req.Fields != nil})

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteItem deletes an item
// @Summary     Delete item
// @Description Delete an item by ID
// @Tags        items
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Item ID"
// @Success     200 {object} map[string]string "Item deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /items/{id} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.itemService.DeleteItem(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionDelete, "item", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

// parseReveal splits a comma-separated list of field names.
func parseReveal(raw string) map[string]bool {
	reveal := make(map[string]bool)
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			reveal[name] = true
		}
	}
	return reveal
}
