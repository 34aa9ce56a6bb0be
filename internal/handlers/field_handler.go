package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "itemvault/internal/errors"
	"itemvault/internal/fieldtype"
	"itemvault/internal/services"
)

// FieldHandler exposes the field type catalog, classifier and formatter.
// It holds no state.
type FieldHandler struct{}

// NewFieldHandler creates a new FieldHandler
func NewFieldHandler() *FieldHandler {
	return &FieldHandler{}
}

// ClassifyQuery holds the query parameters for classifying a field name
type ClassifyQuery struct {
	Name string `form:"name" binding:"required,max=100"`
}

// ClassifyResponse describes how a field name is rendered
type ClassifyResponse struct {
	// Field is the editing classification.
	Field fieldtype.ClassifiedField `json:"field"`
	// Display is the classification used when showing a stored value.
	Display fieldtype.ClassifiedField `json:"display"`
	// TypeConfig is the input widget picked for the name.
	TypeConfig fieldtype.Descriptor `json:"typeConfig"`
}

// FormatRequest represents a single value to format
type FormatRequest struct {
	Name   string `json:"name" binding:"required,field_name,max=100"`
	Value  string `json:"value" binding:"max=10000"`
	Reveal bool   `json:"reveal"`
}

// ListTypes returns the field type catalog
// @Summary     List field types
// @Description The registered field types in catalog order
// @Tags        fields
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]fieldtype.Descriptor "Field types"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /fields/types [get]
func (h *FieldHandler) ListTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": fieldtype.All()})
}

// Classify resolves the semantic type of a field name
// @Summary     Classify a field name
// @Description Resolve the field type, group and secrecy of a field name
// @Tags        fields
// @Produce     json
// @Security    BearerAuth
// @Param       name query string true "Field name"
// @Success     200 {object} ClassifyResponse "Classification"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /fields/classify [get]
func (h *FieldHandler) Classify(c *gin.Context) {
	var query ClassifyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	c.JSON(http.StatusOK, ClassifyResponse{
		Field:      fieldtype.Classify(query.Name),
		Display:    fieldtype.ClassifyForDisplay(query.Name),
		TypeConfig: fieldtype.TypeConfigFor(query.Name),
	})
}

// Format renders a raw value the way it is shown on an item
// @Summary     Format a field value
// @Description Classify the name for display and format the value, masking secrets unless reveal is set
// @Tags        fields
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body FormatRequest true "Field name and raw value"
// @Success     200 {object} services.ItemFieldView "Formatted field"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /fields/format [post]
func (h *FieldHandler) Format(c *gin.Context) {
	var req FormatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"field": services.BuildFieldView(req.Name, req.Value, req.Reveal)})
}
