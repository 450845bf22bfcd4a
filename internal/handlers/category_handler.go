package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
	"pennywise/internal/services"
)

// CategoryHandler handles category and subcategory requests.
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the request payload for creating a category.
type CreateCategoryRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Icon      string `json:"icon" binding:"max=50"`
	Color     string `json:"color" binding:"omitempty,hex_color"`
	Type      string `json:"type" binding:"required,entry_type"`
	SortOrder int    `json:"sort_order" binding:"omitempty,gte=0"`
}

// CreateCategory handles the creation of a new user category.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.CreateCategory(req.Name, req.Icon, req.Color, models.EntryType(req.Type), req.SortOrder)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// GetCategories handles listing categories, optionally filtered with ?type=.
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	var entryType *models.EntryType
	if v := c.Query("type"); v != "" {
		t := models.EntryType(v)
		switch t {
		case models.EntryTypeExpense, models.EntryTypeIncome:
			entryType = &t
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid type, must be expense or income"))
			return
		}
	}

	categories, err := h.categoryService.GetCategories(entryType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategoryByID handles the retrieval of a specific category.
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.GetCategoryByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// UpdateCategoryRequest represents the request payload for updating a category.
type UpdateCategoryRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=100"`
	Icon      *string `json:"icon" binding:"omitempty,max=50"`
	Color     *string `json:"color" binding:"omitempty,hex_color"`
	SortOrder *int    `json:"sort_order" binding:"omitempty,gte=0"`
}

// UpdateCategory handles updating an existing category.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.UpdateCategory(id, services.CategoryUpdateFields{
		Name:      req.Name,
		Icon:      req.Icon,
		Color:     req.Color,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory handles the deletion of a user category.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// CreateSubcategoryRequest represents the request payload for creating a subcategory.
type CreateSubcategoryRequest struct {
	Name      string  `json:"name" binding:"required,max=100"`
	Icon      *string `json:"icon" binding:"omitempty,max=50"`
	SortOrder int     `json:"sort_order" binding:"omitempty,gte=0"`
}

// CreateSubcategory handles the creation of a subcategory under a category.
func (h *CategoryHandler) CreateSubcategory(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateSubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	sub, err := h.categoryService.CreateSubcategory(categoryID, req.Name, req.Icon, req.SortOrder)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"subcategory": sub})
}

// GetSubcategories handles listing a category's subcategories.
func (h *CategoryHandler) GetSubcategories(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	subs, err := h.categoryService.GetSubcategories(categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subcategories": subs})
}

// UpdateSubcategoryRequest represents the request payload for updating a subcategory.
type UpdateSubcategoryRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=100"`
	Icon      *string `json:"icon" binding:"omitempty,max=50"`
	SortOrder *int    `json:"sort_order" binding:"omitempty,gte=0"`
}

// UpdateSubcategory handles updating an existing subcategory.
func (h *CategoryHandler) UpdateSubcategory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateSubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	sub, err := h.categoryService.UpdateSubcategory(id, services.SubcategoryUpdateFields{
		Name:      req.Name,
		Icon:      optionalString(req.Icon),
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subcategory": sub})
}

// DeleteSubcategory handles the deletion of a subcategory.
func (h *CategoryHandler) DeleteSubcategory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteSubcategory(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subcategory deleted successfully"})
}
