package handler

import (
	"net/http"
	"strconv"
	"time"

	"filmmatch/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryHandler exposes the category catalog.
type CategoryHandler struct {
	categories *service.CategoryService
}

func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type CategoryInput struct {
	Name     string `json:"name" binding:"required"`
	ImageURL string `json:"image_url"`
}

type CategoryResponse struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url,omitempty"`
}

// GetCategories godoc
// @Summary      Get all categories
// @Description  Retrieves a list of all film categories.
// @Tags         categories
// @Produce      json
// @Success      200  {array}  CategoryResponse
// @Router       /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categories.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, CategoryResponse{
			ID:        category.ID,
			CreatedAt: category.CreatedAt,
			Name:      category.Name,
			ImageURL:  category.ImageURL,
		})
	}
	c.JSON(http.StatusOK, response)
}

// CreateCategory godoc
// @Summary      Create a new category
// @Description  Creates a new film category.
// @Tags         admin-categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CategoryInput true "Category Info"
// @Success      201  {object}  map[string]uint "{"id": 1}"
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Router       /admin/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	categoryID, err := h.categories.CreateCategory(c.Request.Context(), input.Name, input.ImageURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": categoryID})
}

// UpdateCategory godoc
// @Summary      Update a category
// @Description  Updates an existing category's name and image.
// @Tags         admin-categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int           true  "Category ID"
// @Param        input body      CategoryInput true  "New Category Info"
// @Success      200   {object}  map[string]string "{"message": "Category updated"}"
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse "Admin access required"
// @Failure      404   {object}  ErrorResponse "Category not found"
// @Router       /admin/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.categories.UpdateCategory(c.Request.Context(), uint(categoryID), input.Name, input.ImageURL); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category updated"})
}

// DeleteCategory godoc
// @Summary      Delete a category
// @Description  Deletes an existing category. Its films stop appearing in recommendations.
// @Tags         admin-categories
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Category ID"
// @Success      200 {object} map[string]string "{"message": "Category deleted"}"
// @Failure      403 {object} ErrorResponse "Admin access required"
// @Failure      404 {object} ErrorResponse "Category not found"
// @Router       /admin/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	if err := h.categories.DeleteCategory(c.Request.Context(), uint(categoryID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
