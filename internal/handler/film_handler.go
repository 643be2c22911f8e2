package handler

import (
	"net/http"
	"strconv"
	"time"

	"filmmatch/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// FilmHandler exposes the film catalog, the like/dislike/bookmark toggles and
// the recommendation feed.
type FilmHandler struct {
	films *service.FilmService
	recs  *service.RecommendationService
}

func NewFilmHandler(films *service.FilmService, recs *service.RecommendationService) *FilmHandler {
	return &FilmHandler{films: films, recs: recs}
}

// region --- DTOs ---

// FilmInput defines the structure for creating or updating a film.
type FilmInput struct {
	Title            string     `json:"title" binding:"required"`
	ReleaseDate      *time.Time `json:"release_date"`
	ImageURL         string     `json:"image_url"`
	ShortDescription string     `json:"short_description"`
	LongDescription  string     `json:"long_description"`
	CategoryID       uint       `json:"category_id" binding:"required"`
}

func (input FilmInput) toService() service.FilmInput {
	return service.FilmInput{
		Title:            input.Title,
		ReleaseDate:      input.ReleaseDate,
		ImageURL:         input.ImageURL,
		ShortDescription: input.ShortDescription,
		LongDescription:  input.LongDescription,
		CategoryID:       input.CategoryID,
	}
}

// endregion

// region --- Catalog Handlers ---

// GetFilms godoc
// @Summary      Get a list of films
// @Description  Retrieves films, with optional filtering by category and title search.
// @Tags         films
// @Produce      json
// @Security     BearerAuth
// @Param        category_id query int    false "Filter by Category ID"
// @Param        q           query string false "Search query for film title"
// @Success      200 {array} service.FilmSummary
// @Router       /films [get]
func (h *FilmHandler) GetFilms(c *gin.Context) {
	var categoryID *uint
	if raw := c.Query("category_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}
		id := uint(parsed)
		categoryID = &id
	}

	films, err := h.films.Films(c.Request.Context(), categoryID, c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, films)
}

// GetFilmByID godoc
// @Summary      Get a single film by ID
// @Description  Retrieves details for a single film, including its category.
// @Tags         films
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Film ID"
// @Success      200 {object} service.FilmSummary
// @Failure      404 {object} ErrorResponse "Film not found"
// @Router       /films/{id} [get]
func (h *FilmHandler) GetFilmByID(c *gin.Context) {
	filmID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid film ID"})
		return
	}

	film, err := h.films.Film(c.Request.Context(), uint(filmID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, film)
}

// CreateFilm godoc
// @Summary      Create a new film
// @Description  Creates a new film in the given category.
// @Tags         admin-films
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body FilmInput true "Film Info"
// @Success      201  {object}  map[string]uint "{"id": 1}"
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse "Category not found"
// @Router       /admin/films [post]
func (h *FilmHandler) CreateFilm(c *gin.Context) {
	var input FilmInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filmID, err := h.films.CreateFilm(c.Request.Context(), input.toService())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": filmID})
}

// UpdateFilm godoc
// @Summary      Update a film
// @Description  Updates a film's details.
// @Tags         admin-films
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int       true  "Film ID"
// @Param        input body      FilmInput true  "New Film Info"
// @Success      200   {object}  map[string]string "{"message": "Film updated"}"
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse "Admin access required"
// @Failure      404   {object}  ErrorResponse "Film not found"
// @Router       /admin/films/{id} [put]
func (h *FilmHandler) UpdateFilm(c *gin.Context) {
	filmID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid film ID"})
		return
	}

	var input FilmInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.films.UpdateFilm(c.Request.Context(), uint(filmID), input.toService()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Film updated"})
}

// DeleteFilm godoc
// @Summary      Delete a film
// @Description  Deletes an existing film.
// @Tags         admin-films
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Film ID"
// @Success      200 {object} map[string]string "{"message": "Film deleted"}"
// @Failure      403 {object} ErrorResponse "Admin access required"
// @Failure      404 {object} ErrorResponse "Film not found"
// @Router       /admin/films/{id} [delete]
func (h *FilmHandler) DeleteFilm(c *gin.Context) {
	filmID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid film ID"})
		return
	}

	if err := h.films.DeleteFilm(c.Request.Context(), uint(filmID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Film deleted"})
}

// endregion

// region --- Reaction Handlers ---

// ToggleLike godoc
// @Summary      Toggle like on a film
// @Description  Likes a film, or removes the like if already present. Clears an existing dislike.
// @Tags         films
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Film ID"
// @Success      200 {object} service.ReactionResult
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Film not found"
// @Router       /films/{id}/like [post]
func (h *FilmHandler) ToggleLike(c *gin.Context) {
	filmID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid film ID"})
		return
	}

	result, err := h.films.ToggleLike(c.Request.Context(), currentUserID(c), uint(filmID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ToggleDislike godoc
// @Summary      Toggle dislike on a film
// @Description  Dislikes a film, or removes the dislike if already present. Clears an existing like.
// @Tags         films
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Film ID"
// @Success      200 {object} service.ReactionResult
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Film not found"
// @Router       /films/{id}/dislike [post]
func (h *FilmHandler) ToggleDislike(c *gin.Context) {
	filmID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid film ID"})
		return
	}

	result, err := h.films.ToggleDislike(c.Request.Context(), currentUserID(c), uint(filmID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// BookmarkFilm godoc
// @Summary      Bookmark a film
// @Description  Adds a film to the user's bookmarks. Bookmarking twice is reported, not an error.
// @Tags         films
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Film ID"
// @Success      200 {object} service.BookmarkResult
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Film not found"
// @Router       /films/{id}/bookmark [post]
func (h *FilmHandler) BookmarkFilm(c *gin.Context) {
	filmID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid film ID"})
		return
	}

	result, err := h.films.Bookmark(c.Request.Context(), currentUserID(c), uint(filmID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UnbookmarkFilm godoc
// @Summary      Remove a film bookmark
// @Description  Removes a film from the user's bookmarks.
// @Tags         films
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Film ID"
// @Success      200 {object} service.BookmarkResult
// @Failure      401 {object} ErrorResponse
// @Router       /films/{id}/bookmark [delete]
func (h *FilmHandler) UnbookmarkFilm(c *gin.Context) {
	filmID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid film ID"})
		return
	}

	result, err := h.films.Unbookmark(c.Request.Context(), currentUserID(c), uint(filmID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetLikedFilms godoc
// @Summary      Get liked films
// @Description  Lists the films liked by the current user.
// @Tags         films
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} service.FilmSummary
// @Failure      401 {object} ErrorResponse
// @Router       /films/liked [get]
func (h *FilmHandler) GetLikedFilms(c *gin.Context) {
	films, err := h.films.LikedFilms(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, films)
}

// GetDislikedFilms godoc
// @Summary      Get disliked films
// @Description  Lists disliked films for the current user, or for another user via user_id.
// @Tags         films
// @Produce      json
// @Security     BearerAuth
// @Param        user_id query int false "View another user's dislikes"
// @Success      200 {array} service.FilmSummary
// @Failure      401 {object} ErrorResponse
// @Router       /films/disliked [get]
func (h *FilmHandler) GetDislikedFilms(c *gin.Context) {
	ownerID := currentUserID(c)
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}
		ownerID = uint(parsed)
	}

	films, err := h.films.DislikedFilms(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, films)
}

// GetBookmarkedFilms godoc
// @Summary      Get bookmarked films
// @Description  Lists the films bookmarked by the current user.
// @Tags         films
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} service.FilmSummary
// @Failure      401 {object} ErrorResponse
// @Router       /films/bookmarked [get]
func (h *FilmHandler) GetBookmarkedFilms(c *gin.Context) {
	films, err := h.films.BookmarkedFilms(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, films)
}

// GetRecommendations godoc
// @Summary      Get film recommendations
// @Description  Returns a ranked list of unseen films based on friends' reactions and category affinity.
// @Tags         films
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} service.FilmSummary
// @Failure      401 {object} ErrorResponse
// @Router       /films/recommendations [get]
func (h *FilmHandler) GetRecommendations(c *gin.Context) {
	films, err := h.recs.Recommendations(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, films)
}

// endregion
