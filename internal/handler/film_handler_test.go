package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"filmmatch/backend/internal/database"
	"filmmatch/backend/internal/models"
	"filmmatch/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestRouter wires a FilmHandler against an in-memory database. The auth
// middleware is replaced by one that injects the given userID; 0 means the
// request is anonymous.
func newTestRouter(t *testing.T, userID uint) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	filmService := service.NewFilmService(db)
	recommendationService := service.NewRecommendationService(db, service.DefaultWeights())
	h := NewFilmHandler(filmService, recommendationService)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID != 0 {
			c.Set("userID", userID)
		}
		c.Next()
	})
	router.GET("/films/:id", h.GetFilmByID)
	router.POST("/films/:id/like", h.ToggleLike)
	router.GET("/films/recommendations", h.GetRecommendations)
	return router, db
}

func seedFilm(t *testing.T, db *gorm.DB) (*models.User, *models.Film) {
	t.Helper()
	user := &models.User{Name: "alice", Email: "alice@example.com", PasswordHash: "irrelevant"}
	require.NoError(t, db.Create(user).Error)
	category := &models.Category{Name: "Sci-Fi"}
	require.NoError(t, db.Create(category).Error)
	film := &models.Film{Title: "Solaris", CategoryID: category.ID}
	require.NoError(t, db.Create(film).Error)
	return user, film
}

func TestToggleLikeRequiresAuth(t *testing.T) {
	router, db := newTestRouter(t, 0)
	_, film := seedFilm(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/films/%d/like", film.ID), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestToggleLikeRoundTrip(t *testing.T) {
	// The first seeded user gets id 1; the router acts as that user.
	router, db := newTestRouter(t, 1)
	user, film := seedFilm(t, db)
	require.EqualValues(t, 1, user.ID)

	like := func() service.ReactionResult {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/films/%d/like", film.ID), nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var result service.ReactionResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		return result
	}

	assert.Equal(t, service.ReactionLiked, like().State)
	assert.Equal(t, service.ReactionNeutral, like().State)
}

func TestGetFilmByIDErrors(t *testing.T) {
	router, _ := newTestRouter(t, 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/films/999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "not found"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/films/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendationsEndpoint(t *testing.T) {
	router, db := newTestRouter(t, 1)
	_, film := seedFilm(t, db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/films/recommendations", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var films []service.FilmSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &films))
	require.Len(t, films, 1)
	assert.Equal(t, film.ID, films[0].ID)
}
