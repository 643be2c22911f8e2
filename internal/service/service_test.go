package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"filmmatch/backend/internal/database"
	"filmmatch/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database and migrates the full
// schema. cache=shared keeps the connection pool on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "irrelevant",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createFilm(t *testing.T, db *gorm.DB, title string, categoryID uint, released *time.Time) *models.Film {
	t.Helper()
	film := &models.Film{
		Title:       title,
		CategoryID:  categoryID,
		ReleaseDate: released,
	}
	require.NoError(t, db.Create(film).Error)
	return film
}

func dateOf(year int) *time.Time {
	d := time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC)
	return &d
}

func ctx() context.Context { return context.Background() }
