package service

import (
	"testing"

	"filmmatch/backend/internal/apperr"
	"filmmatch/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countLikes(t *testing.T, svc *FilmService, userID, filmID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, svc.db.Model(&models.UserLikedFilm{}).
		Where("user_id = ? AND film_id = ?", userID, filmID).Count(&n).Error)
	return n
}

func countDislikes(t *testing.T, svc *FilmService, userID, filmID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, svc.db.Model(&models.UserDislikedFilm{}).
		Where("user_id = ? AND film_id = ?", userID, filmID).Count(&n).Error)
	return n
}

func TestToggleLikeTwiceIsNeutral(t *testing.T) {
	db := newTestDB(t)
	svc := NewFilmService(db)
	user := createUser(t, db, "alice")
	category := createCategory(t, db, "Sci-Fi")
	film := createFilm(t, db, "Solaris", category.ID, nil)

	result, err := svc.ToggleLike(ctx(), user.ID, film.ID)
	require.NoError(t, err)
	assert.Equal(t, ReactionLiked, result.State)
	assert.EqualValues(t, 1, countLikes(t, svc, user.ID, film.ID))

	result, err = svc.ToggleLike(ctx(), user.ID, film.ID)
	require.NoError(t, err)
	assert.Equal(t, ReactionNeutral, result.State)
	assert.EqualValues(t, 0, countLikes(t, svc, user.ID, film.ID))
	assert.EqualValues(t, 0, countDislikes(t, svc, user.ID, film.ID))

	// The un-liked row is retired, not erased.
	var total int64
	require.NoError(t, db.Unscoped().Model(&models.UserLikedFilm{}).
		Where("user_id = ?", user.ID).Count(&total).Error)
	assert.EqualValues(t, 1, total)
}

func TestLikeClearsDislike(t *testing.T) {
	db := newTestDB(t)
	svc := NewFilmService(db)
	user := createUser(t, db, "alice")
	category := createCategory(t, db, "Sci-Fi")
	film := createFilm(t, db, "Solaris", category.ID, nil)

	result, err := svc.ToggleDislike(ctx(), user.ID, film.ID)
	require.NoError(t, err)
	assert.Equal(t, ReactionDisliked, result.State)

	result, err = svc.ToggleLike(ctx(), user.ID, film.ID)
	require.NoError(t, err)
	assert.Equal(t, ReactionLiked, result.State)

	assert.EqualValues(t, 1, countLikes(t, svc, user.ID, film.ID))
	assert.EqualValues(t, 0, countDislikes(t, svc, user.ID, film.ID))
}

func TestDislikeClearsLike(t *testing.T) {
	db := newTestDB(t)
	svc := NewFilmService(db)
	user := createUser(t, db, "alice")
	category := createCategory(t, db, "Sci-Fi")
	film := createFilm(t, db, "Solaris", category.ID, nil)

	_, err := svc.ToggleLike(ctx(), user.ID, film.ID)
	require.NoError(t, err)

	result, err := svc.ToggleDislike(ctx(), user.ID, film.ID)
	require.NoError(t, err)
	assert.Equal(t, ReactionDisliked, result.State)

	assert.EqualValues(t, 0, countLikes(t, svc, user.ID, film.ID))
	assert.EqualValues(t, 1, countDislikes(t, svc, user.ID, film.ID))
}

func TestToggleLikeErrors(t *testing.T) {
	db := newTestDB(t)
	svc := NewFilmService(db)
	user := createUser(t, db, "alice")

	_, err := svc.ToggleLike(ctx(), user.ID, 12345)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.ToggleLike(ctx(), 0, 1)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestToggleLikeDeletedFilm(t *testing.T) {
	db := newTestDB(t)
	svc := NewFilmService(db)
	user := createUser(t, db, "alice")
	category := createCategory(t, db, "Sci-Fi")
	film := createFilm(t, db, "Solaris", category.ID, nil)
	require.NoError(t, svc.DeleteFilm(ctx(), film.ID))

	_, err := svc.ToggleLike(ctx(), user.ID, film.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestBookmarkIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewFilmService(db)
	user := createUser(t, db, "alice")
	category := createCategory(t, db, "Drama")
	film := createFilm(t, db, "Stalker", category.ID, nil)

	result, err := svc.Bookmark(ctx(), user.ID, film.ID)
	require.NoError(t, err)
	assert.True(t, result.IsSuccess)

	result, err = svc.Bookmark(ctx(), user.ID, film.ID)
	require.NoError(t, err)
	assert.False(t, result.IsSuccess)
	assert.Equal(t, "Film is already bookmarked", result.Message)

	var n int64
	require.NoError(t, db.Model(&models.UserBookmarkedFilm{}).
		Where("user_id = ?", user.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestBookmarkIndependentOfReactions(t *testing.T) {
	db := newTestDB(t)
	svc := NewFilmService(db)
	user := createUser(t, db, "alice")
	category := createCategory(t, db, "Drama")
	film := createFilm(t, db, "Stalker", category.ID, nil)

	_, err := svc.Bookmark(ctx(), user.ID, film.ID)
	require.NoError(t, err)
	_, err = svc.ToggleDislike(ctx(), user.ID, film.ID)
	require.NoError(t, err)

	films, err := svc.BookmarkedFilms(ctx(), user.ID)
	require.NoError(t, err)
	require.Len(t, films, 1)
	assert.Equal(t, film.ID, films[0].ID)
}

func TestUnbookmark(t *testing.T) {
	db := newTestDB(t)
	svc := NewFilmService(db)
	user := createUser(t, db, "alice")
	category := createCategory(t, db, "Drama")
	film := createFilm(t, db, "Stalker", category.ID, nil)

	_, err := svc.Bookmark(ctx(), user.ID, film.ID)
	require.NoError(t, err)

	result, err := svc.Unbookmark(ctx(), user.ID, film.ID)
	require.NoError(t, err)
	assert.True(t, result.IsSuccess)

	result, err = svc.Unbookmark(ctx(), user.ID, film.ID)
	require.NoError(t, err)
	assert.False(t, result.IsSuccess)
}

func TestLikedFilmsCarryCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewFilmService(db)
	user := createUser(t, db, "alice")
	category := createCategory(t, db, "Sci-Fi")
	film := createFilm(t, db, "Solaris", category.ID, dateOf(1972))

	_, err := svc.ToggleLike(ctx(), user.ID, film.ID)
	require.NoError(t, err)

	films, err := svc.LikedFilms(ctx(), user.ID)
	require.NoError(t, err)
	require.Len(t, films, 1)
	assert.Equal(t, "Solaris", films[0].Title)
	require.NotNil(t, films[0].Category)
	assert.Equal(t, "Sci-Fi", films[0].Category.Name)
}

func TestLikedFilmsSkipDeletedFilms(t *testing.T) {
	db := newTestDB(t)
	svc := NewFilmService(db)
	user := createUser(t, db, "alice")
	category := createCategory(t, db, "Sci-Fi")
	film := createFilm(t, db, "Solaris", category.ID, nil)
	kept := createFilm(t, db, "Stalker", category.ID, nil)

	_, err := svc.ToggleLike(ctx(), user.ID, film.ID)
	require.NoError(t, err)
	_, err = svc.ToggleLike(ctx(), user.ID, kept.ID)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteFilm(ctx(), film.ID))

	films, err := svc.LikedFilms(ctx(), user.ID)
	require.NoError(t, err)
	require.Len(t, films, 1)
	assert.Equal(t, kept.ID, films[0].ID)
}

func TestDislikedFilmsForAnotherUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewFilmService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	category := createCategory(t, db, "Horror")
	film := createFilm(t, db, "Alien", category.ID, nil)

	_, err := svc.ToggleDislike(ctx(), bob.ID, film.ID)
	require.NoError(t, err)

	films, err := svc.DislikedFilms(ctx(), bob.ID)
	require.NoError(t, err)
	require.Len(t, films, 1)

	films, err = svc.DislikedFilms(ctx(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, films)
}

func TestFilmsFilterByCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewFilmService(db)
	scifi := createCategory(t, db, "Sci-Fi")
	drama := createCategory(t, db, "Drama")
	createFilm(t, db, "Solaris", scifi.ID, nil)
	createFilm(t, db, "Mirror", drama.ID, nil)

	films, err := svc.Films(ctx(), &scifi.ID, "")
	require.NoError(t, err)
	require.Len(t, films, 1)
	assert.Equal(t, "Solaris", films[0].Title)

	films, err = svc.Films(ctx(), nil, "mirr")
	require.NoError(t, err)
	require.Len(t, films, 1)
	assert.Equal(t, "Mirror", films[0].Title)
}

func TestCreateFilmRequiresCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewFilmService(db)

	_, err := svc.CreateFilm(ctx(), FilmInput{Title: "Orphan", CategoryID: 999})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
