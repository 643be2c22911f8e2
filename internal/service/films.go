package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"filmmatch/backend/internal/apperr"
	"filmmatch/backend/internal/models"

	"gorm.io/gorm"
)

// FilmService owns the film catalog and the per-user reaction state:
// like/dislike toggles (mutually exclusive) and bookmarks (independent).
type FilmService struct {
	db *gorm.DB
}

func NewFilmService(db *gorm.DB) *FilmService {
	return &FilmService{db: db}
}

// ToggleLike flips the like state for (userID, filmID). Liking a film that is
// currently disliked clears the dislike in the same transaction, so no reader
// ever sees both reactions at once.
func (s *FilmService) ToggleLike(ctx context.Context, userID, filmID uint) (*ReactionResult, error) {
	if userID == 0 {
		return nil, apperr.ErrUnauthenticated
	}
	if err := s.requireFilm(ctx, filmID); err != nil {
		return nil, err
	}

	state := ReactionNeutral
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var liked models.UserLikedFilm
		err := tx.Where("user_id = ? AND film_id = ?", userID, filmID).First(&liked).Error
		if err == nil {
			return tx.Delete(&liked).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// Clear the opposing reaction before creating the like.
		if err := tx.Where("user_id = ? AND film_id = ?", userID, filmID).
			Delete(&models.UserDislikedFilm{}).Error; err != nil {
			return err
		}
		state = ReactionLiked
		return tx.Create(&models.UserLikedFilm{UserID: userID, FilmID: filmID}).Error
	})
	if err != nil {
		return nil, err
	}

	return &ReactionResult{State: state, UpdatedAt: time.Now().UTC()}, nil
}

// ToggleDislike is the mirror of ToggleLike.
func (s *FilmService) ToggleDislike(ctx context.Context, userID, filmID uint) (*ReactionResult, error) {
	if userID == 0 {
		return nil, apperr.ErrUnauthenticated
	}
	if err := s.requireFilm(ctx, filmID); err != nil {
		return nil, err
	}

	state := ReactionNeutral
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var disliked models.UserDislikedFilm
		err := tx.Where("user_id = ? AND film_id = ?", userID, filmID).First(&disliked).Error
		if err == nil {
			return tx.Delete(&disliked).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Where("user_id = ? AND film_id = ?", userID, filmID).
			Delete(&models.UserLikedFilm{}).Error; err != nil {
			return err
		}
		state = ReactionDisliked
		return tx.Create(&models.UserDislikedFilm{UserID: userID, FilmID: filmID}).Error
	})
	if err != nil {
		return nil, err
	}

	return &ReactionResult{State: state, UpdatedAt: time.Now().UTC()}, nil
}

// Bookmark adds a film to the user's bookmarks. Bookmarking a film twice is
// not an error; the result reports it as an informational outcome.
func (s *FilmService) Bookmark(ctx context.Context, userID, filmID uint) (*BookmarkResult, error) {
	if userID == 0 {
		return nil, apperr.ErrUnauthenticated
	}
	if err := s.requireFilm(ctx, filmID); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.UserBookmarkedFilm{}).
		Where("user_id = ? AND film_id = ?", userID, filmID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return &BookmarkResult{IsSuccess: false, Message: "Film is already bookmarked"}, nil
	}

	if err := s.db.WithContext(ctx).Create(&models.UserBookmarkedFilm{UserID: userID, FilmID: filmID}).Error; err != nil {
		return nil, err
	}
	return &BookmarkResult{IsSuccess: true, Message: "Film bookmarked"}, nil
}

// Unbookmark removes a film from the user's bookmarks.
func (s *FilmService) Unbookmark(ctx context.Context, userID, filmID uint) (*BookmarkResult, error) {
	if userID == 0 {
		return nil, apperr.ErrUnauthenticated
	}

	result := s.db.WithContext(ctx).Where("user_id = ? AND film_id = ?", userID, filmID).
		Delete(&models.UserBookmarkedFilm{})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return &BookmarkResult{IsSuccess: false, Message: "Film is not bookmarked"}, nil
	}
	return &BookmarkResult{IsSuccess: true, Message: "Bookmark removed"}, nil
}

// LikedFilms lists the films liked by userID, oldest like first.
func (s *FilmService) LikedFilms(ctx context.Context, userID uint) ([]FilmSummary, error) {
	if userID == 0 {
		return nil, apperr.ErrUnauthenticated
	}
	var rows []models.UserLikedFilm
	err := s.db.WithContext(ctx).Preload("Film").Preload("Film.Category").
		Where("user_id = ?", userID).Order("created_at, id").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	summaries := make([]FilmSummary, 0, len(rows))
	for _, r := range rows {
		if r.Film.ID == 0 {
			continue // film was deleted
		}
		summaries = append(summaries, newFilmSummary(r.Film))
	}
	return summaries, nil
}

// DislikedFilms lists films disliked by ownerID. Callers pass the viewer's own
// id or another user's id for cross-user viewing.
func (s *FilmService) DislikedFilms(ctx context.Context, ownerID uint) ([]FilmSummary, error) {
	if ownerID == 0 {
		return nil, apperr.ErrUnauthenticated
	}
	var rows []models.UserDislikedFilm
	err := s.db.WithContext(ctx).Preload("Film").Preload("Film.Category").
		Where("user_id = ?", ownerID).Order("created_at, id").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	summaries := make([]FilmSummary, 0, len(rows))
	for _, r := range rows {
		if r.Film.ID == 0 {
			continue
		}
		summaries = append(summaries, newFilmSummary(r.Film))
	}
	return summaries, nil
}

// BookmarkedFilms lists the films bookmarked by userID, oldest first.
func (s *FilmService) BookmarkedFilms(ctx context.Context, userID uint) ([]FilmSummary, error) {
	if userID == 0 {
		return nil, apperr.ErrUnauthenticated
	}
	var rows []models.UserBookmarkedFilm
	err := s.db.WithContext(ctx).Preload("Film").Preload("Film.Category").
		Where("user_id = ?", userID).Order("created_at, id").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	summaries := make([]FilmSummary, 0, len(rows))
	for _, r := range rows {
		if r.Film.ID == 0 {
			continue
		}
		summaries = append(summaries, newFilmSummary(r.Film))
	}
	return summaries, nil
}

// FilmInput carries the fields for creating or updating a film. The image is
// uploaded elsewhere; only the resulting URL is stored.
type FilmInput struct {
	Title            string
	ReleaseDate      *time.Time
	ImageURL         string
	ShortDescription string
	LongDescription  string
	CategoryID       uint
}

// CreateFilm adds a film to the catalog.
func (s *FilmService) CreateFilm(ctx context.Context, input FilmInput) (uint, error) {
	if input.Title == "" {
		return 0, apperr.Validation("title is required")
	}
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, input.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.NotFound("category %d", input.CategoryID)
		}
		return 0, err
	}

	film := models.Film{
		Title:            input.Title,
		ReleaseDate:      input.ReleaseDate,
		ImageURL:         input.ImageURL,
		ShortDescription: input.ShortDescription,
		LongDescription:  input.LongDescription,
		CategoryID:       input.CategoryID,
	}
	if err := s.db.WithContext(ctx).Create(&film).Error; err != nil {
		return 0, err
	}
	return film.ID, nil
}

// UpdateFilm replaces a film's fields.
func (s *FilmService) UpdateFilm(ctx context.Context, filmID uint, input FilmInput) error {
	var film models.Film
	if err := s.db.WithContext(ctx).First(&film, filmID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("film %d", filmID)
		}
		return err
	}
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, input.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("category %d", input.CategoryID)
		}
		return err
	}

	film.Title = input.Title
	film.ReleaseDate = input.ReleaseDate
	film.ImageURL = input.ImageURL
	film.ShortDescription = input.ShortDescription
	film.LongDescription = input.LongDescription
	film.CategoryID = input.CategoryID
	return s.db.WithContext(ctx).Save(&film).Error
}

// DeleteFilm soft-deletes a film. Its reaction history is kept for audit.
func (s *FilmService) DeleteFilm(ctx context.Context, filmID uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Film{}, filmID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("film %d", filmID)
	}
	return nil
}

// Film returns a single film with its category projection.
func (s *FilmService) Film(ctx context.Context, filmID uint) (*FilmSummary, error) {
	var film models.Film
	err := s.db.WithContext(ctx).Preload("Category").First(&film, filmID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("film %d", filmID)
		}
		return nil, err
	}
	summary := newFilmSummary(film)
	return &summary, nil
}

// Films lists active films, optionally filtered by category and title search.
func (s *FilmService) Films(ctx context.Context, categoryID *uint, search string) ([]FilmSummary, error) {
	query := s.db.WithContext(ctx).Model(&models.Film{}).Preload("Category")
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var films []models.Film
	if err := query.Order("id").Find(&films).Error; err != nil {
		return nil, err
	}
	summaries := make([]FilmSummary, 0, len(films))
	for _, f := range films {
		summaries = append(summaries, newFilmSummary(f))
	}
	return summaries, nil
}

func (s *FilmService) requireFilm(ctx context.Context, filmID uint) error {
	var film models.Film
	if err := s.db.WithContext(ctx).Select("id").First(&film, filmID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("film %d", filmID)
		}
		return err
	}
	return nil
}

func newFilmSummary(film models.Film) FilmSummary {
	summary := FilmSummary{
		ID:               film.ID,
		Title:            film.Title,
		ReleaseDate:      film.ReleaseDate,
		ImageURL:         film.ImageURL,
		ShortDescription: film.ShortDescription,
		LongDescription:  film.LongDescription,
	}
	if film.Category.ID != 0 {
		summary.Category = &CategorySummary{ID: film.Category.ID, Name: film.Category.Name}
	}
	return summary
}
