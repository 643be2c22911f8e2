package service

import (
	"context"
	"sort"

	"filmmatch/backend/internal/apperr"
	"filmmatch/backend/internal/models"

	"gorm.io/gorm"
)

// Weights tunes how much each signal contributes to a film's score.
// FriendDislike subtracts: a film friends disliked ranks below one nobody
// has rated, not merely below a boosted one.
type Weights struct {
	FriendLike       float64
	FriendDislike    float64
	CategoryAffinity float64
}

// DefaultWeights favors direct friend signal over category affinity.
func DefaultWeights() Weights {
	return Weights{FriendLike: 3, FriendDislike: 2, CategoryAffinity: 1}
}

// RecommendationService ranks unseen films for a user from two signals:
// reactions of the user's friends and the user's own category affinity.
type RecommendationService struct {
	db      *gorm.DB
	weights Weights
}

func NewRecommendationService(db *gorm.DB, weights Weights) *RecommendationService {
	return &RecommendationService{db: db, weights: weights}
}

// Recommendations returns films for userID, best match first. Films the user
// already liked or disliked are never returned, nor are deleted films or
// films in deleted categories. Ordering is deterministic: score desc, then
// most recent release date (films without one last), then id. A user with no
// friends and no history gets the full eligible list in the neutral
// most-recent-first order.
func (s *RecommendationService) Recommendations(ctx context.Context, userID uint) ([]FilmSummary, error) {
	if userID == 0 {
		return nil, apperr.ErrUnauthenticated
	}

	rated, err := s.ratedFilmIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	var friendIDs []uint
	if err := s.db.WithContext(ctx).Model(&models.UserFriend{}).
		Where("user_id = ?", userID).Pluck("friend_id", &friendIDs).Error; err != nil {
		return nil, err
	}

	friendLikes, err := s.reactionCounts(ctx, friendIDs, &models.UserLikedFilm{})
	if err != nil {
		return nil, err
	}
	friendDislikes, err := s.reactionCounts(ctx, friendIDs, &models.UserDislikedFilm{})
	if err != nil {
		return nil, err
	}

	affinity, err := s.categoryAffinity(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Candidates: active films whose category is also still active.
	var films []models.Film
	err = s.db.WithContext(ctx).Model(&models.Film{}).Preload("Category").
		Joins("JOIN categories ON categories.id = films.category_id AND categories.deleted_at IS NULL").
		Find(&films).Error
	if err != nil {
		return nil, err
	}

	type scoredFilm struct {
		film  models.Film
		score float64
	}
	candidates := make([]scoredFilm, 0, len(films))
	for _, f := range films {
		if _, seen := rated[f.ID]; seen {
			continue
		}
		score := s.weights.FriendLike*float64(friendLikes[f.ID]) -
			s.weights.FriendDislike*float64(friendDislikes[f.ID]) +
			s.weights.CategoryAffinity*float64(affinity[f.CategoryID])
		candidates = append(candidates, scoredFilm{film: f, score: score})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		ri, rj := candidates[i].film.ReleaseDate, candidates[j].film.ReleaseDate
		switch {
		case ri != nil && rj != nil && !ri.Equal(*rj):
			return ri.After(*rj)
		case ri != nil && rj == nil:
			return true
		case ri == nil && rj != nil:
			return false
		}
		return candidates[i].film.ID < candidates[j].film.ID
	})

	summaries := make([]FilmSummary, 0, len(candidates))
	for _, c := range candidates {
		summaries = append(summaries, newFilmSummary(c.film))
	}
	return summaries, nil
}

// ratedFilmIDs collects every film the user has liked or disliked.
func (s *RecommendationService) ratedFilmIDs(ctx context.Context, userID uint) (map[uint]struct{}, error) {
	rated := make(map[uint]struct{})

	var likedIDs []uint
	if err := s.db.WithContext(ctx).Model(&models.UserLikedFilm{}).
		Where("user_id = ?", userID).Pluck("film_id", &likedIDs).Error; err != nil {
		return nil, err
	}
	var dislikedIDs []uint
	if err := s.db.WithContext(ctx).Model(&models.UserDislikedFilm{}).
		Where("user_id = ?", userID).Pluck("film_id", &dislikedIDs).Error; err != nil {
		return nil, err
	}

	for _, id := range likedIDs {
		rated[id] = struct{}{}
	}
	for _, id := range dislikedIDs {
		rated[id] = struct{}{}
	}
	return rated, nil
}

// reactionCounts counts reactions per film across the given users.
func (s *RecommendationService) reactionCounts(ctx context.Context, userIDs []uint, model any) (map[uint]int, error) {
	counts := make(map[uint]int)
	if len(userIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		FilmID uint
		Total  int
	}
	err := s.db.WithContext(ctx).Model(model).
		Select("film_id, COUNT(*) AS total").
		Where("user_id IN ?", userIDs).
		Group("film_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.FilmID] = r.Total
	}
	return counts, nil
}

// categoryAffinity counts how often the user liked films of each category.
func (s *RecommendationService) categoryAffinity(ctx context.Context, userID uint) (map[uint]int, error) {
	var rows []struct {
		CategoryID uint
		Total      int
	}
	err := s.db.WithContext(ctx).Model(&models.UserLikedFilm{}).
		Select("films.category_id, COUNT(*) AS total").
		Joins("JOIN films ON films.id = user_liked_films.film_id AND films.deleted_at IS NULL").
		Where("user_liked_films.user_id = ?", userID).
		Group("films.category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	affinity := make(map[uint]int, len(rows))
	for _, r := range rows {
		affinity[r.CategoryID] = r.Total
	}
	return affinity, nil
}
