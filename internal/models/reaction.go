package models

import "gorm.io/gorm"

// UserLikedFilm records that a user liked a film. For a given (user, film)
// pair at most one of UserLikedFilm/UserDislikedFilm may be active; the
// toggle service enforces this inside a transaction.
type UserLikedFilm struct {
	gorm.Model
	UserID uint `gorm:"not null;index:idx_liked_user_film"`
	FilmID uint `gorm:"not null;index:idx_liked_user_film"`

	User User `gorm:"foreignKey:UserID"`
	Film Film `gorm:"foreignKey:FilmID"`
}

// UserDislikedFilm records that a user disliked a film.
type UserDislikedFilm struct {
	gorm.Model
	UserID uint `gorm:"not null;index:idx_disliked_user_film"`
	FilmID uint `gorm:"not null;index:idx_disliked_user_film"`

	User User `gorm:"foreignKey:UserID"`
	Film Film `gorm:"foreignKey:FilmID"`
}

// UserBookmarkedFilm records that a user bookmarked a film. Bookmarks are
// independent of the like/dislike state.
type UserBookmarkedFilm struct {
	gorm.Model
	UserID uint `gorm:"not null;index:idx_bookmarked_user_film"`
	FilmID uint `gorm:"not null;index:idx_bookmarked_user_film"`

	User User `gorm:"foreignKey:UserID"`
	Film Film `gorm:"foreignKey:FilmID"`
}
