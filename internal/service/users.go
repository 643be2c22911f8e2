package service

import (
	"context"
	"errors"
	"strings"

	"filmmatch/backend/internal/apperr"
	"filmmatch/backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles registration, login and user lookups.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{Name: name, Email: email, PasswordHash: string(hashed)}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies the credentials and returns the matching user.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %s", email)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.ErrUnauthenticated
	}
	return &user, nil
}

// CurrentUser resolves the acting user by id.
func (s *UserService) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	if userID == 0 {
		return nil, apperr.ErrUnauthenticated
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %d", userID)
		}
		return nil, err
	}
	return &user, nil
}

// SearchUsernames lists active users whose name matches the query.
func (s *UserService) SearchUsernames(ctx context.Context, query string) ([]UserSummary, error) {
	dbQuery := s.db.WithContext(ctx).Model(&models.User{})
	if query != "" {
		dbQuery = dbQuery.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}

	var users []models.User
	if err := dbQuery.Order("name, id").Find(&users).Error; err != nil {
		return nil, err
	}
	summaries := make([]UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, UserSummary{ID: u.ID, Name: u.Name})
	}
	return summaries, nil
}

// UsernameByID resolves a single user's display name.
func (s *UserService) UsernameByID(ctx context.Context, userID uint) (*UserSummary, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %d", userID)
		}
		return nil, err
	}
	return &UserSummary{ID: user.ID, Name: user.Name}, nil
}

// PromoteToAdmin grants the admin role to a user.
func (s *UserService) PromoteToAdmin(ctx context.Context, userID uint) error {
	result := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).Update("role", "admin")
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("user %d", userID)
	}
	return nil
}
