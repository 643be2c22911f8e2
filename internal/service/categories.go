package service

import (
	"context"
	"errors"

	"filmmatch/backend/internal/apperr"
	"filmmatch/backend/internal/models"

	"gorm.io/gorm"
)

// CategoryService handles the category catalog.
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// Categories lists all active categories.
func (s *CategoryService) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory adds a category and returns its id.
func (s *CategoryService) CreateCategory(ctx context.Context, name, imageURL string) (uint, error) {
	if name == "" {
		return 0, apperr.Validation("name is required")
	}
	category := models.Category{Name: name, ImageURL: imageURL}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return 0, err
	}
	return category.ID, nil
}

// UpdateCategory replaces a category's fields.
func (s *CategoryService) UpdateCategory(ctx context.Context, categoryID uint, name, imageURL string) error {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("category %d", categoryID)
		}
		return err
	}

	category.Name = name
	category.ImageURL = imageURL
	return s.db.WithContext(ctx).Save(&category).Error
}

// DeleteCategory soft-deletes a category. Its films stop showing up in
// recommendations but keep their history.
func (s *CategoryService) DeleteCategory(ctx context.Context, categoryID uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Category{}, categoryID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("category %d", categoryID)
	}
	return nil
}
