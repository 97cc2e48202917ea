package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"inkwell/models"
)

// CategoryService handles category CRUD. Category slugs reuse the Slugify
// transform but are never uniqueness-checked; duplicates are possible.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// Create stores a category with a slug derived from its name.
func (s *CategoryService) Create(name, description string) (*models.Category, error) {
	category := models.Category{
		Name:        name,
		Slug:        Slugify(name),
		Description: description,
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

// FindAll lists categories alphabetically.
func (s *CategoryService) FindAll() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// FindOne loads a single category.
func (s *CategoryService) FindOne(id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("load category: %w", err)
	}
	return &category, nil
}

// Update renames and/or re-describes a category; a new name re-derives the slug.
func (s *CategoryService) Update(id uint, name, description string) (*models.Category, error) {
	category, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		category.Name = name
		category.Slug = Slugify(name)
	}
	if description != "" {
		category.Description = description
	}
	if err := s.db.Save(category).Error; err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

// Remove deletes a category and its post join rows.
func (s *CategoryService) Remove(id uint) error {
	category, err := s.FindOne(id)
	if err != nil {
		return err
	}
	if err := s.db.Where("category_id = ?", id).
		Delete(&models.PostCategory{}).Error; err != nil {
		return fmt.Errorf("delete category joins: %w", err)
	}
	if err := s.db.Delete(category).Error; err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
