package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"inkwell/models"
)

// TagService handles tag CRUD. Like categories, tag slugs are derived with
// no uniqueness check.
type TagService struct {
	db *gorm.DB
}

// NewTagService creates a TagService.
func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

// Create stores a tag with a slug derived from its name.
func (s *TagService) Create(name string) (*models.Tag, error) {
	tag := models.Tag{Name: name, Slug: Slugify(name)}
	if err := s.db.Create(&tag).Error; err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return &tag, nil
}

// FindAll lists tags alphabetically.
func (s *TagService) FindAll() ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// FindOne loads a single tag.
func (s *TagService) FindOne(id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tag %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("load tag: %w", err)
	}
	return &tag, nil
}

// Update renames a tag, re-deriving the slug.
func (s *TagService) Update(id uint, name string) (*models.Tag, error) {
	tag, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		tag.Name = name
		tag.Slug = Slugify(name)
	}
	if err := s.db.Save(tag).Error; err != nil {
		return nil, fmt.Errorf("update tag: %w", err)
	}
	return tag, nil
}

// Remove deletes a tag.
func (s *TagService) Remove(id uint) error {
	tag, err := s.FindOne(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(tag).Error; err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
