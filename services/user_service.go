package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"inkwell/models"
	"inkwell/utils"
)

// UserService handles registration, login and admin user management.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a UserService.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register creates an account with a bcrypt-hashed password. Emails are
// stored lowercase; a duplicate registers as a conflict.
func (s *UserService) Register(email, password, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("email %q already registered: %w", email, ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         models.RoleUser,
		Active:       true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("email %q already registered: %w", email, ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Login checks credentials case-insensitively on email and rejects inactive
// accounts. Bad email and bad password are indistinguishable to the caller.
func (s *UserService) Login(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}
	if !user.Active {
		return nil, fmt.Errorf("account disabled: %w", ErrUnauthorized)
	}
	return &user, nil
}

// FindAll lists users with offset/limit pagination and a total count.
func (s *UserService) FindAll(page, pageSize int) ([]models.User, int64, error) {
	var total int64
	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	var users []models.User
	err := s.db.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

// FindOne loads a single user.
func (s *UserService) FindOne(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

// UserUpdate carries admin-editable user fields; nil pointers are untouched.
type UserUpdate struct {
	Name   *string
	Role   *string
	Active *bool
}

// Update applies admin edits to a user.
func (s *UserService) Update(id uint, input UserUpdate) (*models.User, error) {
	user, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil {
		if !models.ValidRole(*input.Role) {
			return nil, fmt.Errorf("unknown role %q: %w", *input.Role, ErrConflict)
		}
		user.Role = *input.Role
	}
	if input.Active != nil {
		user.Active = *input.Active
	}
	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Remove hard-deletes a user. Their posts keep the dangling author id.
func (s *UserService) Remove(id uint) error {
	user, err := s.FindOne(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(user).Error; err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
