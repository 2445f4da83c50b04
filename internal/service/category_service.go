package service

import (
	"regexp"
	"strings"

	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// CategoryService handles category CRUD, validation and the reassignment of
// orphaned expenses on deletion.
type CategoryService struct {
	categoryRepo domain.CategoryRepository
	expenseRepo  domain.ExpenseRepository
	cache        CacheInvalidator
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository, expenseRepo domain.ExpenseRepository, cache CacheInvalidator) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
		cache:        cache,
	}
}

// CreateCategory validates and records a new category
func (s *CategoryService) CreateCategory(name, color, icon string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if err := s.validate(name, color, icon, ""); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.Create(&domain.Category{
		Name:  name,
		Color: color,
		Icon:  icon,
	})
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return category, nil
}

// GetCategory retrieves a single category by ID
func (s *CategoryService) GetCategory(id string) (*domain.Category, error) {
	return s.categoryRepo.GetByID(id)
}

// ListCategories retrieves all categories
func (s *CategoryService) ListCategories() ([]*domain.Category, error) {
	return s.categoryRepo.List()
}

// UpdateCategory validates and applies a category update
func (s *CategoryService) UpdateCategory(id, name, color, icon string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if err := s.validate(name, color, icon, id); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.Update(id, name, color, icon)
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return category, nil
}

// DeleteCategory removes a category after reassigning its expenses to the
// "Other" category, which is created on demand. The "Other" category itself
// cannot be deleted.
func (s *CategoryService) DeleteCategory(id string) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category.IsDefault {
		return domain.ErrDefaultCategory
	}

	other, err := s.ensureOtherCategory()
	if err != nil {
		return err
	}

	moved, err := s.expenseRepo.ReassignCategory(id, other.ID)
	if err != nil {
		return err
	}
	if moved > 0 {
		log.Info().Str("category_id", id).Int64("expenses", moved).Msg("Reassigned expenses to Other")
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *CategoryService) ensureOtherCategory() (*domain.Category, error) {
	other, err := s.categoryRepo.GetByName(domain.OtherCategoryName)
	if err == nil {
		return other, nil
	}
	if err != domain.ErrCategoryNotFound {
		return nil, err
	}
	return s.categoryRepo.Create(&domain.Category{
		Name:      domain.OtherCategoryName,
		Color:     domain.OtherCategoryColor,
		Icon:      domain.OtherCategoryIcon,
		IsDefault: true,
	})
}

// validate checks the category fields; excludeID skips the uniqueness check
// for the category being updated.
func (s *CategoryService) validate(name, color, icon, excludeID string) error {
	if name == "" {
		return domain.ErrNameRequired
	}
	if len(name) > domain.MaxCategoryNameLength {
		return domain.ErrNameTooLong
	}
	if !colorPattern.MatchString(color) {
		return domain.ErrInvalidColor
	}
	if strings.TrimSpace(icon) == "" {
		return domain.ErrIconRequired
	}

	// Names are unique case-insensitively
	categories, err := s.categoryRepo.List()
	if err != nil {
		return err
	}
	for _, cat := range categories {
		if cat.ID != excludeID && strings.EqualFold(cat.Name, name) {
			return domain.ErrCategoryExists
		}
	}
	return nil
}

func (s *CategoryService) invalidate() {
	if s.cache != nil {
		s.cache.InvalidateCache()
	}
}
