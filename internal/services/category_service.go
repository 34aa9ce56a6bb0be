package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "itemvault/internal/errors"
	"itemvault/internal/fieldtype"
	"itemvault/internal/models"
	"itemvault/internal/pagination"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a category schema. Names are unique among live
// categories.
func (s *categoryService) CreateCategory(name, description string, fields []models.CategoryField) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if err := validateCategoryFields(fields); err != nil {
		return nil, err
	}
	if err := s.ensureNameAvailable(name, ""); err != nil {
		return nil, err
	}

	if fields == nil {
		fields = []models.CategoryField{}
	}
	category := &models.Category{
		Name:        name,
		Description: description,
		Fields:      fields,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// ListCategories retrieves a page of categories ordered by name.
func (s *categoryService) ListCategories(page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Category{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := s.db.Order("name ASC").Scopes(pagination.Paginate(page)).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// ListAllCategories returns every live category ordered by name.
func (s *categoryService) ListAllCategories() ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID
func (s *categoryService) GetCategoryByID(id string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory applies the non-nil parts of update. Existing items are not
// revalidated against a changed schema.
func (s *categoryService) UpdateCategory(id string, update CategoryUpdate) (*models.Category, error) {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
		}
		if name != category.Name {
			if err := s.ensureNameAvailable(name, category.ID); err != nil {
				return nil, err
			}
		}
		category.Name = name
	}
	if update.Description != nil {
		category.Description = *update.Description
	}
	if update.Fields != nil {
		if err := validateCategoryFields(update.Fields); err != nil {
			return nil, err
		}
		category.Fields = update.Fields
	}

	if err := s.db.Save(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// DeleteCategory soft-deletes a category. Items keep their category id.
func (s *categoryService) DeleteCategory(id string) error {
	res := s.db.Where("id = ?", id).Delete(&models.Category{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

func (s *categoryService) ensureNameAvailable(name, excludeID string) error {
	q := s.db.Model(&models.Category{}).Where("LOWER(name) = ?", strings.ToLower(name))
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateCategory
	}
	return nil
}

// validateCategoryFields requires non-blank, unique field names and
// registered field types.
func validateCategoryFields(fields []models.CategoryField) error {
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		if strings.TrimSpace(f.Name) == "" {
			return apperrors.WithMessage(apperrors.ErrInvalidCategoryFields, fmt.Sprintf("field %d has no name", i+1))
		}
		if seen[f.Name] {
			return apperrors.WithMessage(apperrors.ErrInvalidCategoryFields, fmt.Sprintf("duplicate field name %q", f.Name))
		}
		seen[f.Name] = true
		if !fieldtype.IsKnown(f.Type) {
			return apperrors.WithMessage(apperrors.ErrInvalidCategoryFields, fmt.Sprintf("field %q has unknown type %q", f.Name, f.Type))
		}
	}
	return nil
}
