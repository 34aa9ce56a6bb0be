package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	apperrors "itemvault/internal/errors"
	"itemvault/internal/fieldtype"
	"itemvault/internal/models"
	"itemvault/internal/pagination"
)

// ItemsPageSize is the default page size of item listings.
const ItemsPageSize = 9

// itemService handles item-related business logic.
type itemService struct {
	db         *gorm.DB
	categories CategoryServicer
}

// NewItemService creates a new ItemServicer.
func NewItemService(db *gorm.DB, categories CategoryServicer) ItemServicer {
	return &itemService{db: db, categories: categories}
}

// CreateItem stores a new item. When categoryID is set the category must
// exist and every required field must have a non-blank value.
func (s *itemService) CreateItem(title, categoryID string, fields models.ItemFields) (*models.Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "item title is required")
	}
	if fields == nil {
		fields = models.ItemFields{}
	}

	if categoryID != "" {
		category, err := s.categories.GetCategoryByID(categoryID)
		if err != nil {
			return nil, err
		}
		if err := checkRequiredFields(category, fields); err != nil {
			return nil, err
		}
	}

	item := &models.Item{Title: title, CategoryID: categoryID}
	item.SetFields(fields)

	if err := s.db.Create(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return item, nil
}

// ListItems returns items newest first, filtered by category and by a
// case-insensitive search over title, field names and field values.
func (s *itemService) ListItems(page pagination.PageRequest, filter ItemFilter) (*pagination.PageResponse[models.Item], error) {
	page.DefaultsWithSize(ItemsPageSize)

	base := s.db.Model(&models.Item{})
	if filter.CategoryID != "" {
		base = base.Where("category_id = ?", filter.CategoryID)
	}

	if filter.Search == "" {
		var totalItems int64
		if err := base.Count(&totalItems).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		var items []models.Item
		if err := base.Order("created_at DESC").Order("id DESC").Scopes(pagination.Paginate(page)).Find(&items).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		result := pagination.NewPageResponse(items, page.Page, page.PageSize, totalItems)
		return &result, nil
	}

	// Field maps are opaque JSON, so search runs in memory.
	var candidates []models.Item
	if err := base.Order("created_at DESC").Order("id DESC").Find(&candidates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	matched := make([]models.Item, 0, len(candidates))
	for i := range candidates {
		if candidates[i].MatchesSearch(filter.Search) {
			matched = append(matched, candidates[i])
		}
	}

	result := pagination.NewPageResponse(pagination.Slice(matched, page), page.Page, page.PageSize, int64(len(matched)))
	return &result, nil
}

// ListAllItems returns every live item, newest first.
func (s *itemService) ListAllItems() ([]models.Item, error) {
	items := []models.Item{}
	if err := s.db.Order("created_at DESC").Order("id DESC").Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return items, nil
}

// GetItemByID retrieves an item by ID
func (s *itemService) GetItemByID(id string) (*models.Item, error) {
	var item models.Item
	if err := s.db.Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &item, nil
}

// UpdateItem applies the non-nil parts of update. Required fields are checked
// against the resulting category; a category that was deleted after the item
// was filed is not enforced.
func (s *itemService) UpdateItem(id string, update ItemUpdate) (*models.Item, error) {
	item, err := s.GetItemByID(id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "item title is required")
		}
		item.Title = title
	}
	if update.Fields != nil {
		item.SetFields(update.Fields)
	}

	categoryChanged := update.CategoryID != nil && *update.CategoryID != item.CategoryID
	if categoryChanged {
		item.CategoryID = *update.CategoryID
	}

	if item.CategoryID != "" && (categoryChanged || update.Fields != nil) {
		category, err := s.categories.GetCategoryByID(item.CategoryID)
		switch {
		case err == nil:
			if err := checkRequiredFields(category, item.FieldValues()); err != nil {
				return nil, err
			}
		case categoryChanged || !errors.Is(err, apperrors.ErrCategoryNotFound):
			return nil, err
		}
	}

	if err := s.db.Save(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return item, nil
}

// DeleteItem soft-deletes an item.
func (s *itemService) DeleteItem(id string) error {
	res := s.db.Where("id = ?", id).Delete(&models.Item{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrItemNotFound
	}
	return nil
}

// GetItemView classifies and formats every field of an item. Field names in
// reveal are shown unmasked. Fields declared by the item's category come first
// in declaration order, followed by the remaining fields sorted by name.
func (s *itemService) GetItemView(id string, reveal map[string]bool) (*ItemView, error) {
	item, err := s.GetItemByID(id)
	if err != nil {
		return nil, err
	}

	view := &ItemView{
		ID:         item.ID,
		Title:      item.Title,
		CategoryID: item.CategoryID,
	}

	var category *models.Category
	if item.CategoryID != "" {
		category, err = s.categories.GetCategoryByID(item.CategoryID)
		if err != nil && !errors.Is(err, apperrors.ErrCategoryNotFound) {
			return nil, err
		}
		if category != nil {
			view.CategoryName = category.Name
		}
	}

	values := item.FieldValues()
	view.Fields = make([]ItemFieldView, 0, len(values))
	for _, name := range orderedFieldNames(category, values) {
		view.Fields = append(view.Fields, BuildFieldView(name, values[name], reveal[name]))
	}
	return view, nil
}

// BuildFieldView classifies name for display and formats raw.
func BuildFieldView(name, raw string, reveal bool) ItemFieldView {
	cf := fieldtype.ClassifyForDisplay(name)
	display := fieldtype.FormatValue(cf, raw, fieldtype.FormatOptions{RevealSecret: reveal})
	return ItemFieldView{
		ClassifiedField: cf,
		Display:         display,
		Masked:          !reveal && isMaskingType(cf),
		InputType:       fieldtype.InputType(cf.Value, reveal),
	}
}

func isMaskingType(cf fieldtype.ClassifiedField) bool {
	switch cf.Value {
	case fieldtype.TypePassword, fieldtype.TypeKey, fieldtype.TypePrivateKey:
		return true
	case fieldtype.TypeWallet:
		return cf.IsSecret
	}
	return false
}

func orderedFieldNames(category *models.Category, values models.ItemFields) []string {
	names := make([]string, 0, len(values))
	declared := make(map[string]bool)
	if category != nil {
		for _, f := range category.Fields {
			if _, ok := values[f.Name]; ok && !declared[f.Name] {
				names = append(names, f.Name)
				declared[f.Name] = true
			}
		}
	}

	var rest []string
	for name := range values {
		if !declared[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func checkRequiredFields(category *models.Category, fields models.ItemFields) error {
	var missing []string
	for _, name := range category.RequiredFieldNames() {
		if strings.TrimSpace(fields[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return apperrors.WithMessage(apperrors.ErrMissingRequiredFields,
			fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
	}
	return nil
}
