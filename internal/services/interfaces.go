package services

import (
	"itemvault/internal/dashboard"
	"itemvault/internal/fieldtype"
	"itemvault/internal/models"
	"itemvault/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
	ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	DeleteUser(id string) error
}

// CategoryUpdate holds the optional changes for UpdateCategory. Nil pointers
// and a nil Fields slice leave the stored value untouched.
type CategoryUpdate struct {
	Name        *string
	Description *string
	Fields      []models.CategoryField
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(name, description string, fields []models.CategoryField) (*models.Category, error)
	ListCategories(page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	ListAllCategories() ([]models.Category, error)
	GetCategoryByID(id string) (*models.Category, error)
	UpdateCategory(id string, update CategoryUpdate) (*models.Category, error)
	DeleteCategory(id string) error
}

// ItemFilter narrows ListItems. Empty values disable a filter.
type ItemFilter struct {
	CategoryID string
	Search     string
}

// ItemUpdate holds the optional changes for UpdateItem. A nil Fields map
// leaves the stored fields untouched; a non-nil map replaces them.
type ItemUpdate struct {
	Title      *string
	CategoryID *string
	Fields     models.ItemFields
}

// ItemFieldView is one field of an item prepared for display.
type ItemFieldView struct {
	fieldtype.ClassifiedField
	Display   string `json:"display"`
	Masked    bool   `json:"masked"`
	InputType string `json:"inputType"`
}

// ItemView is an item with every field classified and formatted. Raw values
// of masked fields are not included.
type ItemView struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	Fields       []ItemFieldView `json:"fields"`
}

// ItemServicer defines the contract for item-related business logic.
type ItemServicer interface {
	CreateItem(title, categoryID string, fields models.ItemFields) (*models.Item, error)
	ListItems(page pagination.PageRequest, filter ItemFilter) (*pagination.PageResponse[models.Item], error)
	ListAllItems() ([]models.Item, error)
	GetItemByID(id string) (*models.Item, error)
	UpdateItem(id string, update ItemUpdate) (*models.Item, error)
	DeleteItem(id string) error
	GetItemView(id string, reveal map[string]bool) (*ItemView, error)
}

// DashboardServicer defines the contract for dashboard aggregates.
type DashboardServicer interface {
	GetOverview() (*dashboard.Aggregates, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
