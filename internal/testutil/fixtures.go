package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"itemvault/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plaintext password of users created by CreateTestUser.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a uniquely named category with the given fields.
func CreateTestCategory(t *testing.T, db *gorm.DB, fields ...models.CategoryField) *models.Category {
	t.Helper()
	return CreateTestCategoryWithName(t, db, fmt.Sprintf("Test Category %d", nextID()), fields...)
}

// CreateTestCategoryWithName creates a category with the given name and fields.
func CreateTestCategoryWithName(t *testing.T, db *gorm.DB, name string, fields ...models.CategoryField) *models.Category {
	t.Helper()

	if fields == nil {
		fields = []models.CategoryField{}
	}
	category := &models.Category{
		Name:   name,
		Fields: fields,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestItem creates an item in the given category (may be empty).
func CreateTestItem(t *testing.T, db *gorm.DB, categoryID string, fields models.ItemFields) *models.Item {
	t.Helper()
	return CreateTestItemAt(t, db, categoryID, fields, time.Now())
}

// CreateTestItemAt creates an item with an explicit creation time.
func CreateTestItemAt(t *testing.T, db *gorm.DB, categoryID string, fields models.ItemFields, createdAt time.Time) *models.Item {
	t.Helper()

	if fields == nil {
		fields = models.ItemFields{}
	}
	item := &models.Item{
		Title:      fmt.Sprintf("Test Item %d", nextID()),
		CategoryID: categoryID,
	}
	item.SetFields(fields)
	item.CreatedAt = createdAt
	item.UpdatedAt = createdAt
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test item: %v", err)
	}
	return item
}
