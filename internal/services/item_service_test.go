package services

import (
	"strings"
	"testing"
	"time"

	"itemvault/internal/fieldtype"
	"itemvault/internal/models"
	"itemvault/internal/pagination"
	"itemvault/internal/testutil"

	"gorm.io/gorm"
)

func newItemService(db *gorm.DB) ItemServicer {
	return NewItemService(db, NewCategoryService(db))
}

func TestCreateItem(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newItemService(db)
		cat := testutil.CreateTestCategory(t, db, loginFields()...)

		item, err := svc.CreateItem("GitHub", cat.ID, models.ItemFields{"Username": "octo", "Password": "hunter2"})
		testutil.AssertNoError(t, err)

		if item.ID == "" {
			t.Fatal("expected item ID to be set")
		}
		if item.CreatedAt.IsZero() {
			t.Error("expected created_at to be set")
		}

		loaded, err := svc.GetItemByID(item.ID)
		testutil.AssertNoError(t, err)
		if loaded.FieldValues()["Password"] != "hunter2" {
			t.Errorf("expected fields to round-trip, got %v", loaded.FieldValues())
		}
	})

	t.Run("without_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newItemService(db)

		item, err := svc.CreateItem("Loose note", "", nil)
		testutil.AssertNoError(t, err)
		if item.CategoryID != "" {
			t.Errorf("expected empty category id, got %q", item.CategoryID)
		}
	})

	t.Run("unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newItemService(db)

		_, err := svc.CreateItem("Orphan", "0190f3a8-0000-7000-8000-000000000000", nil)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("missing_required_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newItemService(db)
		cat := testutil.CreateTestCategory(t, db, loginFields()...)

		_, err := svc.CreateItem("GitHub", cat.ID, models.ItemFields{"Username": "octo", "Password": "  "})
		testutil.AssertAppError(t, err, "MISSING_REQUIRED_FIELDS")
	})

	t.Run("empty_title", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newItemService(db)

		_, err := svc.CreateItem("", "", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("opaque_field_names_round_trip", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newItemService(db)

		fields := models.ItemFields{" Spaced Key ": "value\nwith newline", "ünï": "\"quoted\"", "": "empty name"}
		item, err := svc.CreateItem("Odd", "", fields)
		testutil.AssertNoError(t, err)

		loaded, err := svc.GetItemByID(item.ID)
		testutil.AssertNoError(t, err)
		for k, v := range fields {
			if loaded.FieldValues()[k] != v {
				t.Errorf("field %q: expected %q, got %q", k, v, loaded.FieldValues()[k])
			}
		}
	})
}

func TestListItems(t *testing.T) {
	t.Run("newest_first_with_default_page_size", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newItemService(db)

		base := time.Now().Add(-time.Hour)
		var newest *models.Item
		for i := 0; i < 12; i++ {
			newest = testutil.CreateTestItemAt(t, db, "", nil, base.Add(time.Duration(i)*time.Minute))
		}

		result, err := svc.ListItems(pagination.PageRequest{}, ItemFilter{})
		testutil.AssertNoError(t, err)

		if result.PageSize != ItemsPageSize || len(result.Data) != ItemsPageSize {
			t.Errorf("expected %d items on first page, got %d", ItemsPageSize, len(result.Data))
		}
		if result.TotalItems != 12 || result.TotalPages != 2 {
			t.Errorf("expected 12 items over 2 pages, got %d over %d", result.TotalItems, result.TotalPages)
		}
		if result.Data[0].ID != newest.ID {
			t.Errorf("expected newest item first, got %s", result.Data[0].ID)
		}
	})

	t.Run("filter_by_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newItemService(db)

		a := testutil.CreateTestCategory(t, db)
		b := testutil.CreateTestCategory(t, db)
		testutil.CreateTestItem(t, db, a.ID, nil)
		testutil.CreateTestItem(t, db, a.ID, nil)
		testutil.CreateTestItem(t, db, b.ID, nil)

		result, err := svc.ListItems(pagination.PageRequest{}, ItemFilter{CategoryID: a.ID})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Errorf("expected 2 items in category, got %d", result.TotalItems)
		}
		for _, it := range result.Data {
			if it.CategoryID != a.ID {
				t.Errorf("unexpected item from category %s", it.CategoryID)
			}
		}
	})

	t.Run("search_matches_title_and_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newItemService(db)

		_, err := svc.CreateItem("Prod Database", "", models.ItemFields{"Host": "db.internal"})
		testutil.AssertNoError(t, err)
		_, err = svc.CreateItem("Router", "", models.ItemFields{"Admin URL": "http://192.168.1.1"})
		testutil.AssertNoError(t, err)
		_, err = svc.CreateItem("Email", "", models.ItemFields{"Server": "DATABASE-mail"})
		testutil.AssertNoError(t, err)

		result, err := svc.ListItems(pagination.PageRequest{Page: 1, PageSize: 1}, ItemFilter{Search: "database"})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 || result.TotalPages != 2 {
			t.Errorf("expected 2 matches over 2 pages, got %d over %d", result.TotalItems, result.TotalPages)
		}
		if len(result.Data) != 1 {
			t.Fatalf("expected 1 item on page, got %d", len(result.Data))
		}

		result, err = svc.ListItems(pagination.PageRequest{Page: 5, PageSize: 1}, ItemFilter{Search: "database"})
		testutil.AssertNoError(t, err)
		if result.Data == nil || len(result.Data) != 0 {
			t.Errorf("expected empty non-nil page past the end, got %v", result.Data)
		}
	})

	t.Run("soft_deleted_items_hidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newItemService(db)

		item := testutil.CreateTestItem(t, db, "", nil)
		testutil.CreateTestItem(t, db, "", nil)
		testutil.AssertNoError(t, svc.DeleteItem(item.ID))

		all, err := svc.ListAllItems()
		testutil.AssertNoError(t, err)
		if len(all) != 1 {
			t.Errorf("expected 1 live item, got %d", len(all))
		}
	})
}

func TestUpdateItem(t *testing.T) {
	t.Run("title_and_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newItemService(db)
		cat := testutil.CreateTestCategory(t, db, loginFields()...)

		item, err := svc.CreateItem("GitHub", cat.ID, models.ItemFields{"Username": "octo", "Password": "a"})
		testutil.AssertNoError(t, err)

		updated, err := svc.UpdateItem(item.ID, ItemUpdate{
			Title:  strPtr("GitHub Enterprise"),
			Fields: models.ItemFields{"Username": "octo", "Password": "b"},
		})
		testutil.AssertNoError(t, err)

		if updated.Title != "GitHub Enterprise" || updated.FieldValues()["Password"] != "b" {
			t.Errorf("unexpected update result: %+v", updated)
		}
		if updated.UpdatedAt.Before(item.UpdatedAt) {
			t.Error("expected updated_at to move forward")
		}
	})

	t.Run("fields_violate_required", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newItemService(db)
		cat := testutil.CreateTestCategory(t, db, loginFields()...)

		item, err := svc.CreateItem("GitHub", cat.ID, models.ItemFields{"Username": "octo", "Password": "a"})
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateItem(item.ID, ItemUpdate{Fields: models.ItemFields{"Username": "octo"}})
		testutil.AssertAppError(t, err, "MISSING_REQUIRED_FIELDS")
	})

	t.Run("move_to_unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newItemService(db)
		item := testutil.CreateTestItem(t, db, "", nil)

		_, err := svc.UpdateItem(item.ID, ItemUpdate{CategoryID: strPtr("0190f3a8-0000-7000-8000-000000000000")})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("deleted_category_not_enforced", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newItemService(db)
		cat := testutil.CreateTestCategory(t, db, loginFields()...)
		item := testutil.CreateTestItem(t, db, cat.ID, models.ItemFields{"Username": "u", "Password": "p"})
		testutil.AssertNoError(t, NewCategoryService(db).DeleteCategory(cat.ID))

		_, err := svc.UpdateItem(item.ID, ItemUpdate{Fields: models.ItemFields{"Notes": "archived"}})
		testutil.AssertNoError(t, err)
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newItemService(db)

		_, err := svc.UpdateItem("0190f3a8-0000-7000-8000-000000000000", ItemUpdate{Title: strPtr("x")})
		testutil.AssertAppError(t, err, "ITEM_NOT_FOUND")
	})
}

func TestDeleteItem_not_found(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newItemService(db)

	err := svc.DeleteItem("0190f3a8-0000-7000-8000-000000000000")
	testutil.AssertAppError(t, err, "ITEM_NOT_FOUND")
}

func TestGetItemView(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newItemService(db)
	cat := testutil.CreateTestCategoryWithName(t, db, "Logins", loginFields()...)

	item, err := svc.CreateItem("GitHub", cat.ID, models.ItemFields{
		"Username":     "octo",
		"Password":     "hunter2",
		"Website":      "https://github.com/login",
		"Backup Phone": "555-123-4567",
		"API Token":    "ghp_abc",
	})
	testutil.AssertNoError(t, err)

	t.Run("masked_by_default", func(t *testing.T) {
		view, err := svc.GetItemView(item.ID, nil)
		testutil.AssertNoError(t, err)

		if view.CategoryName != "Logins" {
			t.Errorf("expected category name Logins, got %q", view.CategoryName)
		}

		var names []string
		byName := map[string]ItemFieldView{}
		for _, f := range view.Fields {
			names = append(names, f.FieldName)
			byName[f.FieldName] = f
		}
		wantOrder := "Username,Password,Website,API Token,Backup Phone"
		if strings.Join(names, ",") != wantOrder {
			t.Errorf("expected field order %s, got %s", wantOrder, strings.Join(names, ","))
		}

		pw := byName["Password"]
		if !pw.Masked || pw.Display != strings.Repeat("•", 8) || !pw.IsSecret {
			t.Errorf("expected masked password, got %+v", pw)
		}
		if pw.InputType != "password" {
			t.Errorf("expected password input type, got %q", pw.InputType)
		}
		if got := byName["Website"].Display; got != "github.com/login" {
			t.Errorf("expected formatted URL, got %q", got)
		}
		if got := byName["Backup Phone"].Display; got != "555 123 4567" {
			t.Errorf("expected formatted phone, got %q", got)
		}
		if byName["Username"].Value != fieldtype.TypeUsername || byName["Username"].Masked {
			t.Errorf("unexpected username view: %+v", byName["Username"])
		}
	})

	t.Run("reveal_selected_fields", func(t *testing.T) {
		view, err := svc.GetItemView(item.ID, map[string]bool{"Password": true})
		testutil.AssertNoError(t, err)

		for _, f := range view.Fields {
			switch f.FieldName {
			case "Password":
				if f.Masked || f.Display != "hunter2" || f.InputType != "text" {
					t.Errorf("expected revealed password, got %+v", f)
				}
			case "API Token":
				if !f.Masked {
					t.Error("expected API Token to stay masked")
				}
			}
		}
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := svc.GetItemView("0190f3a8-0000-7000-8000-000000000000", nil)
		testutil.AssertAppError(t, err, "ITEM_NOT_FOUND")
	})
}
