package services_test

import (
	"testing"

	"pennywise/internal/models"
	"pennywise/internal/services"
	"pennywise/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewCategoryService(db)

	t.Run("creates a user category", func(t *testing.T) {
		category, err := svc.CreateCategory("Groceries", "cart", "#22C55E", models.EntryTypeExpense, 1)
		if err != nil {
			t.Fatalf("CreateCategory failed: %v", err)
		}
		if category.IsSystem {
			t.Error("user-created categories must not be system categories")
		}
	})

	t.Run("rejects unknown entry type", func(t *testing.T) {
		_, err := svc.CreateCategory("Broken", "", "", models.EntryType("both"), 0)
		testutil.AssertAppError(t, err, "INVALID_ENTRY_TYPE")
	})
}

func TestDeleteCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewCategoryService(db)
	ledger := testutil.CreateTestLedger(t, db)
	account := testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 1000)

	t.Run("system categories are protected", func(t *testing.T) {
		system := testutil.CreateTestSystemCategory(t, db, models.EntryTypeExpense)
		err := svc.DeleteCategory(system.ID)
		testutil.AssertAppError(t, err, "PROTECTED_ENTITY")

		if _, err := svc.GetCategoryByID(system.ID); err != nil {
			t.Errorf("expected system category to survive, got %v", err)
		}
	})

	t.Run("delete detaches transactions instead of deleting them", func(t *testing.T) {
		category := testutil.CreateTestCategory(t, db, models.EntryTypeExpense)
		sub := testutil.CreateTestSubcategory(t, db, category.ID)

		txn := testutil.CreateTestTransaction(t, db, ledger.ID, account.ID, models.EntryTypeExpense, 100, "2026-08-01")
		db.Model(txn).Updates(map[string]interface{}{"category_id": category.ID, "subcategory_id": sub.ID})

		if err := svc.DeleteCategory(category.ID); err != nil {
			t.Fatalf("DeleteCategory failed: %v", err)
		}

		var reloaded models.Transaction
		if err := db.First(&reloaded, "id = ?", txn.ID).Error; err != nil {
			t.Fatalf("transaction should survive category deletion: %v", err)
		}
		if reloaded.CategoryID != nil || reloaded.SubcategoryID != nil {
			t.Error("expected category and subcategory references cleared")
		}

		var subCount int64
		db.Model(&models.Subcategory{}).Where("category_id = ?", category.ID).Count(&subCount)
		if subCount != 0 {
			t.Errorf("expected subcategories cascade-deleted, found %d", subCount)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		err := svc.DeleteCategory("missing")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestGetCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewCategoryService(db)

	expense := testutil.CreateTestCategory(t, db, models.EntryTypeExpense)
	testutil.CreateTestCategory(t, db, models.EntryTypeIncome)
	testutil.CreateTestSubcategory(t, db, expense.ID)

	t.Run("filter by entry type", func(t *testing.T) {
		expenseType := models.EntryTypeExpense
		categories, err := svc.GetCategories(&expenseType)
		if err != nil {
			t.Fatalf("GetCategories failed: %v", err)
		}
		if len(categories) != 1 {
			t.Fatalf("expected 1 expense category, got %d", len(categories))
		}
		if len(categories[0].Subcategories) != 1 {
			t.Errorf("expected subcategories preloaded, got %d", len(categories[0].Subcategories))
		}
	})

	t.Run("no filter returns everything", func(t *testing.T) {
		categories, err := svc.GetCategories(nil)
		if err != nil {
			t.Fatalf("GetCategories failed: %v", err)
		}
		if len(categories) != 2 {
			t.Errorf("expected 2 categories, got %d", len(categories))
		}
	})
}

func TestSubcategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewCategoryService(db)
	ledger := testutil.CreateTestLedger(t, db)
	account := testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 1000)

	t.Run("create requires an existing category", func(t *testing.T) {
		_, err := svc.CreateSubcategory("missing", "Orphan", nil, 0)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("create under a system category is allowed", func(t *testing.T) {
		system := testutil.CreateTestSystemCategory(t, db, models.EntryTypeExpense)
		sub, err := svc.CreateSubcategory(system.ID, "Coffee", nil, 1)
		if err != nil {
			t.Fatalf("CreateSubcategory failed: %v", err)
		}
		if sub.CategoryID != system.ID {
			t.Errorf("expected subcategory under %s, got %s", system.ID, sub.CategoryID)
		}
	})

	t.Run("delete clears transaction references", func(t *testing.T) {
		category := testutil.CreateTestCategory(t, db, models.EntryTypeExpense)
		sub := testutil.CreateTestSubcategory(t, db, category.ID)
		txn := testutil.CreateTestTransaction(t, db, ledger.ID, account.ID, models.EntryTypeExpense, 100, "2026-08-01")
		db.Model(txn).Updates(map[string]interface{}{"category_id": category.ID, "subcategory_id": sub.ID})

		if err := svc.DeleteSubcategory(sub.ID); err != nil {
			t.Fatalf("DeleteSubcategory failed: %v", err)
		}

		var reloaded models.Transaction
		db.First(&reloaded, "id = ?", txn.ID)
		if reloaded.SubcategoryID != nil {
			t.Error("expected subcategory reference cleared")
		}
		if reloaded.CategoryID == nil {
			t.Error("expected category reference untouched")
		}
	})

	t.Run("unknown subcategory", func(t *testing.T) {
		err := svc.DeleteSubcategory("missing")
		testutil.AssertAppError(t, err, "SUBCATEGORY_NOT_FOUND")
	})
}
