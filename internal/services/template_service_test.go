package services_test

import (
	"testing"

	"pennywise/internal/models"
	"pennywise/internal/services"
	"pennywise/internal/testutil"
)

func TestCreateTemplate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewTemplateService(db)
	ledger := testutil.CreateTestLedger(t, db)

	t.Run("creates with optional prefill fields", func(t *testing.T) {
		tpl, err := svc.CreateTemplate(ledger.ID, services.TemplateCreateFields{
			Name:   "Morning coffee",
			Amount: testutil.Ptr(int64(450)),
			Type:   models.EntryTypeExpense,
			Icon:   "coffee",
		})
		if err != nil {
			t.Fatalf("CreateTemplate failed: %v", err)
		}
		if tpl.UsageCount != 0 {
			t.Errorf("expected usage count 0, got %d", tpl.UsageCount)
		}
		if tpl.LastUsedAt != nil {
			t.Error("expected last_used_at unset")
		}
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := svc.CreateTemplate(ledger.ID, services.TemplateCreateFields{
			Name:   "Broken",
			Amount: testutil.Ptr(int64(0)),
			Type:   models.EntryTypeExpense,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown ledger", func(t *testing.T) {
		_, err := svc.CreateTemplate("missing", services.TemplateCreateFields{
			Name: "Orphan",
			Type: models.EntryTypeExpense,
		})
		testutil.AssertAppError(t, err, "LEDGER_NOT_FOUND")
	})
}

func TestIncrementUsage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewTemplateService(db)
	ledger := testutil.CreateTestLedger(t, db)

	t.Run("bumps count and stamps last used", func(t *testing.T) {
		tpl := testutil.CreateTestTemplate(t, db, ledger.ID, models.EntryTypeExpense)

		if err := svc.IncrementUsage(tpl.ID); err != nil {
			t.Fatalf("IncrementUsage failed: %v", err)
		}
		if err := svc.IncrementUsage(tpl.ID); err != nil {
			t.Fatalf("IncrementUsage failed: %v", err)
		}

		reloaded, err := svc.GetTemplateByID(tpl.ID)
		if err != nil {
			t.Fatalf("GetTemplateByID failed: %v", err)
		}
		if reloaded.UsageCount != 2 {
			t.Errorf("expected usage count 2, got %d", reloaded.UsageCount)
		}
		if reloaded.LastUsedAt == nil {
			t.Error("expected last_used_at set")
		}
	})

	t.Run("unknown template", func(t *testing.T) {
		err := svc.IncrementUsage("missing")
		testutil.AssertAppError(t, err, "TEMPLATE_NOT_FOUND")
	})
}

func TestGetLedgerTemplates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewTemplateService(db)
	ledger := testutil.CreateTestLedger(t, db)

	rare := testutil.CreateTestTemplate(t, db, ledger.ID, models.EntryTypeExpense)
	frequent := testutil.CreateTestTemplate(t, db, ledger.ID, models.EntryTypeExpense)
	for i := 0; i < 3; i++ {
		if err := svc.IncrementUsage(frequent.ID); err != nil {
			t.Fatalf("IncrementUsage failed: %v", err)
		}
	}

	tpls, err := svc.GetLedgerTemplates(ledger.ID)
	if err != nil {
		t.Fatalf("GetLedgerTemplates failed: %v", err)
	}
	if len(tpls) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(tpls))
	}
	if tpls[0].ID != frequent.ID {
		t.Errorf("expected most used template first, got %s", tpls[0].ID)
	}
	_ = rare
}

func TestUpdateTemplate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewTemplateService(db)
	ledger := testutil.CreateTestLedger(t, db)

	t.Run("clearing the amount", func(t *testing.T) {
		tpl, err := svc.CreateTemplate(ledger.ID, services.TemplateCreateFields{
			Name:   "Lunch",
			Amount: testutil.Ptr(int64(1200)),
			Type:   models.EntryTypeExpense,
		})
		if err != nil {
			t.Fatalf("CreateTemplate failed: %v", err)
		}

		var nilAmount *int64
		updated, err := svc.UpdateTemplate(tpl.ID, services.TemplateUpdateFields{
			Amount: &nilAmount,
		})
		if err != nil {
			t.Fatalf("UpdateTemplate failed: %v", err)
		}
		if updated.Amount != nil {
			t.Errorf("expected amount cleared, got %d", *updated.Amount)
		}
	})

	t.Run("unknown template", func(t *testing.T) {
		_, err := svc.UpdateTemplate("missing", services.TemplateUpdateFields{
			Name: testutil.Ptr("x"),
		})
		testutil.AssertAppError(t, err, "TEMPLATE_NOT_FOUND")
	})
}

func TestDeleteTemplate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewTemplateService(db)
	ledger := testutil.CreateTestLedger(t, db)

	t.Run("delete leaves no trace", func(t *testing.T) {
		tpl := testutil.CreateTestTemplate(t, db, ledger.ID, models.EntryTypeIncome)
		if err := svc.DeleteTemplate(tpl.ID); err != nil {
			t.Fatalf("DeleteTemplate failed: %v", err)
		}
		_, err := svc.GetTemplateByID(tpl.ID)
		testutil.AssertAppError(t, err, "TEMPLATE_NOT_FOUND")
	})

	t.Run("unknown template", func(t *testing.T) {
		err := svc.DeleteTemplate("missing")
		testutil.AssertAppError(t, err, "TEMPLATE_NOT_FOUND")
	})
}
