package services_test

import (
	"testing"

	"pennywise/internal/services"
	"pennywise/internal/testutil"
)

func TestPreferences(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewPreferenceService(db)

	t.Run("unset key reads as empty", func(t *testing.T) {
		value, err := svc.Get("nonexistent")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if value != "" {
			t.Errorf("expected empty value, got %q", value)
		}
	})

	t.Run("set then overwrite", func(t *testing.T) {
		if err := svc.Set("k", "v1"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := svc.Set("k", "v2"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		value, err := svc.Get("k")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if value != "v2" {
			t.Errorf("expected v2, got %q", value)
		}
	})

	t.Run("theme defaults to system and validates input", func(t *testing.T) {
		mode, err := svc.ThemeMode()
		if err != nil {
			t.Fatalf("ThemeMode failed: %v", err)
		}
		if mode != "system" {
			t.Errorf("expected system, got %q", mode)
		}

		testutil.AssertAppError(t, svc.SetThemeMode("neon"), "INVALID_INPUT")

		if err := svc.SetThemeMode("dark"); err != nil {
			t.Fatalf("SetThemeMode failed: %v", err)
		}
		mode, _ = svc.ThemeMode()
		if mode != "dark" {
			t.Errorf("expected dark, got %q", mode)
		}
	})
}

func TestActiveLedger(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewPreferenceService(db)
	ledgers := services.NewLedgerService(db)

	t.Run("falls back to the default ledger", func(t *testing.T) {
		def, err := ledgers.CreateLedger("Default", nil, "", "")
		if err != nil {
			t.Fatalf("CreateLedger failed: %v", err)
		}

		id, err := svc.ActiveLedgerID()
		if err != nil {
			t.Fatalf("ActiveLedgerID failed: %v", err)
		}
		if id != def.ID {
			t.Errorf("expected default ledger %s, got %s", def.ID, id)
		}
	})

	t.Run("explicit choice wins", func(t *testing.T) {
		other, err := ledgers.CreateLedger("Other", nil, "", "")
		if err != nil {
			t.Fatalf("CreateLedger failed: %v", err)
		}
		if err := svc.SetActiveLedger(other.ID); err != nil {
			t.Fatalf("SetActiveLedger failed: %v", err)
		}

		id, err := svc.ActiveLedgerID()
		if err != nil {
			t.Fatalf("ActiveLedgerID failed: %v", err)
		}
		if id != other.ID {
			t.Errorf("expected %s, got %s", other.ID, id)
		}
	})

	t.Run("rejects unknown ledger", func(t *testing.T) {
		testutil.AssertAppError(t, svc.SetActiveLedger("missing"), "LEDGER_NOT_FOUND")
	})
}
