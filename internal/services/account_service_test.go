package services_test

import (
	"testing"

	"pennywise/internal/models"
	"pennywise/internal/services"
	"pennywise/internal/testutil"
)

func TestCreateAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewAccountService(db)
	ledger := testutil.CreateTestLedger(t, db)

	t.Run("current balance starts at initial balance", func(t *testing.T) {
		account, err := svc.CreateAccount(ledger.ID, services.AccountCreateFields{
			Name:           "Checking",
			Type:           models.AccountTypeDebit,
			InitialBalance: 150000,
		})
		if err != nil {
			t.Fatalf("CreateAccount failed: %v", err)
		}
		if account.CurrentBalance != 150000 {
			t.Errorf("expected current balance 150000, got %d", account.CurrentBalance)
		}
		if !account.IsActive {
			t.Error("expected new account to be active")
		}
	})

	t.Run("rejects unknown account type", func(t *testing.T) {
		_, err := svc.CreateAccount(ledger.ID, services.AccountCreateFields{
			Name: "Broken",
			Type: models.AccountType("savings"),
		})
		testutil.AssertAppError(t, err, "INVALID_ACCOUNT_TYPE")
	})

	t.Run("rejects unknown ledger", func(t *testing.T) {
		_, err := svc.CreateAccount("missing", services.AccountCreateFields{
			Name: "Orphan",
			Type: models.AccountTypeDebit,
		})
		testutil.AssertAppError(t, err, "LEDGER_NOT_FOUND")
	})

	t.Run("owed account linked to a person", func(t *testing.T) {
		person := testutil.CreateTestPerson(t, db)
		account, err := svc.CreateAccount(ledger.ID, services.AccountCreateFields{
			Name:     "Loan to friend",
			Type:     models.AccountTypeOwed,
			PersonID: &person.ID,
		})
		if err != nil {
			t.Fatalf("CreateAccount failed: %v", err)
		}
		if account.PersonID == nil || *account.PersonID != person.ID {
			t.Error("expected account to reference the person")
		}
	})
}

func TestAdjustBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewAccountService(db)
	ledger := testutil.CreateTestLedger(t, db)

	t.Run("applies positive and negative deltas", func(t *testing.T) {
		account := testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 1000)

		if err := svc.AdjustBalance(db, account.ID, -200); err != nil {
			t.Fatalf("AdjustBalance failed: %v", err)
		}
		testutil.AssertBalance(t, db, account.ID, 800)

		if err := svc.AdjustBalance(db, account.ID, 500); err != nil {
			t.Fatalf("AdjustBalance failed: %v", err)
		}
		testutil.AssertBalance(t, db, account.ID, 1300)
	})

	t.Run("balance may go negative", func(t *testing.T) {
		account := testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 100)
		if err := svc.AdjustBalance(db, account.ID, -300); err != nil {
			t.Fatalf("AdjustBalance failed: %v", err)
		}
		testutil.AssertBalance(t, db, account.ID, -200)
	})

	t.Run("unknown account", func(t *testing.T) {
		err := svc.AdjustBalance(db, "missing", 100)
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}

func TestUpdateAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewAccountService(db)
	ledger := testutil.CreateTestLedger(t, db)

	t.Run("initial balance change shifts current balance by the difference", func(t *testing.T) {
		account := testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 1000)
		// Simulate recorded activity: -300 of spending.
		if err := svc.AdjustBalance(db, account.ID, -300); err != nil {
			t.Fatalf("AdjustBalance failed: %v", err)
		}

		updated, err := svc.UpdateAccount(account.ID, services.AccountUpdateFields{
			InitialBalance: testutil.Ptr(int64(1500)),
		})
		if err != nil {
			t.Fatalf("UpdateAccount failed: %v", err)
		}
		if updated.InitialBalance != 1500 {
			t.Errorf("expected initial balance 1500, got %d", updated.InitialBalance)
		}
		// 700 of current balance plus the +500 shift.
		testutil.AssertBalance(t, db, account.ID, 1200)
	})

	t.Run("clearing the person link", func(t *testing.T) {
		person := testutil.CreateTestPerson(t, db)
		account, err := svc.CreateAccount(ledger.ID, services.AccountCreateFields{
			Name:     "Debt",
			Type:     models.AccountTypeDebt,
			PersonID: &person.ID,
		})
		if err != nil {
			t.Fatalf("CreateAccount failed: %v", err)
		}

		var nilPerson *string
		updated, err := svc.UpdateAccount(account.ID, services.AccountUpdateFields{
			PersonID: &nilPerson,
		})
		if err != nil {
			t.Fatalf("UpdateAccount failed: %v", err)
		}
		if updated.PersonID != nil {
			t.Errorf("expected person link cleared, got %v", *updated.PersonID)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := svc.UpdateAccount("missing", services.AccountUpdateFields{
			Name: testutil.Ptr("x"),
		})
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}

func TestDeleteAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewAccountService(db)
	ledger := testutil.CreateTestLedger(t, db)

	t.Run("removes the account and its entries", func(t *testing.T) {
		account := testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 1000)
		testutil.CreateTestTransaction(t, db, ledger.ID, account.ID, models.EntryTypeExpense, 200, "2026-08-01")

		if err := svc.DeleteAccount(account.ID); err != nil {
			t.Fatalf("DeleteAccount failed: %v", err)
		}

		if _, err := svc.GetAccountByID(account.ID); err == nil {
			t.Fatal("expected account to be gone")
		}
		var count int64
		db.Model(&models.Transaction{}).Where("account_id = ?", account.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected transactions deleted, found %d", count)
		}
	})

	t.Run("counterpart keeps its balance when a transfer leg vanishes", func(t *testing.T) {
		from := testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 1000)
		to := testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 0)
		transfers := services.NewTransferService(db, svc)
		if _, err := transfers.CreateTransfer(ledger.ID, services.TransferCreateFields{
			FromAccountID: from.ID,
			ToAccountID:   to.ID,
			Amount:        300,
			Date:          "2026-08-01",
		}); err != nil {
			t.Fatalf("CreateTransfer failed: %v", err)
		}

		if err := svc.DeleteAccount(from.ID); err != nil {
			t.Fatalf("DeleteAccount failed: %v", err)
		}

		var count int64
		db.Model(&models.Transfer{}).Where("to_account_id = ?", to.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected the transfer deleted, found %d", count)
		}
		// The destination is not re-adjusted when the source side goes away.
		testutil.AssertBalance(t, db, to.ID, 300)
	})

	t.Run("unknown account", func(t *testing.T) {
		err := svc.DeleteAccount("missing")
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}

func TestGetBalanceSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewAccountService(db)
	ledger := testutil.CreateTestLedger(t, db)

	t.Run("net worth is assets minus liabilities", func(t *testing.T) {
		testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 100000)
		testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 50000)
		testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeCredit, 20000)
		testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeOwed, 10000)
		testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebt, 5000)

		summary, err := svc.GetBalanceSummary(ledger.ID)
		if err != nil {
			t.Fatalf("GetBalanceSummary failed: %v", err)
		}
		if summary.Debit != 150000 {
			t.Errorf("expected debit 150000, got %d", summary.Debit)
		}
		if summary.NetWorth != 135000 {
			t.Errorf("expected net worth 135000, got %d", summary.NetWorth)
		}
	})

	t.Run("inactive accounts are excluded", func(t *testing.T) {
		other := testutil.CreateTestLedger(t, db)
		account := testutil.CreateTestAccount(t, db, other.ID, models.AccountTypeDebit, 7777)
		if err := svc.DeactivateAccount(account.ID); err != nil {
			t.Fatalf("DeactivateAccount failed: %v", err)
		}

		summary, err := svc.GetBalanceSummary(other.ID)
		if err != nil {
			t.Fatalf("GetBalanceSummary failed: %v", err)
		}
		if summary.Debit != 0 || summary.NetWorth != 0 {
			t.Errorf("expected empty summary, got %+v", summary)
		}
	})

	t.Run("empty ledger yields zero summary", func(t *testing.T) {
		empty := testutil.CreateTestLedger(t, db)
		summary, err := svc.GetBalanceSummary(empty.ID)
		if err != nil {
			t.Fatalf("GetBalanceSummary failed: %v", err)
		}
		if summary.NetWorth != 0 {
			t.Errorf("expected net worth 0, got %d", summary.NetWorth)
		}
	})
}

func TestGetLedgerAccounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewAccountService(db)
	ledger := testutil.CreateTestLedger(t, db)

	active := testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 100)
	inactive := testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 200)
	if err := svc.DeactivateAccount(inactive.ID); err != nil {
		t.Fatalf("DeactivateAccount failed: %v", err)
	}

	t.Run("active only by default", func(t *testing.T) {
		accounts, err := svc.GetLedgerAccounts(ledger.ID, false)
		if err != nil {
			t.Fatalf("GetLedgerAccounts failed: %v", err)
		}
		if len(accounts) != 1 || accounts[0].ID != active.ID {
			t.Errorf("expected only the active account, got %d accounts", len(accounts))
		}
	})

	t.Run("include inactive", func(t *testing.T) {
		accounts, err := svc.GetLedgerAccounts(ledger.ID, true)
		if err != nil {
			t.Fatalf("GetLedgerAccounts failed: %v", err)
		}
		if len(accounts) != 2 {
			t.Errorf("expected 2 accounts, got %d", len(accounts))
		}
	})
}
