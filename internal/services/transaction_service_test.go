package services_test

import (
	"testing"

	"pennywise/internal/models"
	"pennywise/internal/pagination"
	"pennywise/internal/services"
	"pennywise/internal/testutil"
)

func TestCreateTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	accounts := services.NewAccountService(db)
	svc := services.NewTransactionService(db, accounts)
	ledger := testutil.CreateTestLedger(t, db)

	t.Run("expense decreases the account balance", func(t *testing.T) {
		account := testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 1000)

		txn, err := svc.CreateTransaction(ledger.ID, services.TransactionCreateFields{
			AccountID: account.ID,
			Amount:    200,
			Type:      models.EntryTypeExpense,
			Date:      "2026-08-15",
		})
		if err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
		if txn.Amount != 200 {
			t.Errorf("expected stored amount 200, got %d", txn.Amount)
		}
		testutil.AssertBalance(t, db, account.ID, 800)
	})

	t.Run("income increases the account balance", func(t *testing.T) {
		account := testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 1000)

		_, err := svc.CreateTransaction(ledger.ID, services.TransactionCreateFields{
			AccountID: account.ID,
			Amount:    350,
			Type:      models.EntryTypeIncome,
			Date:      "2026-08-15",
		})
		if err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
		testutil.AssertBalance(t, db, account.ID, 1350)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		account := testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 1000)

		_, err := svc.CreateTransaction(ledger.ID, services.TransactionCreateFields{
			AccountID: account.ID,
			Amount:    0,
			Type:      models.EntryTypeExpense,
			Date:      "2026-08-15",
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		testutil.AssertBalance(t, db, account.ID, 1000)
	})

	t.Run("rejects unknown entry type", func(t *testing.T) {
		account := testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 1000)

		_, err := svc.CreateTransaction(ledger.ID, services.TransactionCreateFields{
			AccountID: account.ID,
			Amount:    100,
			Type:      models.EntryType("refund"),
			Date:      "2026-08-15",
		})
		testutil.AssertAppError(t, err, "INVALID_ENTRY_TYPE")
	})

	t.Run("unknown account leaves nothing behind", func(t *testing.T) {
		_, err := svc.CreateTransaction(ledger.ID, services.TransactionCreateFields{
			AccountID: "missing",
			Amount:    100,
			Type:      models.EntryTypeExpense,
			Date:      "2026-08-15",
		})
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")

		var count int64
		db.Model(&models.Transaction{}).Where("account_id = ?", "missing").Count(&count)
		if count != 0 {
			t.Errorf("expected no transaction rows, found %d", count)
		}
	})

	t.Run("unknown category rolls back the whole creation", func(t *testing.T) {
		account := testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 1000)

		_, err := svc.CreateTransaction(ledger.ID, services.TransactionCreateFields{
			AccountID:  account.ID,
			CategoryID: testutil.Ptr("missing"),
			Amount:     100,
			Type:       models.EntryTypeExpense,
			Date:       "2026-08-15",
		})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
		testutil.AssertBalance(t, db, account.ID, 1000)
	})
}

func TestUpdateTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	accounts := services.NewAccountService(db)
	svc := services.NewTransactionService(db, accounts)
	ledger := testutil.CreateTestLedger(t, db)

	t.Run("amount change reverses then reapplies", func(t *testing.T) {
		account := testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 1000)
		txn, err := svc.CreateTransaction(ledger.ID, services.TransactionCreateFields{
			AccountID: account.ID,
			Amount:    200,
			Type:      models.EntryTypeExpense,
			Date:      "2026-08-15",
		})
		if err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
		testutil.AssertBalance(t, db, account.ID, 800)

		_, err = svc.UpdateTransaction(txn.ID, services.TransactionUpdateFields{
			Amount: testutil.Ptr(int64(50)),
		})
		if err != nil {
			t.Fatalf("UpdateTransaction failed: %v", err)
		}
		testutil.AssertBalance(t, db, account.ID, 950)
	})

	t.Run("type flip swings the balance both ways", func(t *testing.T) {
		account := testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 1000)
		txn, err := svc.CreateTransaction(ledger.ID, services.TransactionCreateFields{
			AccountID: account.ID,
			Amount:    300,
			Type:      models.EntryTypeExpense,
			Date:      "2026-08-15",
		})
		if err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
		testutil.AssertBalance(t, db, account.ID, 700)

		income := models.EntryTypeIncome
		_, err = svc.UpdateTransaction(txn.ID, services.TransactionUpdateFields{
			Type: &income,
		})
		if err != nil {
			t.Fatalf("UpdateTransaction failed: %v", err)
		}
		testutil.AssertBalance(t, db, account.ID, 1300)
	})

	t.Run("moving to another account shifts both balances", func(t *testing.T) {
		first := testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 1000)
		second := testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 1000)
		txn, err := svc.CreateTransaction(ledger.ID, services.TransactionCreateFields{
			AccountID: first.ID,
			Amount:    400,
			Type:      models.EntryTypeExpense,
			Date:      "2026-08-15",
		})
		if err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}

		_, err = svc.UpdateTransaction(txn.ID, services.TransactionUpdateFields{
			AccountID: &second.ID,
		})
		if err != nil {
			t.Fatalf("UpdateTransaction failed: %v", err)
		}
		testutil.AssertBalance(t, db, first.ID, 1000)
		testutil.AssertBalance(t, db, second.ID, 600)
	})

	t.Run("clearing the category", func(t *testing.T) {
		account := testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 1000)
		category := testutil.CreateTestCategory(t, db, models.EntryTypeExpense)
		txn, err := svc.CreateTransaction(ledger.ID, services.TransactionCreateFields{
			AccountID:  account.ID,
			CategoryID: &category.ID,
			Amount:     100,
			Type:       models.EntryTypeExpense,
			Date:       "2026-08-15",
		})
		if err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}

		var nilID *string
		updated, err := svc.UpdateTransaction(txn.ID, services.TransactionUpdateFields{
			CategoryID: &nilID,
		})
		if err != nil {
			t.Fatalf("UpdateTransaction failed: %v", err)
		}
		if updated.CategoryID != nil {
			t.Errorf("expected category cleared, got %v", *updated.CategoryID)
		}
		testutil.AssertBalance(t, db, account.ID, 900)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		_, err := svc.UpdateTransaction("missing", services.TransactionUpdateFields{
			Amount: testutil.Ptr(int64(10)),
		})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestDeleteTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	accounts := services.NewAccountService(db)
	svc := services.NewTransactionService(db, accounts)
	ledger := testutil.CreateTestLedger(t, db)

	t.Run("restores the balance exactly", func(t *testing.T) {
		account := testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 1000)
		txn, err := svc.CreateTransaction(ledger.ID, services.TransactionCreateFields{
			AccountID: account.ID,
			Amount:    200,
			Type:      models.EntryTypeExpense,
			Date:      "2026-08-15",
		})
		if err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
		testutil.AssertBalance(t, db, account.ID, 800)

		if err := svc.DeleteTransaction(txn.ID); err != nil {
			t.Fatalf("DeleteTransaction failed: %v", err)
		}
		testutil.AssertBalance(t, db, account.ID, 1000)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		err := svc.DeleteTransaction("missing")
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestGetLedgerTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	accounts := services.NewAccountService(db)
	svc := services.NewTransactionService(db, accounts)
	ledger := testutil.CreateTestLedger(t, db)
	account := testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 100000)

	seed := []struct {
		date   string
		amount int64
		typ    models.EntryType
	}{
		{"2026-08-01", 100, models.EntryTypeExpense},
		{"2026-08-02", 200, models.EntryTypeIncome},
		{"2026-08-03", 300, models.EntryTypeExpense},
	}
	for _, s := range seed {
		if _, err := svc.CreateTransaction(ledger.ID, services.TransactionCreateFields{
			AccountID: account.ID,
			Amount:    s.amount,
			Type:      s.typ,
			Date:      s.date,
		}); err != nil {
			t.Fatalf("seed CreateTransaction failed: %v", err)
		}
	}

	t.Run("newest first", func(t *testing.T) {
		page, err := svc.GetLedgerTransactions(ledger.ID, pagination.PageRequest{}, services.TransactionFilter{})
		if err != nil {
			t.Fatalf("GetLedgerTransactions failed: %v", err)
		}
		if page.TotalItems != 3 {
			t.Fatalf("expected 3 transactions, got %d", page.TotalItems)
		}
		if page.Data[0].Date != "2026-08-03" {
			t.Errorf("expected newest first, got %s", page.Data[0].Date)
		}
	})

	t.Run("date range filter", func(t *testing.T) {
		page, err := svc.GetLedgerTransactions(ledger.ID, pagination.PageRequest{}, services.TransactionFilter{
			StartDate: testutil.Ptr("2026-08-02"),
			EndDate:   testutil.Ptr("2026-08-02"),
		})
		if err != nil {
			t.Fatalf("GetLedgerTransactions failed: %v", err)
		}
		if page.TotalItems != 1 || page.Data[0].Date != "2026-08-02" {
			t.Errorf("expected exactly the 2026-08-02 transaction, got %d items", page.TotalItems)
		}
	})

	t.Run("type filter", func(t *testing.T) {
		income := models.EntryTypeIncome
		page, err := svc.GetLedgerTransactions(ledger.ID, pagination.PageRequest{}, services.TransactionFilter{
			Type: &income,
		})
		if err != nil {
			t.Fatalf("GetLedgerTransactions failed: %v", err)
		}
		if page.TotalItems != 1 {
			t.Errorf("expected 1 income transaction, got %d", page.TotalItems)
		}
	})

	t.Run("pagination caps the page", func(t *testing.T) {
		page, err := svc.GetLedgerTransactions(ledger.ID, pagination.PageRequest{Page: 1, PageSize: 2}, services.TransactionFilter{})
		if err != nil {
			t.Fatalf("GetLedgerTransactions failed: %v", err)
		}
		if len(page.Data) != 2 || page.TotalPages != 2 {
			t.Errorf("expected 2 items over 2 pages, got %d items over %d pages", len(page.Data), page.TotalPages)
		}
	})
}

func TestGetTransactionsByDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	accounts := services.NewAccountService(db)
	svc := services.NewTransactionService(db, accounts)
	ledger := testutil.CreateTestLedger(t, db)
	account := testutil.CreateTestAccount(t, db, ledger.ID, models.AccountTypeDebit, 100000)

	for _, tm := range []string{"09:00", "18:30"} {
		if _, err := svc.CreateTransaction(ledger.ID, services.TransactionCreateFields{
			AccountID: account.ID,
			Amount:    100,
			Type:      models.EntryTypeExpense,
			Date:      "2026-08-10",
			Time:      testutil.Ptr(tm),
		}); err != nil {
			t.Fatalf("seed CreateTransaction failed: %v", err)
		}
	}

	txns, err := svc.GetTransactionsByDate(ledger.ID, "2026-08-10")
	if err != nil {
		t.Fatalf("GetTransactionsByDate failed: %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txns))
	}
	if *txns[0].Time != "18:30" {
		t.Errorf("expected latest time first, got %s", *txns[0].Time)
	}
}
