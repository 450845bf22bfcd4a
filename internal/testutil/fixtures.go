package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"pennywise/internal/models"
)

var fixtureCounter int64

func nextN() int64 {
	return atomic.AddInt64(&fixtureCounter, 1)
}

// CreateTestLedger inserts a ledger with a unique name.
func CreateTestLedger(t *testing.T, db *gorm.DB) *models.Ledger {
	t.Helper()
	ledger := models.Ledger{
		Name:  fmt.Sprintf("Ledger %d", nextN()),
		Icon:  "wallet",
		Color: "#3B82F6",
	}
	if err := db.Create(&ledger).Error; err != nil {
		t.Fatalf("failed to create test ledger: %v", err)
	}
	return &ledger
}

// CreateTestAccount inserts an account with the given balance; the
// current balance starts equal to the initial one.
func CreateTestAccount(t *testing.T, db *gorm.DB, ledgerID string, accountType models.AccountType, balance int64) *models.Account {
	t.Helper()
	account := models.Account{
		LedgerID:       ledgerID,
		Name:           fmt.Sprintf("Account %d", nextN()),
		Type:           accountType,
		InitialBalance: balance,
		CurrentBalance: balance,
		IsActive:       true,
	}
	if err := db.Create(&account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return &account
}

// CreateTestPerson inserts a person.
func CreateTestPerson(t *testing.T, db *gorm.DB) *models.Person {
	t.Helper()
	person := models.Person{Name: fmt.Sprintf("Person %d", nextN())}
	if err := db.Create(&person).Error; err != nil {
		t.Fatalf("failed to create test person: %v", err)
	}
	return &person
}

// CreateTestCategory inserts a user category of the given entry type.
func CreateTestCategory(t *testing.T, db *gorm.DB, entryType models.EntryType) *models.Category {
	t.Helper()
	category := models.Category{
		Name: fmt.Sprintf("Category %d", nextN()),
		Type: entryType,
	}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return &category
}

// CreateTestSystemCategory inserts a protected system category.
func CreateTestSystemCategory(t *testing.T, db *gorm.DB, entryType models.EntryType) *models.Category {
	t.Helper()
	category := models.Category{
		Name:     fmt.Sprintf("System Category %d", nextN()),
		Type:     entryType,
		IsSystem: true,
	}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to create test system category: %v", err)
	}
	return &category
}

// CreateTestSubcategory inserts a subcategory under the given category.
func CreateTestSubcategory(t *testing.T, db *gorm.DB, categoryID string) *models.Subcategory {
	t.Helper()
	sub := models.Subcategory{
		CategoryID: categoryID,
		Name:       fmt.Sprintf("Subcategory %d", nextN()),
	}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("failed to create test subcategory: %v", err)
	}
	return &sub
}

// CreateTestTransaction inserts a transaction row directly, without
// applying any balance effect.
func CreateTestTransaction(t *testing.T, db *gorm.DB, ledgerID, accountID string, entryType models.EntryType, amount int64, date string) *models.Transaction {
	t.Helper()
	txn := models.Transaction{
		LedgerID:  ledgerID,
		AccountID: accountID,
		Amount:    amount,
		Type:      entryType,
		Date:      date,
	}
	if err := db.Create(&txn).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return &txn
}

// CreateTestTemplate inserts a transaction template.
func CreateTestTemplate(t *testing.T, db *gorm.DB, ledgerID string, entryType models.EntryType) *models.TransactionTemplate {
	t.Helper()
	tpl := models.TransactionTemplate{
		LedgerID: ledgerID,
		Name:     fmt.Sprintf("Template %d", nextN()),
		Type:     entryType,
	}
	if err := db.Create(&tpl).Error; err != nil {
		t.Fatalf("failed to create test template: %v", err)
	}
	return &tpl
}

// Ptr returns a pointer to v; convenient for optional fixture fields.
func Ptr[T any](v T) *T {
	return &v
}
