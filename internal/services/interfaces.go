package services

import (
	"gorm.io/gorm"

	"pennywise/internal/models"
	"pennywise/internal/pagination"
)

// Update-field structs implement partial-update-by-presence semantics.
// A single pointer (*T) means "set when present"; a double pointer
// (**T) distinguishes absent (outer nil, leave untouched), set-null
// (inner nil) and set-value for nullable columns.

// LedgerUpdateFields holds optional patch values for a ledger.
type LedgerUpdateFields struct {
	Name        *string
	Description **string
	Icon        *string
	Color       *string
}

// LedgerServicer defines the contract for ledger-related business logic.
type LedgerServicer interface {
	CreateLedger(name string, description *string, icon, color string) (*models.Ledger, error)
	GetLedgers() ([]models.Ledger, error)
	GetLedgerByID(id string) (*models.Ledger, error)
	GetDefaultLedger() (*models.Ledger, error)
	UpdateLedger(id string, fields LedgerUpdateFields) (*models.Ledger, error)
	SetDefaultLedger(id string) error
	DeleteLedger(id string) error
}

// PersonUpdateFields holds optional patch values for a person.
type PersonUpdateFields struct {
	Name  *string
	Phone **string
	Email **string
	Notes **string
}

// PersonServicer defines the contract for person-related business logic.
type PersonServicer interface {
	CreatePerson(name string, phone, email, notes *string) (*models.Person, error)
	GetPersons() ([]models.Person, error)
	GetPersonByID(id string) (*models.Person, error)
	UpdatePerson(id string, fields PersonUpdateFields) (*models.Person, error)
	DeletePerson(id string) error
}

// AccountCreateFields holds the values for creating an account.
type AccountCreateFields struct {
	Name           string
	Type           models.AccountType
	InitialBalance int64
	CreditLimit    *int64
	PersonID       *string
	Icon           string
	Color          string
	Notes          *string
	StatementDate  *int
	DueDate        *int
	PaymentDueDays *int
}

// AccountUpdateFields holds optional patch values for an account.
type AccountUpdateFields struct {
	Name           *string
	InitialBalance *int64
	CreditLimit    **int64
	PersonID       **string
	Icon           *string
	Color          *string
	IsActive       *bool
	Notes          **string
	StatementDate  **int
	DueDate        **int
	PaymentDueDays **int
}

// BalanceSummary aggregates active accounts' current balances by type.
// NetWorth = debit + owed - credit - debt: credit balances and debts are
// liabilities subtracted in full, money owed to the user is an asset.
type BalanceSummary struct {
	Debit    int64 `json:"debit"`
	Credit   int64 `json:"credit"`
	Owed     int64 `json:"owed"`
	Debt     int64 `json:"debt"`
	NetWorth int64 `json:"net_worth"`
}

// AccountServicer defines the contract for account-related business
// logic. AdjustBalance and SetBalance are the only sanctioned mutation
// paths for an account's current balance.
type AccountServicer interface {
	CreateAccount(ledgerID string, fields AccountCreateFields) (*models.Account, error)
	GetLedgerAccounts(ledgerID string, includeInactive bool) ([]models.Account, error)
	GetAccountByID(id string) (*models.Account, error)
	UpdateAccount(id string, fields AccountUpdateFields) (*models.Account, error)
	DeactivateAccount(id string) error
	DeleteAccount(id string) error

	// AdjustBalance adds delta to the account's current balance inside
	// the caller's transactional scope. Zero rows affected surfaces as
	// ErrAccountNotFound.
	AdjustBalance(tx *gorm.DB, accountID string, delta int64) error

	// SetBalance overwrites the balance absolutely; corrective and
	// administrative flows only.
	SetBalance(accountID string, value int64) error

	GetBalanceSummary(ledgerID string) (*BalanceSummary, error)
}

// CategoryUpdateFields holds optional patch values for a category.
type CategoryUpdateFields struct {
	Name      *string
	Icon      *string
	Color     *string
	SortOrder *int
}

// SubcategoryUpdateFields holds optional patch values for a subcategory.
type SubcategoryUpdateFields struct {
	Name      *string
	Icon      **string
	SortOrder *int
}

// CategoryServicer defines the contract for category and subcategory
// business logic.
type CategoryServicer interface {
	CreateCategory(name, icon, color string, entryType models.EntryType, sortOrder int) (*models.Category, error)
	GetCategories(entryType *models.EntryType) ([]models.Category, error)
	GetCategoryByID(id string) (*models.Category, error)
	UpdateCategory(id string, fields CategoryUpdateFields) (*models.Category, error)
	DeleteCategory(id string) error

	CreateSubcategory(categoryID, name string, icon *string, sortOrder int) (*models.Subcategory, error)
	GetSubcategories(categoryID string) ([]models.Subcategory, error)
	UpdateSubcategory(id string, fields SubcategoryUpdateFields) (*models.Subcategory, error)
	DeleteSubcategory(id string) error
}

// TransactionCreateFields holds the values for creating a transaction.
type TransactionCreateFields struct {
	AccountID     string
	CategoryID    *string
	SubcategoryID *string
	Amount        int64
	Type          models.EntryType
	Date          string
	Time          *string
	Notes         *string
	ReceiptPath   *string
}

// TransactionUpdateFields holds optional patch values for a transaction.
type TransactionUpdateFields struct {
	AccountID     *string
	CategoryID    **string
	SubcategoryID **string
	Amount        *int64
	Type          *models.EntryType
	Date          *string
	Time          **string
	Notes         **string
	ReceiptPath   **string
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	StartDate     *string
	EndDate       *string
	Type          *models.EntryType
	CategoryID    *string
	SubcategoryID *string
	AccountID     *string
}

// TransactionServicer defines the contract for transaction-related
// business logic. Every mutation applies its signed balance delta
// through the account service within one scoped transaction.
type TransactionServicer interface {
	CreateTransaction(ledgerID string, fields TransactionCreateFields) (*models.Transaction, error)
	GetLedgerTransactions(ledgerID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetRecentTransactions(ledgerID string, limit int) ([]models.Transaction, error)
	GetTransactionsByDate(ledgerID, date string) ([]models.Transaction, error)
	GetTransactionByID(id string) (*models.Transaction, error)
	UpdateTransaction(id string, fields TransactionUpdateFields) (*models.Transaction, error)
	DeleteTransaction(id string) error
}

// TransferCreateFields holds the values for creating a transfer.
type TransferCreateFields struct {
	FromAccountID string
	ToAccountID   string
	Amount        int64
	Fee           int64
	Date          string
	Time          *string
	Notes         *string
}

// TransferUpdateFields holds optional patch values for a transfer.
type TransferUpdateFields struct {
	FromAccountID *string
	ToAccountID   *string
	Amount        *int64
	Fee           *int64
	Date          *string
	Time          **string
	Notes         **string
}

// TransferFilter holds optional filter parameters for listing transfers.
type TransferFilter struct {
	StartDate *string
	EndDate   *string
	AccountID *string
}

// TransferServicer defines the contract for transfer-related business
// logic. Every operation moves exactly two balances: the source loses
// amount+fee, the destination gains amount.
type TransferServicer interface {
	CreateTransfer(ledgerID string, fields TransferCreateFields) (*models.Transfer, error)
	GetLedgerTransfers(ledgerID string, page pagination.PageRequest, filter TransferFilter) (*pagination.PageResponse[models.Transfer], error)
	GetTransferByID(id string) (*models.Transfer, error)
	UpdateTransfer(id string, fields TransferUpdateFields) (*models.Transfer, error)
	DeleteTransfer(id string) error
}

// TemplateCreateFields holds the values for creating a template.
type TemplateCreateFields struct {
	Name          string
	AccountID     *string
	CategoryID    *string
	SubcategoryID *string
	Amount        *int64
	Type          models.EntryType
	Notes         *string
	Icon          string
	Color         string
}

// TemplateUpdateFields holds optional patch values for a template.
type TemplateUpdateFields struct {
	Name          *string
	AccountID     **string
	CategoryID    **string
	SubcategoryID **string
	Amount        **int64
	Type          *models.EntryType
	Notes         **string
	Icon          *string
	Color         *string
}

// TemplateServicer defines the contract for transaction templates.
type TemplateServicer interface {
	CreateTemplate(ledgerID string, fields TemplateCreateFields) (*models.TransactionTemplate, error)
	GetLedgerTemplates(ledgerID string) ([]models.TransactionTemplate, error)
	GetTemplateByID(id string) (*models.TransactionTemplate, error)
	UpdateTemplate(id string, fields TemplateUpdateFields) (*models.TransactionTemplate, error)
	DeleteTemplate(id string) error

	// IncrementUsage bumps usage_count and stamps last_used_at. It is
	// advisory: callers invoke it when a template seeds a transaction,
	// independent of whether that creation succeeds.
	IncrementUsage(id string) error
}

// PreferenceServicer defines the contract for the key-value preference
// store (active ledger id, theme mode).
type PreferenceServicer interface {
	Get(key string) (string, error)
	Set(key, value string) error
	ActiveLedgerID() (string, error)
	SetActiveLedger(ledgerID string) error
	ThemeMode() (string, error)
	SetThemeMode(mode string) error
}

// DailyTotal is one day's income/expense aggregate.
type DailyTotal struct {
	Date    string `json:"date"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
	Net     int64  `json:"net"`
}

// CategorySpending is one category's share of spending in a range.
type CategorySpending struct {
	CategoryID   *string `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Icon         string  `json:"icon"`
	Color        string  `json:"color"`
	TotalAmount  int64   `json:"total_amount"`
	Count        int64   `json:"transaction_count"`
	Percentage   float64 `json:"percentage"`
}

// MonthlyTotal is one calendar month's income/expense aggregate.
type MonthlyTotal struct {
	Month   string `json:"month"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
}

// ReportServicer defines read-only projections over committed data.
// Absence of rows is an empty result, never an error.
type ReportServicer interface {
	GetDailyTotals(ledgerID, start, end string) ([]DailyTotal, error)
	GetCategorySpending(ledgerID, start, end string, entryType models.EntryType) ([]CategorySpending, error)
	GetMonthlyTotals(ledgerID string, months int) ([]MonthlyTotal, error)
	ExportTransactionsCSV(ledgerID, start, end string) ([]byte, error)
}
