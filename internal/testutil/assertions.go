package testutil

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
)

// AssertAppError fails the test unless err is an AppError with the
// expected code.
func AssertAppError(t *testing.T, err error, wantCode string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", wantCode)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError with code %q, got %T: %v", wantCode, err, err)
	}
	if appErr.Code != wantCode {
		t.Fatalf("expected error code %q, got %q (%v)", wantCode, appErr.Code, appErr)
	}
}

// AssertBalance fails the test unless the account's stored current
// balance equals want.
func AssertBalance(t *testing.T, db *gorm.DB, accountID string, want int64) {
	t.Helper()
	var account models.Account
	if err := db.First(&account, "id = ?", accountID).Error; err != nil {
		t.Fatalf("failed to load account %s: %v", accountID, err)
	}
	if account.CurrentBalance != want {
		t.Fatalf("account %s balance = %d, want %d", accountID, account.CurrentBalance, want)
	}
}
