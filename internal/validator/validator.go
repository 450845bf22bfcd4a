// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	dateRegex     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockRegex    = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("entry_type", validateEntryType)
		_ = v.RegisterValidation("account_type", validateAccountType)
		_ = v.RegisterValidation("ledger_date", validateDate)
		_ = v.RegisterValidation("clock_time", validateClock)
	}
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateEntryType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateAccountType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debit", "credit", "owed", "debt":
		return true
	}
	return false
}

// validateDate accepts "YYYY-MM-DD" only. The shape is checked here;
// SQLite comparisons rely on the fixed width.
func validateDate(fl validator.FieldLevel) bool {
	return dateRegex.MatchString(fl.Field().String())
}

// validateClock accepts 24-hour "HH:MM".
func validateClock(fl validator.FieldLevel) bool {
	return clockRegex.MatchString(fl.Field().String())
}
