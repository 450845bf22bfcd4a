package services

import (
	"bytes"
	"encoding/csv"
	"math"
	"strconv"
	"time"

	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
)

// reportService implements ReportServicer. All queries are read-only
// projections over committed rows; they never touch balances.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new report service.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// GetDailyTotals returns per-day income and expense sums for the
// inclusive date range. Days without transactions are omitted.
func (s *reportService) GetDailyTotals(ledgerID, start, end string) ([]DailyTotal, error) {
	var rows []struct {
		Date  string
		Type  models.EntryType
		Total int64
	}
	err := s.db.Model(&models.Transaction{}).
		Select("date, type, COALESCE(SUM(amount), 0) as total").
		Where("ledger_id = ? AND date >= ? AND date <= ?", ledgerID, start, end).
		Group("date, type").
		Order("date").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byDate := make(map[string]*DailyTotal)
	order := make([]string, 0, len(rows))
	for _, row := range rows {
		day, ok := byDate[row.Date]
		if !ok {
			day = &DailyTotal{Date: row.Date}
			byDate[row.Date] = day
			order = append(order, row.Date)
		}
		if row.Type == models.EntryTypeIncome {
			day.Income = row.Total
		} else {
			day.Expense = row.Total
		}
	}

	totals := make([]DailyTotal, 0, len(order))
	for _, date := range order {
		day := byDate[date]
		day.Net = day.Income - day.Expense
		totals = append(totals, *day)
	}
	return totals, nil
}

// GetCategorySpending breaks the range's transactions of one entry type
// down by category. Uncategorized transactions group under a nil
// category id. Percentages are rounded to two decimals and the rounding
// residual lands on the largest bucket so the shares sum to exactly 100.
func (s *reportService) GetCategorySpending(ledgerID, start, end string, entryType models.EntryType) ([]CategorySpending, error) {
	if !validEntryType(entryType) {
		return nil, apperrors.ErrInvalidEntryType
	}

	var rows []CategorySpending
	err := s.db.Model(&models.Transaction{}).
		Select(`transactions.category_id,
			COALESCE(categories.name, 'Uncategorized') as category_name,
			COALESCE(categories.icon, '') as icon,
			COALESCE(categories.color, '') as color,
			COALESCE(SUM(transactions.amount), 0) as total_amount,
			COUNT(*) as count`).
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.ledger_id = ? AND transactions.date >= ? AND transactions.date <= ? AND transactions.type = ?",
			ledgerID, start, end, entryType).
		Group("transactions.category_id, categories.name, categories.icon, categories.color").
		Order("total_amount DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(rows) == 0 {
		return []CategorySpending{}, nil
	}

	var grand int64
	for _, row := range rows {
		grand += row.TotalAmount
	}
	if grand == 0 {
		return rows, nil
	}

	var sum float64
	largest := 0
	for i := range rows {
		rows[i].Percentage = math.Round(float64(rows[i].TotalAmount)/float64(grand)*10000) / 100
		sum += rows[i].Percentage
		if rows[i].TotalAmount > rows[largest].TotalAmount {
			largest = i
		}
	}
	rows[largest].Percentage = math.Round((rows[largest].Percentage+100-sum)*100) / 100
	return rows, nil
}

// GetMonthlyTotals returns income and expense sums for the last N
// calendar months including the current one. Months with no activity
// appear with zero totals.
func (s *reportService) GetMonthlyTotals(ledgerID string, months int) ([]MonthlyTotal, error) {
	if months <= 0 {
		months = 6
	}

	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	startMonth := first.Format("2006-01")

	var rows []struct {
		Month string
		Type  models.EntryType
		Total int64
	}
	err := s.db.Model(&models.Transaction{}).
		Select("substr(date, 1, 7) as month, type, COALESCE(SUM(amount), 0) as total").
		Where("ledger_id = ? AND substr(date, 1, 7) >= ?", ledgerID, startMonth).
		Group("month, type").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byMonth := make(map[string]*MonthlyTotal, months)
	totals := make([]MonthlyTotal, months)
	for i := 0; i < months; i++ {
		month := first.AddDate(0, i, 0).Format("2006-01")
		totals[i] = MonthlyTotal{Month: month}
		byMonth[month] = &totals[i]
	}
	for _, row := range rows {
		entry, ok := byMonth[row.Month]
		if !ok {
			continue
		}
		if row.Type == models.EntryTypeIncome {
			entry.Income = row.Total
		} else {
			entry.Expense = row.Total
		}
	}
	return totals, nil
}

// ExportTransactionsCSV renders the range's transactions as CSV with
// amounts in major units, oldest first.
func (s *reportService) ExportTransactionsCSV(ledgerID, start, end string) ([]byte, error) {
	var txns []models.Transaction
	err := s.db.Where("ledger_id = ? AND date >= ? AND date <= ?", ledgerID, start, end).
		Preload("Account").Preload("Category").Preload("Subcategory").
		Order("date, time, id").
		Find(&txns).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"date", "time", "type", "amount", "account", "category", "subcategory", "notes"}
	if err := w.Write(header); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	for _, txn := range txns {
		category, subcategory := "", ""
		if txn.Category != nil {
			category = txn.Category.Name
		}
		if txn.Subcategory != nil {
			subcategory = txn.Subcategory.Name
		}
		record := []string{
			txn.Date,
			deref(txn.Time),
			string(txn.Type),
			strconv.FormatFloat(float64(txn.Amount)/100, 'f', 2, 64),
			txn.Account.Name,
			category,
			subcategory,
			deref(txn.Notes),
		}
		if err := w.Write(record); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return buf.Bytes(), nil
}
