// backend/src/services/analytics.go
package services

import (
	"sort"

	"github.com/username/financecoach/backend/src/models"
)

const monthKeyLayout = "2006-01"

// ComputeSummary turns a persona's transaction sequence into a FinanceSummary.
// It is pure: no I/O, deterministic output, and an empty input yields empty
// monthly/category slices with zero-valued rates (the configured target rate
// is still carried through).
func ComputeSummary(targetRate float64, records []models.TransactionRecord) models.FinanceSummary {
	monthly := aggregateMonths(records)
	latestMonth := latestMonth(records)
	categories := aggregateCategories(records, latestMonth)

	var incomeLatest, savingsLatest float64
	for _, overview := range monthly {
		if overview.Month == latestMonth {
			incomeLatest = overview.Income
			savingsLatest = overview.Savings
			break
		}
	}

	currentRate := 0.0
	if incomeLatest != 0 {
		currentRate = savingsLatest / incomeLatest
	}

	return models.FinanceSummary{
		MonthlyOverview: monthly,
		Categories:      categories,
		Goals: models.GoalsSummary{
			TargetSavingsRate:  targetRate,
			CurrentSavingsRate: currentRate,
		},
	}
}

// aggregateMonths groups records by YYYY-MM and emits one overview per
// distinct month in ascending order. Months with no records are not filled in.
func aggregateMonths(records []models.TransactionRecord) []models.MonthlyOverview {
	type monthTotals struct {
		income  float64
		expense float64
	}

	totals := make(map[string]*monthTotals)
	for _, record := range records {
		key := record.Date.Format(monthKeyLayout)
		entry, ok := totals[key]
		if !ok {
			entry = &monthTotals{}
			totals[key] = entry
		}
		if record.Type == models.TransactionTypeIncome {
			entry.income += record.Amount
		} else {
			entry.expense += record.Amount
		}
	}

	months := make([]string, 0, len(totals))
	for month := range totals {
		months = append(months, month)
	}
	sort.Strings(months)

	overview := make([]models.MonthlyOverview, 0, len(months))
	for _, month := range months {
		entry := totals[month]
		overview = append(overview, models.MonthlyOverview{
			Month:   month,
			Total:   entry.expense,
			Income:  entry.income,
			Savings: entry.income - entry.expense,
		})
	}
	return overview
}

// latestMonth returns the lexicographically greatest YYYY-MM key, which for
// zero-padded month strings is also the chronologically latest. Empty string
// when there are no records.
func latestMonth(records []models.TransactionRecord) string {
	latest := ""
	for _, record := range records {
		if key := record.Date.Format(monthKeyLayout); key > latest {
			latest = key
		}
	}
	return latest
}

// aggregateCategories rolls up expense records of the latest month by
// category. Essential is an OR over the group's flags. Output is sorted by
// amount descending with category name ascending as the tie-break, so equal
// amounts always serialize in the same order.
func aggregateCategories(records []models.TransactionRecord, latestMonth string) []models.CategorySummary {
	type categoryTotals struct {
		amount    float64
		essential bool
	}

	totals := make(map[string]*categoryTotals)
	for _, record := range records {
		if record.Type != models.TransactionTypeExpense {
			continue
		}
		if record.Date.Format(monthKeyLayout) != latestMonth {
			continue
		}
		entry, ok := totals[record.Category]
		if !ok {
			entry = &categoryTotals{}
			totals[record.Category] = entry
		}
		entry.amount += record.Amount
		entry.essential = entry.essential || record.Essential
	}

	categories := make([]models.CategorySummary, 0, len(totals))
	for name, entry := range totals {
		categories = append(categories, models.CategorySummary{
			Name:      name,
			Latest:    entry.amount,
			Essential: entry.essential,
		})
	}

	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Latest != categories[j].Latest {
			return categories[i].Latest > categories[j].Latest
		}
		return categories[i].Name < categories[j].Name
	})
	return categories
}
