package ledger

import (
	"fmt"
	"time"

	"expense-api/internal/apperr"
	"expense-api/internal/models"
)

// MonthLayout is the format of the month selector of Summary.
const MonthLayout = "2006-01"

// CategorySummary is one category's share of a month.
type CategorySummary struct {
	models.CategoryTotal
	Percentage float64 `json:"percentage"`
}

// Summary is the spending of one month broken down by category.
type Summary struct {
	Month      string            `json:"month"`
	Total      float64           `json:"total"`
	Categories []CategorySummary `json:"categories"`
}

// Summary totals the expenses of month (YYYY-MM) per category, largest first.
// An empty month selects the current one.
func (l *Ledger) Summary(month string) (*Summary, error) {
	var start time.Time
	if month == "" {
		now := l.now().UTC()
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	} else {
		var err error
		start, err = time.Parse(MonthLayout, month)
		if err != nil {
			return nil, apperr.Invalid("month must be formatted as YYYY-MM")
		}
	}
	end := start.AddDate(0, 1, 0)

	totals, err := l.store.GetCategoryTotals(start.Format(DateLayout), end.Format(DateLayout))
	if err != nil {
		return nil, fmt.Errorf("%w: category totals: %v", apperr.ErrStorage, err)
	}

	summary := &Summary{
		Month:      start.Format(MonthLayout),
		Categories: make([]CategorySummary, 0, len(totals)),
	}
	for _, ct := range totals {
		summary.Total += ct.Total
	}
	for _, ct := range totals {
		percentage := 0.0
		if summary.Total > 0 {
			percentage = (ct.Total / summary.Total) * 100
		}
		summary.Categories = append(summary.Categories, CategorySummary{
			CategoryTotal: ct,
			Percentage:    percentage,
		})
	}
	return summary, nil
}
