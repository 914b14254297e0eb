package service

import (
	"payroll/internal/entity"
	"sort"
	"time"
)

const monthKeyLayout = "2006-01"

// Summarize totals the given records. The current-month subtotal covers
// records whose creation time falls in now's calendar month and year,
// evaluated in now's location.
func Summarize(records []entity.Disbursement, now time.Time) entity.Summary {
	summary := entity.Summary{TotalCount: len(records)}
	year, month, _ := now.Date()
	for _, rec := range records {
		summary.TotalAmount += rec.Amount
		y, m, _ := rec.CreatedAt.In(now.Location()).Date()
		if y == year && m == month {
			summary.CurrentMonthAmount += rec.Amount
		}
	}
	return summary
}

// MonthlyTotals groups records by calendar month in loc, oldest month first.
func MonthlyTotals(records []entity.Disbursement, loc *time.Location) []entity.MonthlyTotal {
	if loc == nil {
		loc = time.Local
	}
	byMonth := make(map[string]*entity.MonthlyTotal)
	for _, rec := range records {
		key := rec.CreatedAt.In(loc).Format(monthKeyLayout)
		total, ok := byMonth[key]
		if !ok {
			total = &entity.MonthlyTotal{Month: key}
			byMonth[key] = total
		}
		total.Amount += rec.Amount
		total.Count++
	}

	out := make([]entity.MonthlyTotal, 0, len(byMonth))
	for _, total := range byMonth {
		out = append(out, *total)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
