package entity

import "time"

// Disbursement is one recorded payroll payout. Records are append-only.
type Disbursement struct {
	ID            int64     `json:"id"`
	AccountID     int64     `json:"account_id"`
	RecipientName string    `json:"recipient_name"`
	Amount        int64     `json:"amount"`
	Note          string    `json:"note"`
	CreatedAt     time.Time `json:"created_at"`
}

// Summary aggregates the ledger.
type Summary struct {
	TotalAmount        int64 `json:"total_amount"`
	CurrentMonthAmount int64 `json:"current_month_amount"`
	TotalCount         int   `json:"total_count"`
}

// MonthlyTotal is the sum of disbursements recorded in one calendar month.
type MonthlyTotal struct {
	Month  string `json:"month"`
	Amount int64  `json:"amount"`
	Count  int    `json:"count"`
}
