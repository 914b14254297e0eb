package service

import (
	"context"
	"payroll/internal/entity"
	"payroll/internal/model"
	"strings"
	"time"
)

// RecordInput carries the fields of a new disbursement.
type RecordInput struct {
	AccountID     int64
	RecipientName string
	Amount        int64
	Note          string
}

// Ledger is the append-only collection of payroll disbursements.
type Ledger struct {
	records *model.Collection[entity.Disbursement]
	now     func() time.Time
}

// NewLedger creates a ledger backed by the disbursements collection.
func NewLedger(store *model.RecordStore) *Ledger {
	return &Ledger{
		records: model.NewCollection[entity.Disbursement](store, model.CollectionDisbursements),
		now:     time.Now,
	}
}

// SetClock replaces the time source used for timestamps and month matching.
func (l *Ledger) SetClock(now func() time.Time) {
	if now != nil {
		l.now = now
	}
}

// Init creates an empty ledger document when none exists.
func (l *Ledger) Init(ctx context.Context) error {
	_, err := l.records.Init(ctx, func() ([]entity.Disbursement, error) {
		return []entity.Disbursement{}, nil
	})
	return err
}

// ListAll returns every disbursement in insertion order.
func (l *Ledger) ListAll(ctx context.Context) []entity.Disbursement {
	return l.records.Load(ctx)
}

// ListForAccount returns the disbursements made to one account.
func (l *Ledger) ListForAccount(ctx context.Context, accountID int64) []entity.Disbursement {
	return filterByAccount(l.records.Load(ctx), accountID)
}

// Record appends a disbursement stamped with the current time. The account id
// is stored as given; it is not checked against the directory.
func (l *Ledger) Record(ctx context.Context, in RecordInput) (entity.Disbursement, error) {
	if in.AccountID <= 0 {
		return entity.Disbursement{}, missing("account_id")
	}
	recipient := strings.TrimSpace(in.RecipientName)
	if recipient == "" {
		return entity.Disbursement{}, missing("recipient_name")
	}
	if in.Amount < 0 {
		return entity.Disbursement{}, invalid("amount", "must not be negative")
	}

	var created entity.Disbursement
	err := l.records.Update(ctx, func(records []entity.Disbursement) ([]entity.Disbursement, error) {
		created = entity.Disbursement{
			ID:            nextDisbursementID(records),
			AccountID:     in.AccountID,
			RecipientName: recipient,
			Amount:        in.Amount,
			Note:          strings.TrimSpace(in.Note),
			CreatedAt:     l.now(),
		}
		return append(records, created), nil
	})
	if err != nil {
		return entity.Disbursement{}, err
	}
	return created, nil
}

// Summarize aggregates the whole ledger.
func (l *Ledger) Summarize(ctx context.Context) entity.Summary {
	return Summarize(l.records.Load(ctx), l.now())
}

// SummarizeAccount aggregates the disbursements of one account.
func (l *Ledger) SummarizeAccount(ctx context.Context, accountID int64) entity.Summary {
	return Summarize(l.ListForAccount(ctx, accountID), l.now())
}

// MonthlyTotals breaks the ledger down per calendar month. An accountID of 0
// covers every account.
func (l *Ledger) MonthlyTotals(ctx context.Context, accountID int64) []entity.MonthlyTotal {
	records := l.records.Load(ctx)
	if accountID != 0 {
		records = filterByAccount(records, accountID)
	}
	return MonthlyTotals(records, l.now().Location())
}

func filterByAccount(records []entity.Disbursement, accountID int64) []entity.Disbursement {
	out := make([]entity.Disbursement, 0, len(records))
	for _, rec := range records {
		if rec.AccountID == accountID {
			out = append(out, rec)
		}
	}
	return out
}

func nextDisbursementID(records []entity.Disbursement) int64 {
	var maxID int64
	for i := range records {
		if records[i].ID > maxID {
			maxID = records[i].ID
		}
	}
	return maxID + 1
}
