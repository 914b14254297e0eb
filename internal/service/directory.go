package service

import (
	"context"
	"errors"
	"fmt"
	"payroll/internal/auth"
	"payroll/internal/entity"
	"payroll/internal/model"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// RegisterInput carries the fields of a self-registration.
type RegisterInput struct {
	LoginName   string
	Password    string
	Role        string
	DisplayName string
}

// Directory manages accounts, their credentials and approval state.
type Directory struct {
	accounts *model.Collection[entity.Account]
	now      func() time.Time
}

// NewDirectory creates a directory backed by the accounts collection.
func NewDirectory(store *model.RecordStore) *Directory {
	return &Directory{
		accounts: model.NewCollection[entity.Account](store, model.CollectionAccounts),
		now:      time.Now,
	}
}

// SetClock replaces the time source used for creation timestamps.
func (d *Directory) SetClock(now func() time.Time) {
	if now != nil {
		d.now = now
	}
}

// EnsureBootstrapAdmin seeds a single approved administrator when the
// accounts collection does not exist yet. It reports whether it did.
func (d *Directory) EnsureBootstrapAdmin(ctx context.Context, loginName, password, displayName string) (bool, error) {
	loginName = strings.TrimSpace(loginName)
	if loginName == "" {
		return false, missing("login_name")
	}
	created, err := d.accounts.Init(ctx, func() ([]entity.Account, error) {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("hash bootstrap password: %w", err)
		}
		return []entity.Account{{
			ID:           1,
			LoginName:    loginName,
			PasswordHash: hash,
			Role:         entity.AccountRoleAdmin,
			DisplayName:  strings.TrimSpace(displayName),
			Approved:     true,
			CreatedAt:    d.now(),
		}}, nil
	})
	if err != nil {
		return false, err
	}
	if created {
		logrus.WithField("login_name", loginName).Info("seeded bootstrap administrator")
	}
	return created, nil
}

// Authenticate checks credentials against the first account with an exactly
// matching login name.
func (d *Directory) Authenticate(ctx context.Context, loginName, password string) (entity.AccountSummary, error) {
	accounts := d.accounts.Load(ctx)
	for i := range accounts {
		if accounts[i].LoginName != loginName {
			continue
		}
		if !auth.CheckPassword(accounts[i].PasswordHash, password) {
			return entity.AccountSummary{}, ErrInvalidCredentials
		}
		if !accounts[i].Approved {
			return entity.AccountSummary{}, ErrNotApproved
		}
		return accounts[i].Summary(), nil
	}
	return entity.AccountSummary{}, ErrInvalidCredentials
}

// ListAll returns every account including credential hashes. It is not meant
// to cross the API boundary; use ListSummaries there.
func (d *Directory) ListAll(ctx context.Context) []entity.Account {
	return d.accounts.Load(ctx)
}

// ListSummaries returns redacted views of every account.
func (d *Directory) ListSummaries(ctx context.Context) []entity.AccountSummary {
	return entity.AccountsToSummaries(d.accounts.Load(ctx))
}

// Get returns the account with the given id.
func (d *Directory) Get(ctx context.Context, id int64) (entity.Account, error) {
	for _, account := range d.accounts.Load(ctx) {
		if account.ID == id {
			return account, nil
		}
	}
	return entity.Account{}, ErrNotFound
}

// Register creates a pending account. Approval is always false regardless of
// the caller; only Approve can flip it.
func (d *Directory) Register(ctx context.Context, in RegisterInput) (entity.AccountSummary, error) {
	loginName := strings.TrimSpace(in.LoginName)
	if loginName == "" {
		return entity.AccountSummary{}, missing("login_name")
	}
	if strings.TrimSpace(in.Password) == "" {
		return entity.AccountSummary{}, missing("password")
	}
	if len(in.Password) > auth.MaxPasswordBytes {
		return entity.AccountSummary{}, invalid("password", fmt.Sprintf("must be at most %d bytes", auth.MaxPasswordBytes))
	}
	role := entity.NormalizeRole(in.Role)
	if role == "" {
		return entity.AccountSummary{}, invalid("role", "must be admin or employee")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return entity.AccountSummary{}, fmt.Errorf("hash password: %w", err)
	}

	var created entity.Account
	err = d.accounts.Update(ctx, func(accounts []entity.Account) ([]entity.Account, error) {
		for i := range accounts {
			if accounts[i].LoginName == loginName {
				return nil, ErrLoginTaken
			}
		}
		created = entity.Account{
			ID:           nextAccountID(accounts),
			LoginName:    loginName,
			PasswordHash: hash,
			Role:         role,
			DisplayName:  strings.TrimSpace(in.DisplayName),
			Approved:     false,
			CreatedAt:    d.now(),
		}
		return append(accounts, created), nil
	})
	if err != nil {
		return entity.AccountSummary{}, err
	}
	return created.Summary(), nil
}

// Approve marks the account as approved. Approving an approved account is a
// no-op; the transition is one-way.
func (d *Directory) Approve(ctx context.Context, id int64) error {
	err := d.accounts.Update(ctx, func(accounts []entity.Account) ([]entity.Account, error) {
		for i := range accounts {
			if accounts[i].ID != id {
				continue
			}
			if accounts[i].Approved {
				return nil, errUnchanged
			}
			accounts[i].Approved = true
			return accounts, nil
		}
		return nil, ErrNotFound
	})
	if errors.Is(err, errUnchanged) {
		return nil
	}
	return err
}

func nextAccountID(accounts []entity.Account) int64 {
	var maxID int64
	for i := range accounts {
		if accounts[i].ID > maxID {
			maxID = accounts[i].ID
		}
	}
	return maxID + 1
}
