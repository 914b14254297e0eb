package entity

import (
	"strings"
	"time"
)

const (
	AccountRoleAdmin    = "admin"
	AccountRoleEmployee = "employee"
)

// Account is a persisted login identity.
type Account struct {
	ID           int64     `json:"id"`
	LoginName    string    `json:"login_name"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	DisplayName  string    `json:"display_name"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin reports whether the account carries the admin role.
func (a *Account) IsAdmin() bool {
	return a != nil && a.Role == AccountRoleAdmin
}

// AccountSummary is the account view handed to clients. It never carries
// credential material.
type AccountSummary struct {
	ID          int64     `json:"id"`
	LoginName   string    `json:"login_name"`
	Role        string    `json:"role"`
	DisplayName string    `json:"display_name"`
	Approved    bool      `json:"approved"`
	CreatedAt   time.Time `json:"created_at"`
}

// Summary returns the redacted view of the account.
func (a *Account) Summary() AccountSummary {
	if a == nil {
		return AccountSummary{}
	}
	return AccountSummary{
		ID:          a.ID,
		LoginName:   a.LoginName,
		Role:        a.Role,
		DisplayName: a.DisplayName,
		Approved:    a.Approved,
		CreatedAt:   a.CreatedAt,
	}
}

// AccountsToSummaries converts a slice of accounts to their redacted views.
func AccountsToSummaries(accounts []Account) []AccountSummary {
	summaries := make([]AccountSummary, len(accounts))
	for i := range accounts {
		summaries[i] = accounts[i].Summary()
	}
	return summaries
}

// NormalizeRole maps free-form role input to a known role. Empty input
// defaults to employee; unknown roles map to "".
func NormalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "", AccountRoleEmployee:
		return AccountRoleEmployee
	case AccountRoleAdmin:
		return AccountRoleAdmin
	default:
		return ""
	}
}
