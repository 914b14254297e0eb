package entity

import "time"

// AuthLoginRequest is the login request payload.
type AuthLoginRequest struct {
	LoginName string `json:"login_name" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// AuthResponse is returned after a successful login.
type AuthResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      AccountSummary `json:"user"`
}

// AccountRegisterRequest is the self-registration payload. Approval is never
// taken from the client.
type AccountRegisterRequest struct {
	LoginName   string `json:"login_name"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
}

// AccountRegisterResponse confirms a pending registration.
type AccountRegisterResponse struct {
	Message string         `json:"message"`
	User    AccountSummary `json:"user"`
}

// AccountQuery filters the account listing.
type AccountQuery struct {
	Approved *bool `form:"approved"`
}

// AccountListResponse is the response for listing accounts.
type AccountListResponse struct {
	Users []AccountSummary `json:"users"`
	Total int              `json:"total"`
}

// DisbursementCreateRequest is the payload for recording a disbursement.
type DisbursementCreateRequest struct {
	AccountID     int64  `json:"account_id"`
	RecipientName string `json:"recipient_name"`
	Amount        *int64 `json:"amount"`
	Note          string `json:"note"`
}

// DisbursementQuery filters the disbursement listing.
type DisbursementQuery struct {
	AccountID int64 `form:"account_id"`
}

// DisbursementListResponse is the response for listing disbursements.
type DisbursementListResponse struct {
	Records []Disbursement `json:"records"`
	Total   int            `json:"total"`
}

// MonthlyTotalsResponse wraps the per-month breakdown.
type MonthlyTotalsResponse struct {
	Months []MonthlyTotal `json:"months"`
}
