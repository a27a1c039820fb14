package models

// IssueTokenRequest is the body of POST /api/admin/tokens.
type IssueTokenRequest struct {
	Subject    string `json:"subject" binding:"required"`
	Role       Role   `json:"role" binding:"required"`
	TTLMinutes int    `json:"ttlMinutes"`
}
