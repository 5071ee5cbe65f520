package models

import "time"

// RegisterTLDRequest asks the registrar to set a TLD's owner from oracle
// evidence. Proof may be empty to use whatever the oracle holds.
type RegisterTLDRequest struct {
	Name  string `json:"name" binding:"required" example:"test."`
	Proof string `json:"proof,omitempty" example:"0x045f656e73036e6963047465737400001000010000e10000..."`
}

// RegistrationResponse describes a successful registration.
type RegistrationResponse struct {
	TLD      string `json:"tld"`
	Node     string `json:"node"`
	Owner    string `json:"owner"`
	Outcome  string `json:"outcome"`
	Evidence string `json:"evidence"`
}

// TLDResponse is the current registry binding of a TLD.
type TLDResponse struct {
	TLD       string `json:"tld"`
	Node      string `json:"node"`
	Owner     string `json:"owner"`
	QueryName string `json:"query_name"`
}

// HistoryEntry is one journaled registration attempt.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner,omitempty"`
	Outcome   string    `json:"outcome,omitempty"`
	Evidence  string    `json:"evidence,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryResponse lists registration attempts for a TLD, newest first.
type HistoryResponse struct {
	TLD     string         `json:"tld"`
	Entries []HistoryEntry `json:"entries"`
	Count   int            `json:"count"`
}
