package models

import "time"

// OracleRecordRequest submits evidence to the local oracle mirror.
// Type is a mnemonic ("TXT"), "TYPEnnn" or a decimal code; Name is in
// presentation form.
type OracleRecordRequest struct {
	Type       string    `json:"type" binding:"required" example:"TXT"`
	Name       string    `json:"name" binding:"required" example:"_ens.nic.test."`
	Inception  time.Time `json:"inception"`
	Expiration time.Time `json:"expiration"`
	Proof      string    `json:"proof,omitempty"`
}

// OracleRecordResponse echoes the stored key.
type OracleRecordResponse struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Inception  time.Time `json:"inception"`
	Expiration time.Time `json:"expiration"`
	ProofBytes int       `json:"proof_bytes"`
}
