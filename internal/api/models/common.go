// Package models defines request and response types for the tldclaim REST API.
// Addresses and hashes travel as 0x-prefixed hex; proofs as 0x-prefixed hex
// of the concatenated wire-format records.
package models

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse represents a simple status response.
type StatusResponse struct {
	Status string `json:"status"`
}
