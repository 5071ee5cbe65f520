// Package handlers implements the REST API endpoint handlers for tldclaim.
//
// REST API Endpoints:
//
// System Health:
//   - GET /api/v1/health - Health check status
//   - GET /api/v1/stats - Server statistics (uptime, memory, store sizes)
//
// TLDs:
//   - POST /api/v1/tlds - Register a TLD from oracle evidence
//   - GET /api/v1/tlds/:name - Current owner of a TLD
//   - GET /api/v1/tlds/:name/history - Journaled registration attempts
//
// Root authority:
//   - POST /api/v1/root/subnodes - Delegate a root child (controllers only)
//   - GET /api/v1/root/controllers - List controllers
//   - POST /api/v1/root/controllers - Add a controller
//   - DELETE /api/v1/root/controllers/:address - Remove a controller
//   - POST /api/v1/root/transfer - Transfer the root node (holder only)
//
// Oracle:
//   - PUT /api/v1/oracle/records - Submit evidence to the local oracle mirror
//
// Authentication:
//
// If an API key is configured, every endpoint requires the X-API-Key header.
// The key is mandatory unless the API listens on loopback only. The
// X-Caller-Address header names the identity a request acts as for authority
// operations and oracle submissions. It is not a credential and is trusted
// only from clients that passed the key check (or reached loopback).
//
// @title tldclaim Management API
// @version 1.0
// @description REST API for claiming top-level names from DNSSEC-verified TXT evidence.
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:8080
// @BasePath /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package handlers

import (
	"log/slog"
	"time"

	"github.com/jroosing/tldclaim/internal/authority"
	"github.com/jroosing/tldclaim/internal/config"
	"github.com/jroosing/tldclaim/internal/database"
	"github.com/jroosing/tldclaim/internal/oracle"
	"github.com/jroosing/tldclaim/internal/registry"
)

// Deps are the components the handlers drive. DB is optional; without it
// the history endpoint reports 404 and stats omit store counts.
type Deps struct {
	Root      *authority.Root
	Registrar *authority.Registrar
	Registry  registry.Registry
	Oracle    oracle.Store
	DB        *database.DB
}

// Handler contains dependencies for API handlers.
type Handler struct {
	cfg       *config.Config
	deps      Deps
	logger    *slog.Logger
	startTime time.Time
}

// New creates a new Handler. A nil logger uses slog.Default().
func New(cfg *config.Config, deps Deps, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		cfg:       cfg,
		deps:      deps,
		logger:    logger,
		startTime: time.Now(),
	}
}
