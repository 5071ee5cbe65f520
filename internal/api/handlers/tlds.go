package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/tldclaim/internal/api/models"
	"github.com/jroosing/tldclaim/internal/authority"
	"github.com/jroosing/tldclaim/internal/database"
	"github.com/jroosing/tldclaim/internal/dns"
	"github.com/jroosing/tldclaim/internal/registry"
)

// RegisterTLD godoc
// @Summary Register a TLD
// @Description Sets the owner of a top-level name from the TXT claim held by the oracle under the claim marker.
// @Description A TLD without evidence goes to the default registrar. When TXT evidence exists the submitted proof must equal it; stale or mismatched evidence changes nothing.
// @Tags tlds
// @Accept json
// @Produce json
// @Param request body models.RegisterTLDRequest true "TLD and optional proof"
// @Success 200 {object} models.RegistrationResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /tlds [post]
func (h *Handler) RegisterTLD(c *gin.Context) {
	var req models.RegisterTLDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, badRequest("%v", err))
		return
	}
	name, err := dns.ParseName(req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	proofBytes, err := decodeHex("proof", req.Proof)
	if err != nil {
		h.fail(c, err)
		return
	}

	ctx := c.Request.Context()
	reg, err := h.deps.Registrar.RegisterTLD(ctx, name, proofBytes)
	h.journal(c, name, reg, err)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, models.RegistrationResponse{
		TLD:      reg.Name.String(),
		Node:     reg.Node.Hex(),
		Owner:    reg.Owner.Hex(),
		Outcome:  reg.Outcome.String(),
		Evidence: reg.Evidence.String(),
	})
}

// journal records the attempt when a database is configured. Journal
// failures are logged and never change the response.
func (h *Handler) journal(c *gin.Context, name dns.Name, reg authority.Registration, regErr error) {
	if h.deps.DB == nil {
		return
	}
	entry := database.Registration{TLD: dns.NormalizeName(name.String()) + "."}
	if regErr != nil {
		entry.Error = regErr.Error()
	} else {
		entry.Node = reg.Node.Hex()
		entry.Owner = reg.Owner.Hex()
		entry.Outcome = reg.Outcome.String()
		entry.Evidence = reg.Evidence.String()
	}
	if _, err := h.deps.DB.RecordRegistration(c.Request.Context(), entry); err != nil {
		h.logger.Error("failed to journal registration", "tld", entry.TLD, "err", err)
	}
}

// GetTLD godoc
// @Summary Get a TLD
// @Description Returns the registry owner of a top-level name
// @Tags tlds
// @Produce json
// @Param name path string true "TLD (e.g. test or test.)"
// @Success 200 {object} models.TLDResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /tlds/{name} [get]
func (h *Handler) GetTLD(c *gin.Context) {
	name, err := tldParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	node := registry.NameHash(name)
	owner, err := h.deps.Registry.Owner(c.Request.Context(), node)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.TLDResponse{
		TLD:       name.String(),
		Node:      node.Hex(),
		Owner:     owner.Hex(),
		QueryName: h.deps.Registrar.QueryName(name).String(),
	})
}

// TLDHistory godoc
// @Summary Registration history
// @Description Returns journaled registration attempts for a TLD, newest first
// @Tags tlds
// @Produce json
// @Param name path string true "TLD"
// @Param limit query int false "Maximum entries (default 50)"
// @Success 200 {object} models.HistoryResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /tlds/{name}/history [get]
func (h *Handler) TLDHistory(c *gin.Context) {
	if h.deps.DB == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "history requires a database"})
		return
	}
	name, err := tldParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil || limit < 0 {
			h.fail(c, badRequest("limit must be a non-negative integer"))
			return
		}
	}

	tld := dns.NormalizeName(name.String()) + "."
	rows, err := h.deps.DB.History(c.Request.Context(), tld, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	entries := make([]models.HistoryEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, models.HistoryEntry{
			ID:        r.ID,
			Owner:     r.Owner,
			Outcome:   r.Outcome,
			Evidence:  r.Evidence,
			Error:     r.Error,
			CreatedAt: r.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, models.HistoryResponse{TLD: tld, Entries: entries, Count: len(entries)})
}

// tldParam parses the :name path parameter as a single-label name.
func tldParam(c *gin.Context) (dns.Name, error) {
	name, err := dns.ParseName(c.Param("name"))
	if err != nil {
		return nil, err
	}
	if len(name) != 1 {
		return nil, fmt.Errorf("%w: %q is not a top-level name", authority.ErrInvalidName, c.Param("name"))
	}
	return name, nil
}
