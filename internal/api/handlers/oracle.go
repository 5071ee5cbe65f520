package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/tldclaim/internal/api/middleware"
	"github.com/jroosing/tldclaim/internal/api/models"
	"github.com/jroosing/tldclaim/internal/authority"
	"github.com/jroosing/tldclaim/internal/dns"
)

// PutOracleRecord godoc
// @Summary Submit oracle evidence
// @Description Stores already-verified evidence in the local oracle mirror, replacing any earlier entry for the same type and name.
// @Description Signatures are not checked here. The caller (X-Caller-Address) must be the root holder or a controller.
// @Tags oracle
// @Accept json
// @Produce json
// @Param request body models.OracleRecordRequest true "Evidence"
// @Success 200 {object} models.OracleRecordResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /oracle/records [put]
func (h *Handler) PutOracleRecord(c *gin.Context) {
	caller := middleware.Caller(c)
	if !h.deps.Root.CanAdminister(caller) {
		h.fail(c, fmt.Errorf("%w: %s may not submit oracle evidence", authority.ErrUnauthorized, caller.Hex()))
		return
	}

	var req models.OracleRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, badRequest("%v", err))
		return
	}
	rrtype, err := dns.ParseRecordType(req.Type)
	if err != nil {
		h.fail(c, err)
		return
	}
	name, err := dns.ParseName(req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	wire, err := dns.EncodeName(name)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !req.Expiration.After(req.Inception) {
		h.fail(c, badRequest("expiration must be after inception"))
		return
	}
	p, err := decodeHex("proof", req.Proof)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.deps.Oracle.Submit(c.Request.Context(), rrtype, wire, req.Inception, req.Expiration, p); err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Info("oracle record stored", "type", rrtype.String(), "name", name.String(), "expiration", req.Expiration, "by", caller.Hex())

	c.JSON(http.StatusOK, models.OracleRecordResponse{
		Type:       rrtype.String(),
		Name:       name.String(),
		Inception:  req.Inception,
		Expiration: req.Expiration,
		ProofBytes: len(p),
	})
}
