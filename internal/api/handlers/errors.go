package handlers

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
	"github.com/jroosing/tldclaim/internal/api/models"
	"github.com/jroosing/tldclaim/internal/authority"
	"github.com/jroosing/tldclaim/internal/dns"
	"github.com/jroosing/tldclaim/internal/proof"
	"github.com/jroosing/tldclaim/internal/registry"
)

// errBadRequest marks malformed request input.
var errBadRequest = errors.New("bad request")

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, dns.ErrDNSError):
		return http.StatusBadRequest
	case errors.Is(err, authority.ErrUnauthorized),
		errors.Is(err, authority.ErrReservedName),
		errors.Is(err, registry.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, proof.ErrExpired), errors.Is(err, proof.ErrNotYetValid):
		return http.StatusConflict
	case errors.Is(err, proof.ErrTypeMismatch),
		errors.Is(err, authority.ErrProofMismatch),
		errors.Is(err, authority.ErrProofNotNeeded),
		errors.Is(err, authority.ErrEmptyEvidence),
		errors.Is(err, authority.ErrInvalidName):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err with its mapped status. Server errors are logged and
// their details withheld from the client.
func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("api request failed", "path", c.Request.URL.Path, "err", err)
		msg = "internal error"
	}
	c.JSON(status, models.ErrorResponse{Error: msg})
}

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

// decodeHex accepts 0x-prefixed or bare hex; empty input yields nil.
func decodeHex(field, s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0x" || s == "0X" {
		return nil, nil
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		b, err := hexutil.Decode("0x" + s[2:])
		if err != nil {
			return nil, badRequest("%s: %v", field, err)
		}
		return b, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, badRequest("%s: %v", field, err)
	}
	return b, nil
}
