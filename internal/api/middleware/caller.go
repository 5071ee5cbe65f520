package middleware

import (
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/jroosing/tldclaim/internal/api/models"
	"github.com/jroosing/tldclaim/internal/claim"
)

// CallerHeader carries the address a request acts as. It is an assertion,
// not a credential: it is only trusted because RequireAPIKey runs first, or
// because the listener is loopback-only (config.Validate enforces one of
// the two).
const CallerHeader = "X-Caller-Address"

const callerKey = "tldclaim.caller"

// CallerAddress parses CallerHeader into the request context. A missing
// header leaves the caller as the zero address, which no authorization
// check accepts; a malformed one is rejected with 400.
func CallerAddress() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(CallerHeader))
		if raw == "" {
			c.Next()
			return
		}
		addr, ok := claim.ParseAddress(raw)
		if !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid " + CallerHeader})
			return
		}
		c.Set(callerKey, addr)
		c.Next()
	}
}

// Caller returns the address set by CallerAddress, or the zero address.
func Caller(c *gin.Context) common.Address {
	if v, ok := c.Get(callerKey); ok {
		if addr, ok := v.(common.Address); ok {
			return addr
		}
	}
	return common.Address{}
}
