package handlers

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/jroosing/tldclaim/internal/api/middleware"
	"github.com/jroosing/tldclaim/internal/api/models"
	"github.com/jroosing/tldclaim/internal/claim"
)

// SetSubnode godoc
// @Summary Delegate a root child
// @Description Assigns a child label of the root node without consulting evidence. Controllers only.
// @Tags root
// @Accept json
// @Produce json
// @Param X-Caller-Address header string true "Acting controller"
// @Param request body models.SubnodeRequest true "Label and owner"
// @Success 200 {object} models.SubnodeResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /root/subnodes [post]
func (h *Handler) SetSubnode(c *gin.Context) {
	var req models.SubnodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, badRequest("%v", err))
		return
	}
	owner, err := parseAddress("owner", req.Owner)
	if err != nil {
		h.fail(c, err)
		return
	}
	node, err := h.deps.Root.SetSubnodeOwner(c.Request.Context(), middleware.Caller(c), req.Label, owner)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SubnodeResponse{Label: req.Label, Node: node.Hex(), Owner: owner.Hex()})
}

// ListControllers godoc
// @Summary List controllers
// @Tags root
// @Produce json
// @Success 200 {object} models.ControllersResponse
// @Security ApiKeyAuth
// @Router /root/controllers [get]
func (h *Handler) ListControllers(c *gin.Context) {
	controllers := h.deps.Root.Controllers()
	out := make([]string, 0, len(controllers))
	for _, addr := range controllers {
		out = append(out, addr.Hex())
	}
	c.JSON(http.StatusOK, models.ControllersResponse{Controllers: out, Count: len(out)})
}

// AddController godoc
// @Summary Add a controller
// @Description Grants controller rights. The holder or an existing controller only.
// @Tags root
// @Accept json
// @Produce json
// @Param X-Caller-Address header string true "Holder or controller"
// @Param request body models.ControllerRequest true "Controller address"
// @Success 200 {object} models.StatusResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /root/controllers [post]
func (h *Handler) AddController(c *gin.Context) {
	var req models.ControllerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, badRequest("%v", err))
		return
	}
	addr, err := parseAddress("address", req.Address)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.deps.Root.AddController(middleware.Caller(c), addr); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "added"})
}

// RemoveController godoc
// @Summary Remove a controller
// @Description Revokes controller rights. The holder or an existing controller only.
// @Tags root
// @Produce json
// @Param X-Caller-Address header string true "Holder or controller"
// @Param address path string true "Controller address"
// @Success 200 {object} models.StatusResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /root/controllers/{address} [delete]
func (h *Handler) RemoveController(c *gin.Context) {
	addr, err := parseAddress("address", c.Param("address"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.deps.Root.RemoveController(middleware.Caller(c), addr); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "removed"})
}

// TransferRoot godoc
// @Summary Transfer the root node
// @Description Hands the root node to a new owner. The holder only.
// @Tags root
// @Accept json
// @Produce json
// @Param X-Caller-Address header string true "Holder"
// @Param request body models.TransferRequest true "New owner"
// @Success 200 {object} models.StatusResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /root/transfer [post]
func (h *Handler) TransferRoot(c *gin.Context) {
	var req models.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, badRequest("%v", err))
		return
	}
	owner, err := parseAddress("new_owner", req.NewOwner)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.deps.Root.TransferRoot(c.Request.Context(), middleware.Caller(c), owner); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "transferred"})
}

func parseAddress(field, s string) (common.Address, error) {
	addr, ok := claim.ParseAddress(s)
	if !ok {
		return common.Address{}, badRequest("%s %q is not a 0x-prefixed address", field, s)
	}
	return addr, nil
}
