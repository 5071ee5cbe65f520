package handlers

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/tldclaim/internal/api/models"
	"github.com/shirou/gopsutil/v3/process"
)

// Health godoc
// @Summary Health check
// @Description Returns server health status, including store connectivity when a database is configured
// @Tags system
// @Produce json
// @Success 200 {object} models.StatusResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	if h.deps.DB != nil {
		if err := h.deps.DB.Health(); err != nil {
			h.logger.Warn("health check failed", "err", err)
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "database unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "ok"})
}

// Stats godoc
// @Summary Server statistics
// @Description Returns runtime statistics including memory, goroutines, and store sizes
// @Tags system
// @Produce json
// @Success 200 {object} models.ServerStatsResponse
// @Security ApiKeyAuth
// @Router /stats [get]
func (h *Handler) Stats(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(h.startTime)

	resp := models.ServerStatsResponse{
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: int64(uptime.Seconds()),
		StartTime:     h.startTime,
		GoRoutines:    runtime.NumGoroutine(),
		MemoryAllocMB: float64(m.Alloc) / 1024 / 1024,
		MemoryRSSMB:   residentMB(),
		NumCPU:        runtime.NumCPU(),
	}

	if h.deps.Root != nil {
		resp.Authority.Controllers = len(h.deps.Root.Controllers())
	}
	if h.deps.Registrar != nil {
		resp.Authority.DefaultRegistrar = h.deps.Registrar.DefaultOwner().Hex()
	}

	if h.deps.DB != nil {
		counts, err := h.deps.DB.Counts(c.Request.Context())
		if err != nil {
			h.fail(c, err)
			return
		}
		resp.Store = &models.StoreStatsResponse{
			Nodes:         counts.Nodes,
			OracleRecords: counts.OracleRecords,
			Registrations: counts.Registrations,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// residentMB reports the process RSS, or 0 when the platform hides it.
func residentMB() float64 {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0
	}
	mi, err := p.MemoryInfo()
	if err != nil || mi == nil {
		return 0
	}
	return float64(mi.RSS) / 1024 / 1024
}
