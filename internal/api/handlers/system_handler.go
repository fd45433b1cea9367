package handlers

import (
	"net/http"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemHandler handles liveness and host status requests.
type SystemHandler struct {
	startedAt time.Time
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{startedAt: time.Now()}
}

// Health is the liveness probe. It returns ok unconditionally once the
// process is serving.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Status reports process uptime and host-level resource figures. Host
// probes are best-effort: a failing probe zeroes the field, it never fails
// the request.
func (h *SystemHandler) Status(w http.ResponseWriter, r *http.Request) {
	var hostUptime uint64
	if up, err := host.Uptime(); err == nil {
		hostUptime = up
	}

	var memUsedPercent float64
	if vm, err := mem.VirtualMemory(); err == nil {
		memUsedPercent = vm.UsedPercent
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status":            "ok",
		"uptimeSeconds":     int64(time.Since(h.startedAt).Seconds()),
		"hostUptime":        hostUptime,
		"memoryUsedPercent": memUsedPercent,
	})
}
