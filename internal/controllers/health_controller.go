package controllers

import (
	"fmt"
	json "github.com/goccy/go-json"
	"net/http"
	"puzzlestats/internal/services"
	"time"
)

type HealthController struct {
	records   services.RecordServiceInterface
	backfill  BackfillRunner
	startTime time.Time
}

type healthResponse struct {
	Status          string  `json:"status"`
	Uptime          string  `json:"uptime"`
	UptimeSeconds   float64 `json:"uptime_seconds"`
	Users           int     `json:"users"`
	Revision        uint64  `json:"revision"`
	BackfillRunning bool    `json:"backfill_running"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:          "ok",
		Uptime:          formatDuration(uptime),
		UptimeSeconds:   uptime.Seconds(),
		Users:           hc.records.UserCount(),
		Revision:        hc.records.Revision(),
		BackfillRunning: hc.backfill.Running(),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(records services.RecordServiceInterface, backfill BackfillRunner) *HealthController {
	return &HealthController{
		records:   records,
		backfill:  backfill,
		startTime: time.Now(),
	}
}
