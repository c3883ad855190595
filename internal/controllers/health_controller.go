package controllers

import (
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"futsald/internal/services"
)

type HealthController struct {
	attendance services.AttendanceServiceInterface
	board      services.BoardServiceInterface
	startTime  time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Participants  int     `json:"participants"`
	Messages      int     `json:"messages"`
	Pinned        int     `json:"pinned"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	now := time.Now()
	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Participants:  len(hc.attendance.ListParticipants(hc.attendance.ActiveDay(now))),
		Messages:      hc.board.MessageCount(),
		Pinned:        hc.board.PinnedCount(),
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

func NewHealthController(attendance services.AttendanceServiceInterface, board services.BoardServiceInterface) *HealthController {
	return &HealthController{
		attendance: attendance,
		board:      board,
		startTime:  time.Now(),
	}
}
