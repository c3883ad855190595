package controllers

import (
	"net/http"
	"time"

	"futsald/internal/models"
	"futsald/internal/providers"
	"futsald/internal/services"
)

type AttendanceController struct {
	logger     providers.Logger
	attendance services.AttendanceServiceInterface
	stats      services.StatsServiceInterface
	cache      providers.CacheProviderInterface
}

func NewAttendanceController(logger providers.Logger, attendance services.AttendanceServiceInterface, stats services.StatsServiceInterface, cache providers.CacheProviderInterface) *AttendanceController {
	return &AttendanceController{
		logger:     logger,
		attendance: attendance,
		stats:      stats,
		cache:      cache,
	}
}

type setStatusRequest struct {
	DeviceID string `json:"deviceId"`
	Status   string `json:"status"`
}

func (ac *AttendanceController) SetStatus(w http.ResponseWriter, r *http.Request) {
	var payload setStatusRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	view, err := ac.attendance.SetStatus(payload.DeviceID, models.Status(payload.Status), time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	ac.logger.Debugf(providers.TypePost, "Status %s recorded for day %s", payload.Status, view.Day)
	writeJSON(w, http.StatusOK, view)
}

func (ac *AttendanceController) GetDay(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	day := r.URL.Query().Get("day")
	if day == "" {
		day = ac.attendance.ActiveDay(now)
	}
	serveFromCacheOrCompute(w, ac.cache, "day:"+day, func() (any, error) {
		return ac.attendance.View(day, now), nil
	})
}

func (ac *AttendanceController) GetStats(w http.ResponseWriter, r *http.Request) {
	serveFromCacheOrCompute(w, ac.cache, "stats", func() (any, error) {
		return ac.stats.ComputeStats(), nil
	})
}

type resetStatsRequest struct {
	Nickname string `json:"nickname"`
}

func (ac *AttendanceController) ResetStats(w http.ResponseWriter, r *http.Request) {
	var payload resetStatsRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	if err := ac.stats.ResetUser(payload.Nickname); err != nil {
		writeServiceError(w, err)
		return
	}
	ac.logger.Infof(providers.TypePost, "Statistics reset for %s", payload.Nickname)
	w.WriteHeader(http.StatusNoContent)
}

type adminResetRequest struct {
	Day   string `json:"day"`
	Purge bool   `json:"purge"`
}

// AdminReset clears one day's sheet on demand. With purge the whole record is
// dropped instead of just the participants.
func (ac *AttendanceController) AdminReset(w http.ResponseWriter, r *http.Request) {
	var payload adminResetRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	day := payload.Day
	if day == "" {
		day = ac.attendance.ActiveDay(time.Now())
	}
	ac.attendance.ResetDay(day, !payload.Purge)
	ac.logger.Infof(providers.TypePost, "Day %s reset (purge=%v)", day, payload.Purge)
	writeJSON(w, http.StatusOK, map[string]string{"day": day})
}
