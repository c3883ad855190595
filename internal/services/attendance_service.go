package services

import (
	"sort"
	"time"

	"futsald/internal/models"
	"futsald/internal/store"
	"futsald/internal/structures"
)

// DayView is the rendered state of one attendance day: the sorted participant
// list plus the derived readiness flags the clients display.
type DayView struct {
	Day           string               `json:"day"`
	Date          string               `json:"date"`
	LastUpdated   time.Time            `json:"lastUpdated"`
	Participants  []models.Participant `json:"participants"`
	JoinCount     int                  `json:"joinCount"`
	PassCount     int                  `json:"passCount"`
	MatchReady    bool                 `json:"matchReady"`
	PracticeReady bool                 `json:"practiceReady"`
	LunchOpen     bool                 `json:"lunchOpen"`
}

type AttendanceServiceInterface interface {
	ActiveDay(now time.Time) string
	SetStatus(deviceID string, status models.Status, now time.Time) (DayView, error)
	ApplyStatus(day, nickname string, status models.Status, now time.Time)
	StatusOf(day, nickname string) (models.Status, bool)
	ListParticipants(day string) []models.Participant
	CountByStatus(day string, status models.Status) int
	View(day string, now time.Time) DayView
	ResetDay(day string, preserveMetadata bool)
	RemoveNicknameEverywhere(nickname string) []string
}

type AttendanceService struct {
	store *store.Store
	conf  *structures.Config
}

func NewAttendanceService(st *store.Store, conf *structures.Config) AttendanceServiceInterface {
	return &AttendanceService{store: st, conf: conf}
}

func (as *AttendanceService) ActiveDay(now time.Time) string {
	return DayKey(now, as.conf.Attendance.RolloverHour)
}

// SetStatus records the caller's intent on the active day. The device must
// hold a registered nickname; its previous entry for the day, if any, is
// superseded.
func (as *AttendanceService) SetStatus(deviceID string, status models.Status, now time.Time) (DayView, error) {
	if deviceID == "" {
		return DayView{}, ErrEmptyDeviceID
	}
	if !status.Valid() {
		return DayView{}, ErrInvalidStatus
	}
	mapping, ok := as.store.Identities.Get(deviceID)
	if !ok {
		return DayView{}, ErrNotRegistered
	}

	day := as.ActiveDay(now)
	as.ApplyStatus(day, mapping.Nickname, status, now)
	return as.View(day, now), nil
}

// ApplyStatus writes a participant entry by nickname, bypassing the identity
// lookup. The rename path re-applies a preserved status through this. Any
// existing entry for the nickname is removed first; "none" records no entry,
// so withdrawing an intent drops the participant from the day.
func (as *AttendanceService) ApplyStatus(day, nickname string, status models.Status, now time.Time) {
	participants := as.store.Attendance.Participants(day)

	kept := make([]models.Participant, 0, len(participants)+1)
	for _, p := range participants {
		if p.Nickname != nickname {
			kept = append(kept, p)
		}
	}
	if status != models.StatusNone {
		kept = append(kept, models.Participant{Nickname: nickname, Status: status, Time: ClockTime(now)})
	}

	as.store.Attendance.WriteParticipants(day, kept, now)
	as.publishDay(day, now)
}

func (as *AttendanceService) StatusOf(day, nickname string) (models.Status, bool) {
	for _, p := range as.store.Attendance.Participants(day) {
		if p.Nickname == nickname {
			return p.Status, true
		}
	}
	return "", false
}

// ListParticipants returns the day's entries ordered join first, pass second,
// everything else last. Order within a group is the recording order.
func (as *AttendanceService) ListParticipants(day string) []models.Participant {
	participants := as.store.Attendance.Participants(day)
	sort.SliceStable(participants, func(i, j int) bool {
		return statusRank(participants[i].Status) < statusRank(participants[j].Status)
	})
	return participants
}

func statusRank(s models.Status) int {
	switch s {
	case models.StatusJoin:
		return 0
	case models.StatusPass:
		return 1
	default:
		return 2
	}
}

func (as *AttendanceService) CountByStatus(day string, status models.Status) int {
	count := 0
	for _, p := range as.store.Attendance.Participants(day) {
		if p.Status == status {
			count++
		}
	}
	return count
}

func (as *AttendanceService) View(day string, now time.Time) DayView {
	view := DayView{
		Day:          day,
		Participants: as.ListParticipants(day),
	}
	if record, ok := as.store.Attendance.Day(day); ok {
		view.Date = record.Date
		view.LastUpdated = record.LastUpdated
	}
	for _, p := range view.Participants {
		switch p.Status {
		case models.StatusJoin:
			view.JoinCount++
		case models.StatusPass:
			view.PassCount++
		}
	}
	view.MatchReady = view.JoinCount >= as.conf.Attendance.MatchThreshold
	view.PracticeReady = view.JoinCount >= as.conf.Attendance.PracticeThreshold
	view.LunchOpen = InWindow(now, as.conf.Attendance.LunchStart, as.conf.Attendance.LunchEnd)
	return view
}

// ResetDay clears a day's participants. preserveMetadata keeps the record so
// join statistics over past days stay intact; without it the record is purged.
func (as *AttendanceService) ResetDay(day string, preserveMetadata bool) {
	as.store.Attendance.Reset(day, preserveMetadata)
	as.publishDay(day, time.Now())
}

// RemoveNicknameEverywhere drops the nickname from every recorded day and
// pushes an update for each day that changed.
func (as *AttendanceService) RemoveNicknameEverywhere(nickname string) []string {
	changed := as.store.Attendance.RemoveNickname(nickname)
	now := time.Now()
	for _, day := range changed {
		as.publishDay(day, now)
	}
	return changed
}

func (as *AttendanceService) publishDay(day string, now time.Time) {
	as.store.Publish(store.TopicAttendance(day), as.View(day, now))
}
