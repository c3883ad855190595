package services

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"futsald/internal/models"
	"futsald/internal/store"
	"futsald/internal/structures"
)

type IdentityServiceInterface interface {
	MintDeviceID() string
	Register(deviceID, nickname string, now time.Time) error
	IdentityFor(deviceID string) (models.IdentityMapping, bool)
	Unregister(deviceID string, now time.Time) error
}

type IdentityService struct {
	store      *store.Store
	attendance AttendanceServiceInterface
	conf       *structures.Config
}

func NewIdentityService(st *store.Store, attendance AttendanceServiceInterface, conf *structures.Config) IdentityServiceInterface {
	return &IdentityService{store: st, attendance: attendance, conf: conf}
}

// MintDeviceID issues a fresh device identity for clients that have none.
func (is *IdentityService) MintDeviceID() string {
	return uuid.NewString()
}

// Register binds a nickname to the device. Uniqueness is checked against the
// active day's participant list only, case-insensitively; a device renaming
// to its own nickname (or a case variant of it) always passes. On rename the
// previous nickname is swept from every recorded day and the active day's
// status, if any, is re-applied under the new name. The mapping write and the
// sweep are separate writes.
func (is *IdentityService) Register(deviceID, nickname string, now time.Time) error {
	if deviceID == "" {
		return ErrEmptyDeviceID
	}
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return ErrEmptyNickname
	}
	if utf8.RuneCountInString(nickname) > is.conf.Board.MaxNicknameLength {
		return ErrNicknameTooLong
	}

	prev, hadPrev := is.store.Identities.Get(deviceID)
	activeDay := is.attendance.ActiveDay(now)

	for _, p := range is.attendance.ListParticipants(activeDay) {
		if !strings.EqualFold(p.Nickname, nickname) {
			continue
		}
		if hadPrev && strings.EqualFold(p.Nickname, prev.Nickname) {
			continue
		}
		return ErrNicknameTaken
	}

	is.store.Identities.Put(deviceID, nickname, now)
	is.publishIdentities()

	if hadPrev && prev.Nickname != nickname {
		status, hadStatus := is.attendance.StatusOf(activeDay, prev.Nickname)
		is.attendance.RemoveNicknameEverywhere(prev.Nickname)
		if hadStatus {
			is.attendance.ApplyStatus(activeDay, nickname, status, now)
		}
	}
	return nil
}

func (is *IdentityService) IdentityFor(deviceID string) (models.IdentityMapping, bool) {
	return is.store.Identities.Get(deviceID)
}

// Unregister drops the device's mapping and removes its nickname from the
// active day. Past days keep the name so historical statistics survive.
func (is *IdentityService) Unregister(deviceID string, now time.Time) error {
	if deviceID == "" {
		return ErrEmptyDeviceID
	}
	mapping, ok := is.store.Identities.Get(deviceID)
	if !ok {
		return ErrNotRegistered
	}

	activeDay := is.attendance.ActiveDay(now)
	participants := is.store.Attendance.Participants(activeDay)
	filtered := participants[:0:0]
	for _, p := range participants {
		if p.Nickname != mapping.Nickname {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) != len(participants) {
		is.store.Attendance.WriteParticipants(activeDay, filtered, now)
		is.store.Publish(store.TopicAttendance(activeDay), is.attendance.View(activeDay, now))
	}

	is.store.Identities.Delete(deviceID)
	is.publishIdentities()
	return nil
}

func (is *IdentityService) publishIdentities() {
	is.store.Publish(store.TopicIdentities, map[string]int{"mappings": is.store.Identities.Len()})
}
