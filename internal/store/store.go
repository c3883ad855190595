package store

import (
	"strings"
	"sync"

	json "github.com/goccy/go-json"

	"futsald/internal/models"
)

// Topic names mirror the top-level store paths.
const (
	TopicMessages      = "messages"
	TopicAnnouncements = "announcements"
	TopicIdentities    = "userMappings"
)

// TopicAttendance is the per-day attendance topic ("attendance/YYYY-MM-DD").
func TopicAttendance(day string) string {
	return "attendance/" + day
}

// Store is the in-process document tree: typed sections addressed the way the
// original hierarchical paths are, plus a hub pushing updates to subscribers.
// Writes are last-write-wins at the section level; multi-section updates are
// independent writes with no transaction spanning them.
type Store struct {
	Attendance    *models.DayStore
	Identities    *models.IdentityStore
	Messages      *models.MessageStore
	Announcements *models.AnnouncementStore
	UserLikes     *models.LikeIndex

	hub *Hub

	sysMu            sync.RWMutex
	lastRolloverDate string
}

func NewStore() *Store {
	return &Store{
		Attendance:    models.NewDayStore(),
		Identities:    models.NewIdentityStore(),
		Messages:      models.NewMessageStore(),
		Announcements: models.NewAnnouncementStore(),
		UserLikes:     models.NewLikeIndex(),
		hub:           NewHub(),
	}
}

func (s *Store) Hub() *Hub {
	return s.hub
}

// Publish pushes the payload to the topic's subscribers and, for nested
// topics such as "attendance/2025-08-29", also to subscribers of the parent
// section ("attendance"). Delivery is best-effort: a slow subscriber is
// skipped and catches up on its next authoritative read.
func (s *Store) Publish(topic string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	s.hub.Publish(topic, data)
	if idx := strings.IndexByte(topic, '/'); idx > 0 {
		s.hub.Publish(topic[:idx], data)
	}
}

// LastRolloverDate is the persisted marker gating the rollover reset.
func (s *Store) LastRolloverDate() string {
	s.sysMu.RLock()
	defer s.sysMu.RUnlock()
	return s.lastRolloverDate
}

// AdvanceRollover moves the marker from prev to next, conditionally: it fails
// when another ticker already advanced it. This is what makes the boundary
// reset idempotent across restarts and concurrent schedulers.
func (s *Store) AdvanceRollover(prev, next string) bool {
	s.sysMu.Lock()
	defer s.sysMu.Unlock()
	if s.lastRolloverDate != prev {
		return false
	}
	s.lastRolloverDate = next
	return true
}

// Snapshot captures the whole tree for persistence.
func (s *Store) Snapshot() *models.Snapshot {
	return &models.Snapshot{
		Version:          models.SnapshotVersion,
		Attendance:       s.Attendance.GetData(),
		UserMappings:     s.Identities.GetData(),
		Messages:         s.Messages.GetData(),
		Announcements:    s.Announcements.GetData(),
		UserLikes:        s.UserLikes.GetData(),
		LastRolloverDate: s.LastRolloverDate(),
	}
}

// Restore replaces the tree with a loaded snapshot. Nil sections are treated
// as empty so partial snapshots load cleanly.
func (s *Store) Restore(snap *models.Snapshot) {
	if snap == nil {
		return
	}
	s.Attendance.PutData(snap.Attendance)
	s.Identities.PutData(snap.UserMappings)
	s.Messages.PutData(snap.Messages)
	s.Announcements.PutData(snap.Announcements)
	s.UserLikes.PutData(snap.UserLikes)

	s.sysMu.Lock()
	s.lastRolloverDate = snap.LastRolloverDate
	s.sysMu.Unlock()
}
