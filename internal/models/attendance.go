package models

import (
	"sync"
	"time"
)

type Status string

const (
	StatusJoin Status = "join"
	StatusPass Status = "pass"
	StatusNone Status = "none"
)

func (s Status) Valid() bool {
	return s == StatusJoin || s == StatusPass || s == StatusNone
}

// Participant is one declared intent inside an attendance day.
// Time is a local wall-clock string ("H:MM") captured at write time.
type Participant struct {
	Nickname string `json:"nickname"`
	Status   Status `json:"status"`
	Time     string `json:"time"`
}

// AttendanceDay is one rollover period's record. The record itself survives
// rollover resets; only Participants is cleared, so historical statistics
// keep working.
type AttendanceDay struct {
	Participants []Participant `json:"participants"`
	Date         string        `json:"date"`
	LastUpdated  time.Time     `json:"lastUpdated"`
}

func (d *AttendanceDay) clone() *AttendanceDay {
	if d == nil {
		return nil
	}
	cp := &AttendanceDay{
		Participants: make([]Participant, len(d.Participants)),
		Date:         d.Date,
		LastUpdated:  d.LastUpdated,
	}
	copy(cp.Participants, d.Participants)
	return cp
}

// DayStore holds every AttendanceDay keyed by "YYYY-MM-DD".
type DayStore struct {
	mu   sync.RWMutex
	days map[string]*AttendanceDay
}

func NewDayStore() *DayStore {
	return &DayStore{days: make(map[string]*AttendanceDay)}
}

func (s *DayStore) Day(key string) (*AttendanceDay, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	day, ok := s.days[key]
	if !ok {
		return nil, false
	}
	return day.clone(), true
}

func (s *DayStore) Participants(key string) []Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	day, ok := s.days[key]
	if !ok {
		return nil
	}
	cp := make([]Participant, len(day.Participants))
	copy(cp, day.Participants)
	return cp
}

// WriteParticipants replaces the whole participants array of a day.
// Last writer wins; the record is created on first write.
func (s *DayStore) WriteParticipants(key string, participants []Participant, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day, ok := s.days[key]
	if !ok {
		day = &AttendanceDay{Date: now.Format("Mon Jan 2 2006")}
		s.days[key] = day
	}
	day.Participants = make([]Participant, len(participants))
	copy(day.Participants, participants)
	day.LastUpdated = now
}

// Reset clears a day's participants. With preserveMetadata the record and its
// date/lastUpdated fields survive; without it the record is removed entirely
// (admin purge path). Returns false when the day does not exist.
func (s *DayStore) Reset(key string, preserveMetadata bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	day, ok := s.days[key]
	if !ok {
		return false
	}
	if !preserveMetadata {
		delete(s.days, key)
		return true
	}
	day.Participants = day.Participants[:0]
	return true
}

// RemoveNickname drops a nickname's entries from every day and reports the
// keys of the days that actually changed. Unchanged days are left untouched
// so callers write back only what moved.
func (s *DayStore) RemoveNickname(nickname string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changed []string
	for key, day := range s.days {
		filtered := day.Participants[:0:0]
		for _, p := range day.Participants {
			if p.Nickname != nickname {
				filtered = append(filtered, p)
			}
		}
		if len(filtered) != len(day.Participants) {
			day.Participants = filtered
			changed = append(changed, key)
		}
	}
	return changed
}

func (s *DayStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.days))
	for key := range s.days {
		keys = append(keys, key)
	}
	return keys
}

func (s *DayStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.days)
}

func (s *DayStore) GetData() map[string]*AttendanceDay {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]*AttendanceDay, len(s.days))
	for key, day := range s.days {
		result[key] = day.clone()
	}
	return result
}

func (s *DayStore) PutData(data map[string]*AttendanceDay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.days = make(map[string]*AttendanceDay, len(data))
	for key, day := range data {
		if day == nil {
			continue
		}
		s.days[key] = day.clone()
	}
}
