package models

import (
	"sync"
	"time"
)

// Announcement marks a message as pinned. The record carries a denormalized
// snapshot of the message fields (the persisted layout requires them); reads
// should still prefer the live message text when the source exists, since the
// copy is only re-synced on edit propagation.
type Announcement struct {
	MessageID string    `json:"messageId"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	PinnedAt  time.Time `json:"pinnedAt"`
}

type AnnouncementStore struct {
	mu     sync.RWMutex
	pinned map[string]*Announcement
}

func NewAnnouncementStore() *AnnouncementStore {
	return &AnnouncementStore{pinned: make(map[string]*Announcement)}
}

func (s *AnnouncementStore) Put(a *Announcement) {
	if a == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	s.pinned[a.MessageID] = &cp
}

func (s *AnnouncementStore) Get(messageID string) (Announcement, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.pinned[messageID]
	if !ok {
		return Announcement{}, false
	}
	return *a, true
}

func (s *AnnouncementStore) Has(messageID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.pinned[messageID]
	return ok
}

func (s *AnnouncementStore) Delete(messageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pinned[messageID]
	delete(s.pinned, messageID)
	return ok
}

func (s *AnnouncementStore) All() []Announcement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]Announcement, 0, len(s.pinned))
	for _, a := range s.pinned {
		result = append(result, *a)
	}
	return result
}

func (s *AnnouncementStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pinned)
}

func (s *AnnouncementStore) CountByAuthor(authorID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, a := range s.pinned {
		if a.AuthorID == authorID {
			count++
		}
	}
	return count
}

// SetText re-syncs the denormalized copy after a message edit.
func (s *AnnouncementStore) SetText(messageID, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.pinned[messageID]
	if !ok {
		return false
	}
	a.Text = text
	return true
}

func (s *AnnouncementStore) GetData() map[string]*Announcement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]*Announcement, len(s.pinned))
	for id, a := range s.pinned {
		cp := *a
		result[id] = &cp
	}
	return result
}

func (s *AnnouncementStore) PutData(data map[string]*Announcement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pinned = make(map[string]*Announcement, len(data))
	for id, a := range data {
		if a == nil {
			continue
		}
		cp := *a
		if cp.MessageID == "" {
			cp.MessageID = id
		}
		s.pinned[id] = &cp
	}
}
