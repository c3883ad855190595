package models

import (
	"sync"
	"time"
)

// Message is one board entry. Likes mirrors the cardinality of LikedBy and is
// incremented/decremented on toggle, never recounted; the pair must stay
// consistent through any toggle sequence.
type Message struct {
	ID        string          `json:"id"`
	Text      string          `json:"text"`
	Author    string          `json:"author"`
	AuthorID  string          `json:"authorId"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt *time.Time      `json:"updatedAt,omitempty"`
	Likes     int             `json:"likes"`
	LikedBy   map[string]bool `json:"likedBy"`
}

func (m *Message) clone() *Message {
	if m == nil {
		return nil
	}
	cp := *m
	cp.LikedBy = make(map[string]bool, len(m.LikedBy))
	for id, v := range m.LikedBy {
		cp.LikedBy[id] = v
	}
	if m.UpdatedAt != nil {
		t := *m.UpdatedAt
		cp.UpdatedAt = &t
	}
	return &cp
}

type MessageStore struct {
	mu       sync.RWMutex
	messages map[string]*Message
}

func NewMessageStore() *MessageStore {
	return &MessageStore{messages: make(map[string]*Message)}
}

func (s *MessageStore) Add(msg *Message) {
	if msg == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[msg.ID] = msg.clone()
}

func (s *MessageStore) Get(id string) (*Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msg, ok := s.messages[id]
	if !ok {
		return nil, false
	}
	return msg.clone(), true
}

func (s *MessageStore) All() []*Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*Message, 0, len(s.messages))
	for _, msg := range s.messages {
		result = append(result, msg.clone())
	}
	return result
}

func (s *MessageStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.messages[id]
	delete(s.messages, id)
	return ok
}

func (s *MessageStore) SetText(id, text string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.messages[id]
	if !ok {
		return false
	}
	msg.Text = text
	t := now
	msg.UpdatedAt = &t
	return true
}

// ToggleLike flips deviceID's membership in LikedBy and adjusts Likes by
// exactly one, both under a single lock so the invariant cannot be observed
// broken. Returns the new membership state.
func (s *MessageStore) ToggleLike(id, deviceID string) (liked bool, likes int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, found := s.messages[id]
	if !found {
		return false, 0, false
	}
	if msg.LikedBy == nil {
		msg.LikedBy = make(map[string]bool)
	}
	if msg.LikedBy[deviceID] {
		delete(msg.LikedBy, deviceID)
		msg.Likes--
		return false, msg.Likes, true
	}
	msg.LikedBy[deviceID] = true
	msg.Likes++
	return true, msg.Likes, true
}

func (s *MessageStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

func (s *MessageStore) GetData() map[string]*Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]*Message, len(s.messages))
	for id, msg := range s.messages {
		result[id] = msg.clone()
	}
	return result
}

func (s *MessageStore) PutData(data map[string]*Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = make(map[string]*Message, len(data))
	for id, msg := range data {
		if msg == nil {
			continue
		}
		cp := msg.clone()
		if cp.ID == "" {
			cp.ID = id
		}
		if cp.LikedBy == nil {
			cp.LikedBy = make(map[string]bool)
		}
		s.messages[id] = cp
	}
}
