package models

import (
	"sync"
	"time"
)

// IdentityMapping binds a device id to its current display nickname.
// At most one active nickname per device; overwritten on rename.
type IdentityMapping struct {
	Nickname  string    `json:"nickname"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type IdentityStore struct {
	mu       sync.RWMutex
	mappings map[string]*IdentityMapping
}

func NewIdentityStore() *IdentityStore {
	return &IdentityStore{mappings: make(map[string]*IdentityMapping)}
}

func (s *IdentityStore) Get(deviceID string) (IdentityMapping, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.mappings[deviceID]
	if !ok {
		return IdentityMapping{}, false
	}
	return *m, true
}

func (s *IdentityStore) Put(deviceID, nickname string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mappings[deviceID] = &IdentityMapping{Nickname: nickname, UpdatedAt: now}
}

func (s *IdentityStore) Delete(deviceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.mappings[deviceID]
	delete(s.mappings, deviceID)
	return ok
}

func (s *IdentityStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.mappings)
}

func (s *IdentityStore) GetData() map[string]*IdentityMapping {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]*IdentityMapping, len(s.mappings))
	for id, m := range s.mappings {
		cp := *m
		result[id] = &cp
	}
	return result
}

func (s *IdentityStore) PutData(data map[string]*IdentityMapping) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mappings = make(map[string]*IdentityMapping, len(data))
	for id, m := range data {
		if m == nil {
			continue
		}
		cp := *m
		s.mappings[id] = &cp
	}
}
