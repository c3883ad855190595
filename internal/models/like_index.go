package models

import "sync"

// LikeIndex is the per-device reverse index of liked message ids
// (userLikes/{deviceId}/{messageId}). It exists so a device can recover its
// own like state after reload and must track each message's LikedBy set.
type LikeIndex struct {
	mu    sync.RWMutex
	likes map[string]map[string]bool
}

func NewLikeIndex() *LikeIndex {
	return &LikeIndex{likes: make(map[string]map[string]bool)}
}

func (s *LikeIndex) Like(deviceID, messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.likes[deviceID]
	if !ok {
		set = make(map[string]bool)
		s.likes[deviceID] = set
	}
	set[messageID] = true
}

func (s *LikeIndex) Unlike(deviceID, messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.likes[deviceID]
	if !ok {
		return
	}
	delete(set, messageID)
	if len(set) == 0 {
		delete(s.likes, deviceID)
	}
}

func (s *LikeIndex) Liked(deviceID, messageID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.likes[deviceID][messageID]
}

// MessagesFor returns the set of message ids the device has liked.
func (s *LikeIndex) MessagesFor(deviceID string) map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.likes[deviceID]
	if !ok {
		return nil
	}
	cp := make(map[string]bool, len(set))
	for id := range set {
		cp[id] = true
	}
	return cp
}

// RemoveMessage scrubs a deleted message from every device's index.
func (s *LikeIndex) RemoveMessage(messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for deviceID, set := range s.likes {
		delete(set, messageID)
		if len(set) == 0 {
			delete(s.likes, deviceID)
		}
	}
}

func (s *LikeIndex) GetData() map[string]map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]map[string]bool, len(s.likes))
	for deviceID, set := range s.likes {
		cp := make(map[string]bool, len(set))
		for id := range set {
			cp[id] = true
		}
		result[deviceID] = cp
	}
	return result
}

func (s *LikeIndex) PutData(data map[string]map[string]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.likes = make(map[string]map[string]bool, len(data))
	for deviceID, set := range data {
		if len(set) == 0 {
			continue
		}
		cp := make(map[string]bool, len(set))
		for id, v := range set {
			if v {
				cp[id] = true
			}
		}
		s.likes[deviceID] = cp
	}
}
