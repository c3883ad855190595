package models

// SnapshotVersion is the current on-disk snapshot format.
const SnapshotVersion = 1

// Snapshot is the persistence envelope for the whole document tree, laid out
// section-by-section the way the store paths are addressed.
type Snapshot struct {
	Version          int                         `json:"version"`
	Attendance       map[string]*AttendanceDay   `json:"attendance"`
	UserMappings     map[string]*IdentityMapping `json:"userMappings"`
	Messages         map[string]*Message         `json:"messages"`
	Announcements    map[string]*Announcement    `json:"announcements"`
	UserLikes        map[string]map[string]bool  `json:"userLikes"`
	LastRolloverDate string                      `json:"lastRolloverDate"`
}
