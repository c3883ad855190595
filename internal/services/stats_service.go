package services

import (
	"sort"

	"futsald/internal/models"
	"futsald/internal/store"
)

// topStatsLimit caps the leaderboard length.
const topStatsLimit = 20

// UserStat is one leaderboard row: how many days the nickname joined.
type UserStat struct {
	Nickname  string `json:"nickname"`
	JoinCount int    `json:"joinCount"`
}

type StatsServiceInterface interface {
	ComputeStats() []UserStat
	ResetUser(nickname string) error
}

type StatsService struct {
	store      *store.Store
	attendance AttendanceServiceInterface
}

func NewStatsService(st *store.Store, attendance AttendanceServiceInterface) StatsServiceInterface {
	return &StatsService{store: st, attendance: attendance}
}

// ComputeStats scans every recorded day and counts join entries per nickname.
// Ties are broken by nickname so the ordering is deterministic.
func (ss *StatsService) ComputeStats() []UserStat {
	counts := make(map[string]int)
	for _, day := range ss.store.Attendance.GetData() {
		for _, p := range day.Participants {
			if p.Status == models.StatusJoin {
				counts[p.Nickname]++
			}
		}
	}

	stats := make([]UserStat, 0, len(counts))
	for nickname, count := range counts {
		stats = append(stats, UserStat{Nickname: nickname, JoinCount: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].JoinCount != stats[j].JoinCount {
			return stats[i].JoinCount > stats[j].JoinCount
		}
		return stats[i].Nickname < stats[j].Nickname
	})

	if len(stats) > topStatsLimit {
		stats = stats[:topStatsLimit]
	}
	return stats
}

// ResetUser erases a nickname's history from every recorded day.
func (ss *StatsService) ResetUser(nickname string) error {
	if nickname == "" {
		return ErrEmptyNickname
	}
	ss.attendance.RemoveNicknameEverywhere(nickname)
	return nil
}
