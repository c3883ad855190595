package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"futsald/internal/models"
	"futsald/internal/store"
)

func newStatsFixture(t *testing.T) (AttendanceServiceInterface, StatsServiceInterface) {
	t.Helper()
	st := store.NewStore()
	attendance := NewAttendanceService(st, testConfig())
	return attendance, NewStatsService(st, attendance)
}

func TestComputeStats_CountsJoinsOnly(t *testing.T) {
	attendance, stats := newStatsFixture(t)

	attendance.ApplyStatus("2025-03-08", "Ken", models.StatusJoin, noon)
	attendance.ApplyStatus("2025-03-09", "Ken", models.StatusJoin, noon)
	attendance.ApplyStatus("2025-03-10", "Ken", models.StatusPass, noon)
	attendance.ApplyStatus("2025-03-10", "Mia", models.StatusJoin, noon)

	got := stats.ComputeStats()
	require.Len(t, got, 2)
	assert.Equal(t, UserStat{Nickname: "Ken", JoinCount: 2}, got[0])
	assert.Equal(t, UserStat{Nickname: "Mia", JoinCount: 1}, got[1])
}

func TestComputeStats_TieBreakByName(t *testing.T) {
	attendance, stats := newStatsFixture(t)

	attendance.ApplyStatus("2025-03-10", "Zoe", models.StatusJoin, noon)
	attendance.ApplyStatus("2025-03-10", "Amy", models.StatusJoin, noon)

	got := stats.ComputeStats()
	require.Len(t, got, 2)
	assert.Equal(t, "Amy", got[0].Nickname)
	assert.Equal(t, "Zoe", got[1].Nickname)
}

func TestComputeStats_TopTwenty(t *testing.T) {
	attendance, stats := newStatsFixture(t)

	for i := 0; i < 25; i++ {
		attendance.ApplyStatus("2025-03-10", fmt.Sprintf("p%02d", i), models.StatusJoin, noon)
	}

	got := stats.ComputeStats()
	assert.Len(t, got, 20)
}

func TestComputeStats_Empty(t *testing.T) {
	_, stats := newStatsFixture(t)
	assert.Empty(t, stats.ComputeStats())
}

func TestResetUser(t *testing.T) {
	attendance, stats := newStatsFixture(t)

	attendance.ApplyStatus("2025-03-08", "Ken", models.StatusJoin, noon)
	attendance.ApplyStatus("2025-03-09", "Ken", models.StatusJoin, noon)
	attendance.ApplyStatus("2025-03-09", "Mia", models.StatusJoin, noon)

	require.NoError(t, stats.ResetUser("Ken"))

	got := stats.ComputeStats()
	require.Len(t, got, 1)
	assert.Equal(t, "Mia", got[0].Nickname)

	assert.ErrorIs(t, stats.ResetUser(""), ErrEmptyNickname)
}
