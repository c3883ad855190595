package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"futsald/internal/models"
)

func TestMintDeviceID_Unique(t *testing.T) {
	_, _, identity := newAttendanceFixture(t)

	a := identity.MintDeviceID()
	b := identity.MintDeviceID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestRegister_Validation(t *testing.T) {
	_, _, identity := newAttendanceFixture(t)

	assert.ErrorIs(t, identity.Register("", "Ken", noon), ErrEmptyDeviceID)
	assert.ErrorIs(t, identity.Register("device-1", "", noon), ErrEmptyNickname)
	assert.ErrorIs(t, identity.Register("device-1", "   ", noon), ErrEmptyNickname)
	assert.ErrorIs(t, identity.Register("device-1", strings.Repeat("x", 11), noon), ErrNicknameTooLong)
}

func TestRegister_TenRuneNicknameAllowed(t *testing.T) {
	_, _, identity := newAttendanceFixture(t)

	// multi-byte runes count as one
	require.NoError(t, identity.Register("device-1", strings.Repeat("ä", 10), noon))
}

func TestRegister_UniquenessAgainstActiveDayOnly(t *testing.T) {
	_, attendance, identity := newAttendanceFixture(t)

	// Ken appears on a past day only
	attendance.ApplyStatus("2025-03-01", "Ken", models.StatusJoin, noon)
	require.NoError(t, identity.Register("device-2", "Ken", noon))

	// now Ken is on the active day; a third device cannot take the name
	require.NoError(t, identity.Register("device-2", "Ken", noon))
	_, err := attendance.SetStatus("device-2", models.StatusJoin, noon)
	require.NoError(t, err)

	assert.ErrorIs(t, identity.Register("device-3", "Ken", noon), ErrNicknameTaken)
	assert.ErrorIs(t, identity.Register("device-3", "KEN", noon), ErrNicknameTaken)
}

func TestRegister_SelfRenameAllowed(t *testing.T) {
	_, attendance, identity := newAttendanceFixture(t)

	require.NoError(t, identity.Register("device-1", "Ken", noon))
	_, err := attendance.SetStatus("device-1", models.StatusJoin, noon)
	require.NoError(t, err)

	// same device may re-register its own nickname, including a case change
	require.NoError(t, identity.Register("device-1", "Ken", noon))
	require.NoError(t, identity.Register("device-1", "KEN", noon))
}

func TestRegister_RenameSweepsOldNameAndKeepsStatus(t *testing.T) {
	_, attendance, identity := newAttendanceFixture(t)

	require.NoError(t, identity.Register("device-1", "Ken", noon))
	_, err := attendance.SetStatus("device-1", models.StatusJoin, noon)
	require.NoError(t, err)
	attendance.ApplyStatus("2025-03-01", "Ken", models.StatusJoin, noon)

	require.NoError(t, identity.Register("device-1", "Kenji", noon))

	// old name gone everywhere
	assert.Empty(t, attendance.ListParticipants("2025-03-01"))

	// active day status re-applied under the new name
	day := attendance.ActiveDay(noon)
	got := attendance.ListParticipants(day)
	require.Len(t, got, 1)
	assert.Equal(t, "Kenji", got[0].Nickname)
	assert.Equal(t, models.StatusJoin, got[0].Status)

	mapping, ok := identity.IdentityFor("device-1")
	require.True(t, ok)
	assert.Equal(t, "Kenji", mapping.Nickname)
}

func TestRegister_RenameWithoutActiveStatus(t *testing.T) {
	_, attendance, identity := newAttendanceFixture(t)

	require.NoError(t, identity.Register("device-1", "Ken", noon))
	require.NoError(t, identity.Register("device-1", "Kenji", noon))

	assert.Empty(t, attendance.ListParticipants(attendance.ActiveDay(noon)))
}

func TestUnregister(t *testing.T) {
	_, attendance, identity := newAttendanceFixture(t)

	require.NoError(t, identity.Register("device-1", "Ken", noon))
	_, err := attendance.SetStatus("device-1", models.StatusJoin, noon)
	require.NoError(t, err)
	attendance.ApplyStatus("2025-03-01", "Ken", models.StatusJoin, noon)

	require.NoError(t, identity.Unregister("device-1", noon))

	_, ok := identity.IdentityFor("device-1")
	assert.False(t, ok)

	// active day cleared, history kept
	assert.Empty(t, attendance.ListParticipants(attendance.ActiveDay(noon)))
	assert.Len(t, attendance.ListParticipants("2025-03-01"), 1)
}

func TestUnregister_Unknown(t *testing.T) {
	_, _, identity := newAttendanceFixture(t)
	assert.ErrorIs(t, identity.Unregister("ghost", noon), ErrNotRegistered)
	assert.ErrorIs(t, identity.Unregister("", noon), ErrEmptyDeviceID)
}
