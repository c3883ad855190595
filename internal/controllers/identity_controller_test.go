package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"futsald/internal/models"
)

func newIdentityController(f *fixture) *IdentityController {
	return NewIdentityController(f.logger, f.identity)
}

func TestMint(t *testing.T) {
	f := newFixture(t)
	ctl := newIdentityController(f)

	rec := postJSON(t, ctl.Mint, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "deviceId")
}

func TestRegister_OK(t *testing.T) {
	f := newFixture(t)
	ctl := newIdentityController(f)

	rec := postJSON(t, ctl.Register, registerRequest{DeviceID: "device-1", Nickname: "Ken"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	mapping, ok := f.identity.IdentityFor("device-1")
	require.True(t, ok)
	assert.Equal(t, "Ken", mapping.Nickname)
}

func TestRegister_Invalid(t *testing.T) {
	f := newFixture(t)
	ctl := newIdentityController(f)

	rec := postJSON(t, ctl.Register, registerRequest{DeviceID: "device-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_Conflict(t *testing.T) {
	f := newFixture(t)
	f.register(t, "device-1", "Ken")
	_, err := f.attendance.SetStatus("device-1", models.StatusJoin, time.Now())
	require.NoError(t, err)
	ctl := newIdentityController(f)

	rec := postJSON(t, ctl.Register, registerRequest{DeviceID: "device-2", Nickname: "ken"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetIdentity(t *testing.T) {
	f := newFixture(t)
	f.register(t, "device-1", "Ken")
	ctl := newIdentityController(f)

	var mapping models.IdentityMapping
	rec := getJSON(t, ctl.Get, "/identity?device=device-1", &mapping)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ken", mapping.Nickname)

	rec = getJSON(t, ctl.Get, "/identity?device=ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = getJSON(t, ctl.Get, "/identity", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnregister_Controller(t *testing.T) {
	f := newFixture(t)
	f.register(t, "device-1", "Ken")
	ctl := newIdentityController(f)

	rec := postJSON(t, ctl.Unregister, unregisterRequest{DeviceID: "device-1"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, ok := f.identity.IdentityFor("device-1")
	assert.False(t, ok)

	rec = postJSON(t, ctl.Unregister, unregisterRequest{DeviceID: "device-1"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
