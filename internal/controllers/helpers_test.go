package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"futsald/internal/services"
	"futsald/internal/store"
	"futsald/internal/testutil"
)

type fixture struct {
	store      *store.Store
	attendance services.AttendanceServiceInterface
	identity   services.IdentityServiceInterface
	board      services.BoardServiceInterface
	stats      services.StatsServiceInterface
	cache      *testutil.MockCache
	logger     *testutil.MockLogger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conf := testutil.TestConfig()
	st := store.NewStore()
	attendance := services.NewAttendanceService(st, conf)
	return &fixture{
		store:      st,
		attendance: attendance,
		identity:   services.NewIdentityService(st, attendance, conf),
		board:      services.NewBoardService(st, conf),
		stats:      services.NewStatsService(st, attendance),
		cache:      testutil.NewMockCache(),
		logger:     &testutil.MockLogger{},
	}
}

func (f *fixture) register(t *testing.T, deviceID, nickname string) {
	t.Helper()
	require.NoError(t, f.identity.Register(deviceID, nickname, time.Now()))
}

func postJSON(t *testing.T, handler http.HandlerFunc, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func getJSON(t *testing.T, handler http.HandlerFunc, target string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}
