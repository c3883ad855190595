package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialConnection(t *testing.T) *Connection {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return NewConnection("device-1", ws)
}

func TestSend_Delivers(t *testing.T) {
	conn := dialConnection(t)
	conn.Start()
	defer conn.Close(websocket.CloseNormalClosure, "")

	assert.NoError(t, conn.Send([]byte("hello")))
}

func TestSend_AfterCloseDoesNotPanic(t *testing.T) {
	conn := dialConnection(t)
	conn.Start()
	conn.Close(websocket.CloseNormalClosure, "")

	// more sends than the buffer holds; none may panic and the closed
	// connection must start refusing them
	errors := 0
	for i := 0; i < 512; i++ {
		if conn.Send([]byte("late")) != nil {
			errors++
		}
	}
	assert.Positive(t, errors)
}

func TestClose_WhileSending(t *testing.T) {
	conn := dialConnection(t)
	conn.Start()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 512; i++ {
			if conn.Send([]byte("payload")) != nil {
				return
			}
		}
	}()

	conn.Close(websocket.CloseGoingAway, "shutting down")
	<-done

	select {
	case <-conn.Done():
	default:
		t.Fatal("connection should report done after Close")
	}
}

func TestClose_Idempotent(t *testing.T) {
	conn := dialConnection(t)
	conn.Start()

	conn.Close(websocket.CloseNormalClosure, "")
	conn.Close(websocket.CloseNormalClosure, "")
}
