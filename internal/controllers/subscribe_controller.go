package controllers

import (
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"futsald/internal/providers"
	"futsald/internal/realtime"
	"futsald/internal/services"
	"futsald/internal/store"
)

type SubscribeController struct {
	logger     providers.Logger
	store      *store.Store
	attendance services.AttendanceServiceInterface
	upgrader   websocket.Upgrader
}

func NewSubscribeController(logger providers.Logger, st *store.Store, attendance services.AttendanceServiceInterface) *SubscribeController {
	return &SubscribeController{
		logger:     logger,
		store:      st,
		attendance: attendance,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Subscribe upgrades the request to a websocket and streams store updates for
// the requested topics. Without an explicit topic list the client gets the
// active attendance day, the board and the announcements.
func (sc *SubscribeController) Subscribe(w http.ResponseWriter, r *http.Request) {
	topics := sc.topicsFromQuery(r)
	deviceID := r.URL.Query().Get("device")

	ws, err := sc.upgrader.Upgrade(w, r, nil)
	if err != nil {
		sc.logger.Warnf(providers.TypeWs, "Upgrade failed: %s", err)
		return
	}

	conn := realtime.NewConnection(deviceID, ws)
	conn.Start()

	sub := sc.store.Hub().Subscribe(topics...)
	sc.logger.Debugf(providers.TypeWs, "Subscription %s opened for %s", conn.ID, strings.Join(topics, ","))

	go sc.pump(conn, sub)
	go sc.readLoop(conn, sub, ws)
}

func (sc *SubscribeController) topicsFromQuery(r *http.Request) []string {
	raw := r.URL.Query().Get("topics")
	if raw == "" {
		return []string{
			store.TopicAttendance(sc.attendance.ActiveDay(time.Now())),
			store.TopicMessages,
			store.TopicAnnouncements,
		}
	}
	parts := strings.Split(raw, ",")
	topics := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			topics = append(topics, p)
		}
	}
	return topics
}

func (sc *SubscribeController) pump(conn *realtime.Connection, sub *store.Subscription) {
	for event := range sub.C {
		payload, err := json.Marshal(event)
		if err != nil {
			continue
		}
		if err := conn.Send(payload); err != nil {
			sub.Cancel()
			return
		}
	}
}

// readLoop drains the client side so close frames and pongs are processed.
// Any read error tears the subscription down.
func (sc *SubscribeController) readLoop(conn *realtime.Connection, sub *store.Subscription, ws *websocket.Conn) {
	defer func() {
		sub.Cancel()
		conn.Close(websocket.CloseNormalClosure, "")
		sc.logger.Debugf(providers.TypeWs, "Subscription %s closed", conn.ID)
	}()

	ws.SetReadLimit(maxRequestBodySize)
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
	}
}
