package controllers

import (
	"net/http"
	"time"

	"futsald/internal/providers"
	"futsald/internal/services"
)

type BoardController struct {
	logger providers.Logger
	board  services.BoardServiceInterface
	cache  providers.CacheProviderInterface
}

func NewBoardController(logger providers.Logger, board services.BoardServiceInterface, cache providers.CacheProviderInterface) *BoardController {
	return &BoardController{
		logger: logger,
		board:  board,
		cache:  cache,
	}
}

type postMessageRequest struct {
	DeviceID string `json:"deviceId"`
	Text     string `json:"text"`
}

func (bc *BoardController) Post(w http.ResponseWriter, r *http.Request) {
	var payload postMessageRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	msg, err := bc.board.Post(payload.DeviceID, payload.Text, time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	bc.logger.Debugf(providers.TypePost, "Message %s posted", msg.ID)
	writeJSON(w, http.StatusCreated, msg)
}

type editMessageRequest struct {
	DeviceID  string `json:"deviceId"`
	MessageID string `json:"messageId"`
	Text      string `json:"text"`
}

func (bc *BoardController) Edit(w http.ResponseWriter, r *http.Request) {
	var payload editMessageRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	msg, err := bc.board.Edit(payload.DeviceID, payload.MessageID, payload.Text, time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

type messageRefRequest struct {
	DeviceID  string `json:"deviceId"`
	MessageID string `json:"messageId"`
}

func (bc *BoardController) Delete(w http.ResponseWriter, r *http.Request) {
	var payload messageRefRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	if err := bc.board.Delete(payload.DeviceID, payload.MessageID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (bc *BoardController) Like(w http.ResponseWriter, r *http.Request) {
	var payload messageRefRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	liked, likes, err := bc.board.ToggleLike(payload.DeviceID, payload.MessageID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"liked": liked, "likes": likes})
}

// List serves the bucketed board. The per-viewer like flags make the cache
// key device specific.
func (bc *BoardController) List(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("device")
	// keyed per viewer; another device's like or pin stays invisible to a
	// cached reader until the cache TTL lapses (last-write-wins reads)
	serveFromCacheOrCompute(w, bc.cache, "board:"+deviceID, func() (any, error) {
		return bc.board.List(deviceID, time.Now()), nil
	})
}

func (bc *BoardController) Pin(w http.ResponseWriter, r *http.Request) {
	var payload messageRefRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	if err := bc.board.Pin(payload.DeviceID, payload.MessageID, time.Now()); err != nil {
		writeServiceError(w, err)
		return
	}
	bc.logger.Infof(providers.TypePost, "Message %s pinned", payload.MessageID)
	w.WriteHeader(http.StatusNoContent)
}

func (bc *BoardController) Unpin(w http.ResponseWriter, r *http.Request) {
	var payload messageRefRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	if err := bc.board.Unpin(payload.MessageID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (bc *BoardController) Pins(w http.ResponseWriter, r *http.Request) {
	serveFromCacheOrCompute(w, bc.cache, "pins", func() (any, error) {
		return bc.board.Pins(), nil
	})
}
