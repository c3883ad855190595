package controllers

import (
	"net/http"
	"time"

	"futsald/internal/providers"
	"futsald/internal/services"
)

type IdentityController struct {
	logger   providers.Logger
	identity services.IdentityServiceInterface
}

func NewIdentityController(logger providers.Logger, identity services.IdentityServiceInterface) *IdentityController {
	return &IdentityController{
		logger:   logger,
		identity: identity,
	}
}

func (ic *IdentityController) Mint(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, map[string]string{"deviceId": ic.identity.MintDeviceID()})
}

type registerRequest struct {
	DeviceID string `json:"deviceId"`
	Nickname string `json:"nickname"`
}

func (ic *IdentityController) Register(w http.ResponseWriter, r *http.Request) {
	var payload registerRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	if err := ic.identity.Register(payload.DeviceID, payload.Nickname, time.Now()); err != nil {
		writeServiceError(w, err)
		return
	}
	ic.logger.Infof(providers.TypePost, "Registered nickname for device")
	w.WriteHeader(http.StatusNoContent)
}

func (ic *IdentityController) Get(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("device")
	if deviceID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	mapping, ok := ic.identity.IdentityFor(deviceID)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, mapping)
}

type unregisterRequest struct {
	DeviceID string `json:"deviceId"`
}

func (ic *IdentityController) Unregister(w http.ResponseWriter, r *http.Request) {
	var payload unregisterRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	if err := ic.identity.Unregister(payload.DeviceID, time.Now()); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
