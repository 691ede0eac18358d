package http

import (
	"net/http"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/service"
)

// NotificationHandler exposes the in-app alerts and the manual trigger for
// the automatic generator.
type NotificationHandler struct {
	notifications service.NotificationService
}

func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notifications.ListAll(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, notes)
}

func (h *NotificationHandler) ListUnread(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notifications.ListUnread(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, notes)
}

type generateResponse struct {
	Created int `json:"created"`
}

func (h *NotificationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	created, err := h.notifications.GenerateAutomatic(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, generateResponse{Created: created})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.notifications.MarkRead(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type markAllReadResponse struct {
	MarkedRead int64 `json:"marked_read"`
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.notifications.MarkAllRead(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, markAllReadResponse{MarkedRead: n})
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.notifications.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
