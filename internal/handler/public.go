package handler

import (
	"fmt"
	"net/http"
	"time"

	"wedding-rsvp/internal/models"
	"wedding-rsvp/internal/storage"
)

// fallbackEventDatetime is served while no venue datetime is configured, so
// the public countdown always has something to count toward.
const fallbackEventDatetime = "2025-10-19T18:30:00"

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	venue, err := h.venue.Get(r.Context())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	gifts, err := h.store.ActiveGifts(r.Context(), 3)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"venue": venue,
		"gifts": gifts,
	})
}

type searchGuestRequest struct {
	Name string `json:"name"`
}

type guestMatch struct {
	ID         uint              `json:"id"`
	Name       string            `json:"name"`
	RSVPStatus models.RSVPStatus `json:"rsvp_status"`
	GroupName  string            `json:"group_name,omitempty"`
}

func (h *Handler) handleSearchGuest(w http.ResponseWriter, r *http.Request) {
	var in searchGuestRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	guests, err := h.store.SearchGuests(r.Context(), in.Name)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	matches := make([]guestMatch, 0, len(guests))
	for _, g := range guests {
		m := guestMatch{ID: g.ID, Name: g.Name, RSVPStatus: g.RSVPStatus}
		if g.Group != nil {
			m.GroupName = g.Group.Name
		}
		matches = append(matches, m)
	}
	writeJSON(w, http.StatusOK, map[string]any{"guests": matches})
}

func (h *Handler) handleGuestGroup(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	guest, members, err := h.store.GuestGroupMembers(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	out := make([]guestMatch, 0, len(members))
	for _, g := range members {
		out = append(out, guestMatch{ID: g.ID, Name: g.Name, RSVPStatus: g.RSVPStatus})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"selected_guest_name": guest.Name,
		"guests":              out,
	})
}

type confirmRSVPRequest struct {
	Selections []storage.RSVPSelection `json:"selections"`
}

func (h *Handler) handleConfirmRSVP(w http.ResponseWriter, r *http.Request) {
	var in confirmRSVPRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if len(in.Selections) == 0 {
		writeError(w, http.StatusBadRequest, "no guests selected")
		return
	}

	applied, err := h.store.ConfirmRSVP(r.Context(), in.Selections)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	msg := fmt.Sprintf("confirmation recorded for %d guest(s)", applied)
	if applied == 0 {
		msg = "no confirmations were processed"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"applied": applied,
		"message": msg,
	})
}

func (h *Handler) handleGifts(w http.ResponseWriter, r *http.Request) {
	gifts, err := h.store.ActiveGifts(r.Context(), 0)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"gifts": gifts})
}

func (h *Handler) handleEventDatetime(w http.ResponseWriter, r *http.Request) {
	venue, err := h.venue.Get(r.Context())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	datetime := fallbackEventDatetime
	if venue != nil && venue.EventDateTime != nil {
		datetime = venue.EventDateTime.Format("2006-01-02T15:04:05")
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"datetime": datetime,
		"success":  true,
	})
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.log.Error().Err(err).Msg("Health check failed")
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"status":    "error",
			"message":   err.Error(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
