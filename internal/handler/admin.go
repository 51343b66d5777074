package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"wedding-rsvp/internal/models"
	"wedding-rsvp/internal/storage"
	"wedding-rsvp/internal/whatsapp"
)

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetStats(r.Context())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetStats(r.Context())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_guests": stats.TotalGuests,
		"confirmed":    stats.ConfirmedGuests,
		"pending":      stats.PendingGuests,
		"declined":     stats.DeclinedGuests,
		"total_groups": stats.TotalGroups,
		"total_gifts":  stats.ActiveGifts,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}

// ---- guests ----

type guestRequest struct {
	Name       string            `json:"name"`
	Phone      string            `json:"phone"`
	GroupID    *uint             `json:"group_id"`
	RSVPStatus models.RSVPStatus `json:"rsvp_status"`
}

func (h *Handler) handleListGuests(w http.ResponseWriter, r *http.Request) {
	guests, err := h.store.ListGuests(r.Context())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	groups, err := h.store.ListGroups(r.Context())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"guests": guests,
		"groups": groups,
	})
}

func (h *Handler) handleCreateGuest(w http.ResponseWriter, r *http.Request) {
	var in guestRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	guest, err := h.store.CreateGuest(r.Context(), storage.GuestParams{
		Name:    in.Name,
		Phone:   in.Phone,
		GroupID: in.GroupID,
	})
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"guest":   guest,
		"message": fmt.Sprintf("guest %q added", guest.Name),
	})
}

func (h *Handler) handleUpdateGuest(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var in guestRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	guest, err := h.store.UpdateGuest(r.Context(), id, storage.GuestParams{
		Name:    in.Name,
		Phone:   in.Phone,
		GroupID: in.GroupID,
		Status:  in.RSVPStatus,
	})
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"guest":   guest,
		"message": fmt.Sprintf("guest %q updated", guest.Name),
	})
}

func (h *Handler) handleDeleteGuest(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.store.DeleteGuest(r.Context(), id); err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "guest removed"})
}

type assignGroupRequest struct {
	GroupID uint `json:"group_id"`
}

func (h *Handler) handleAssignGuestGroup(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var in assignGroupRequest
	if err := decodeJSON(r, &in); err != nil || in.GroupID == 0 {
		writeError(w, http.StatusBadRequest, "group_id is required")
		return
	}

	if err := h.store.AssignGuestGroup(r.Context(), id, &in.GroupID); err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "guest added to group"})
}

func (h *Handler) handleRemoveGuestGroup(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.store.AssignGuestGroup(r.Context(), id, nil); err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "guest removed from group"})
}

// ---- groups ----

type groupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.store.ListGroups(r.Context())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"groups": groups})
}

func (h *Handler) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var in groupRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	group, err := h.store.CreateGroup(r.Context(), storage.GroupParams(in))
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"group":   group,
		"message": fmt.Sprintf("group %q created", group.Name),
	})
}

func (h *Handler) handleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var in groupRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	group, err := h.store.UpdateGroup(r.Context(), id, storage.GroupParams(in))
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"group":   group,
		"message": fmt.Sprintf("group %q updated", group.Name),
	})
}

func (h *Handler) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.store.DeleteGroup(r.Context(), id); err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "group removed"})
}

func (h *Handler) handleGroupRoster(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	available, members, err := h.store.GroupRoster(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"available_guests": available,
		"group_guests":     members,
	})
}

// ---- gifts ----

type giftRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url"`
	PixKey      string `json:"pix_key"`
	PixLink     string `json:"pix_link"`
	CardLink    string `json:"card_link"`
	Active      bool   `json:"active"`
}

func (in giftRequest) params() storage.GiftParams {
	return storage.GiftParams{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		PixKey:      in.PixKey,
		PixLink:     in.PixLink,
		CardLink:    in.CardLink,
		Active:      in.Active,
	}
}

func (h *Handler) handleListGifts(w http.ResponseWriter, r *http.Request) {
	gifts, err := h.store.ListGifts(r.Context())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"gifts": gifts})
}

func (h *Handler) handleCreateGift(w http.ResponseWriter, r *http.Request) {
	var in giftRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	gift, err := h.store.CreateGift(r.Context(), in.params())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"gift":    gift,
		"message": fmt.Sprintf("gift %q added", gift.Name),
	})
}

func (h *Handler) handleUpdateGift(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var in giftRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	gift, err := h.store.UpdateGift(r.Context(), id, in.params())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"gift":    gift,
		"message": fmt.Sprintf("gift %q updated", gift.Name),
	})
}

func (h *Handler) handleDeleteGift(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.store.DeleteGift(r.Context(), id); err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "gift removed"})
}

// ---- venue ----

type venueRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	MapLink     string `json:"map_link"`
	Description string `json:"description"`
	EventDate   string `json:"event_date"`
	EventTime   string `json:"event_time"`
}

func (h *Handler) handleGetVenue(w http.ResponseWriter, r *http.Request) {
	venue, err := h.venue.Get(r.Context())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"venue": venue})
}

func (h *Handler) handleUpdateVenue(w http.ResponseWriter, r *http.Request) {
	var in venueRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	venue, warnings, err := h.store.UpsertVenue(r.Context(), storage.VenueParams(in))
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.venue.Invalidate()

	writeJSON(w, http.StatusOK, map[string]any{
		"venue":    venue,
		"warnings": warnings,
		"message":  "venue information updated",
	})
}

// ---- whatsapp ----

func (h *Handler) handleWhatsAppOverview(w http.ResponseWriter, r *http.Request) {
	guests, err := h.store.GuestsWithPhone(r.Context())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	venue, err := h.venue.Get(r.Context())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"guests":           guests,
		"venue":            venue,
		"total_with_phone": len(guests),
	})
}

type whatsAppSendRequest struct {
	MessageType   string `json:"message_type"`
	CustomMessage string `json:"custom_message"`
	GuestIDs      []uint `json:"guest_ids"`
}

func (h *Handler) handleWhatsAppSend(w http.ResponseWriter, r *http.Request) {
	var in whatsAppSendRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if len(in.GuestIDs) == 0 {
		writeError(w, http.StatusBadRequest, "no guests selected")
		return
	}

	message := strings.TrimSpace(in.CustomMessage)
	if in.MessageType != "custom" || message == "" {
		venue, err := h.venue.Get(r.Context())
		if err != nil {
			h.writeStoreError(w, err)
			return
		}
		message, err = whatsapp.RenderMessage(in.MessageType, h.messageVars(venue))
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown message type %q", in.MessageType))
			return
		}
	}

	guests, err := h.store.GuestsByIDs(r.Context(), in.GuestIDs)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	if len(guests) == 0 {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	result := whatsapp.SendBulk(r.Context(), h.sender, guests, message, h.log)

	msg := fmt.Sprintf("%d message(s) sent", result.Succeeded)
	if result.Failed > 0 {
		// Surface only the first couple of provider reasons; the rest is in
		// the failures list.
		sample := result.Failures
		if len(sample) > 2 {
			sample = sample[:2]
		}
		msg = fmt.Sprintf("%s, %d failed (%s)", msg, result.Failed, strings.Join(sample, "; "))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"result":  result,
		"message": msg,
	})
}

// messageVars builds the template variables from the venue snapshot and the
// public site URLs.
func (h *Handler) messageVars(venue *models.VenueInfo) map[string]string {
	vars := map[string]string{
		"date":      "",
		"time":      "",
		"venue":     "",
		"address":   "",
		"map_link":  "",
		"rsvp_link": h.publicURL + "/rsvp",
		"gift_link": h.publicURL + "/gifts",
	}
	if venue == nil {
		return vars
	}
	vars["venue"] = venue.Name
	vars["address"] = venue.Address
	vars["map_link"] = venue.MapLink
	vars["time"] = venue.EventTime
	if venue.EventDate != nil {
		vars["date"] = formatDateBR(*venue.EventDate)
	}
	return vars
}

var monthsBR = [...]string{"", "Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro"}

// formatDateBR renders a date the way the invitations spell it, e.g.
// "15 de Agosto de 2025".
func formatDateBR(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthsBR[t.Month()], t.Year())
}
