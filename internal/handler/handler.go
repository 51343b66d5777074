package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"

	"wedding-rsvp/internal/storage"
	"wedding-rsvp/internal/whatsapp"
)

// Config carries the handler-level settings.
type Config struct {
	SessionSecret string
	PublicURL     string
}

// Handler owns the HTTP surface: the chi mux, the store, the venue cache,
// the message sender and the session store.
type Handler struct {
	mux       *chi.Mux
	store     *storage.Store
	venue     *storage.VenueCache
	sender    whatsapp.Sender
	sessions  *sessions.CookieStore
	publicURL string
	log       zerolog.Logger
}

// New wires the routes and returns the root handler.
func New(store *storage.Store, venue *storage.VenueCache, sender whatsapp.Sender, cfg Config, log zerolog.Logger) http.Handler {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
	}

	h := &Handler{
		mux:       chi.NewRouter(),
		store:     store,
		venue:     venue,
		sender:    sender,
		sessions:  sessionStore,
		publicURL: cfg.PublicURL,
		log:       log.With().Str("component", "http").Logger(),
	}
	h.routes()
	return h.mux
}

func (h *Handler) routes() {
	h.mux.Get("/", h.handleHome)
	h.mux.Post("/search-guest", h.handleSearchGuest)
	h.mux.Get("/guest/{id}/group", h.handleGuestGroup)
	h.mux.Post("/confirm-rsvp", h.handleConfirmRSVP)
	h.mux.Get("/gifts", h.handleGifts)
	h.mux.Get("/api/event-datetime", h.handleEventDatetime)
	h.mux.Get("/healthz", h.handleHealthz)

	h.mux.Post("/admin/login", h.handleLogin)
	h.mux.Post("/admin/logout", h.handleLogout)

	h.mux.Group(func(r chi.Router) {
		r.Use(h.requireAdmin)

		r.Get("/admin/dashboard", h.handleDashboard)
		r.Get("/api/stats", h.handleStats)
		r.Post("/admin/password", h.handleChangePassword)

		r.Get("/admin/guests", h.handleListGuests)
		r.Post("/admin/guests", h.handleCreateGuest)
		r.Put("/admin/guests/{id}", h.handleUpdateGuest)
		r.Delete("/admin/guests/{id}", h.handleDeleteGuest)
		r.Post("/admin/guests/{id}/group", h.handleAssignGuestGroup)
		r.Delete("/admin/guests/{id}/group", h.handleRemoveGuestGroup)

		r.Get("/admin/groups", h.handleListGroups)
		r.Post("/admin/groups", h.handleCreateGroup)
		r.Put("/admin/groups/{id}", h.handleUpdateGroup)
		r.Delete("/admin/groups/{id}", h.handleDeleteGroup)
		r.Get("/admin/groups/{id}/guests", h.handleGroupRoster)

		r.Get("/admin/gifts", h.handleListGifts)
		r.Post("/admin/gifts", h.handleCreateGift)
		r.Put("/admin/gifts/{id}", h.handleUpdateGift)
		r.Delete("/admin/gifts/{id}", h.handleDeleteGift)

		r.Get("/admin/venue", h.handleGetVenue)
		r.Put("/admin/venue", h.handleUpdateVenue)

		r.Get("/admin/whatsapp", h.handleWhatsAppOverview)
		r.Post("/admin/whatsapp/send", h.handleWhatsAppSend)
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeStoreError maps the storage error taxonomy onto HTTP statuses:
// validation 400, conflict 409, not found 404, anything else a generic 500
// with the cause logged rather than leaked.
func (h *Handler) writeStoreError(w http.ResponseWriter, err error) {
	var verr *storage.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, storage.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		h.log.Error().Err(err).Msg("Storage operation failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func idParam(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
