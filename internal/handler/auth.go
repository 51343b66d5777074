package handler

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"wedding-rsvp/internal/storage"
)

const sessionName = "wedding_admin"

type contextKey string

const adminIDKey contextKey = "admin_id"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	admin, err := h.store.AdminByUsername(r.Context(), in.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		h.writeStoreError(w, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	session, _ := h.sessions.Get(r, sessionName)
	session.Values["admin_id"] = admin.ID
	session.Values["admin_username"] = admin.Username
	if err := session.Save(r, w); err != nil {
		h.log.Error().Err(err).Msg("Failed to save session")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.log.Info().Str("username", admin.Username).Msg("Admin logged in")
	writeJSON(w, http.StatusOK, map[string]string{"message": "login successful"})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.sessions.Get(r, sessionName)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		h.log.Error().Err(err).Msg("Failed to clear session")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "logout successful"})
}

// requireAdmin admits the request only when the session carries the admin
// marker. Everything behind it can assume adminID(r) is set.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, _ := h.sessions.Get(r, sessionName)
		id, ok := session.Values["admin_id"].(uint)
		if !ok {
			writeError(w, http.StatusUnauthorized, "admin login required")
			return
		}
		ctx := context.WithValue(r.Context(), adminIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func adminID(r *http.Request) uint {
	id, _ := r.Context().Value(adminIDKey).(uint)
	return id
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var in changePasswordRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	admin, err := h.store.AdminByID(r.Context(), adminID(r))
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.CurrentPassword)) != nil {
		writeError(w, http.StatusForbidden, "current password is incorrect")
		return
	}
	if len(in.NewPassword) < 6 {
		writeError(w, http.StatusBadRequest, "new password must be at least 6 characters")
		return
	}
	if in.NewPassword != in.ConfirmPassword {
		writeError(w, http.StatusBadRequest, "password confirmation does not match")
		return
	}

	if err := h.store.SetAdminPassword(r.Context(), admin.ID, in.NewPassword); err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "password changed"})
}
