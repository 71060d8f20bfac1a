package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const adminSessionTTL = 7 * 24 * time.Hour

// AdminLoginRequest is the request body for POST /api/admin/login.
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminMeResponse describes the signed-in operator.
type AdminMeResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// setAdminCookie writes the session cookie; an empty value with a negative
// maxAge clears it.
func setAdminCookie(w http.ResponseWriter, value string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func handleAdminLogin(logger *slog.Logger, admin AdminStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminLoginRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		id, hash, err := admin.AdminByEmail(r.Context(), email)
		switch {
		case errors.Is(err, ErrNotFound):
			logger.Warn("admin login rejected", "email", email, "reason", "unknown email")
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		case err != nil:
			logger.Error("looking up admin", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
			logger.Warn("admin login rejected", "email", email, "reason", "bad password")
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		sessionID, err := admin.CreateAdminSession(r.Context(), id, email)
		if err != nil {
			logger.Error("creating admin session", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		setAdminCookie(w, sessionID, adminSessionTTL)
		logger.Info("admin signed in", "email", email)
		writeJSON(w, http.StatusOK, AdminMeResponse{ID: id, Email: email})
	}
}

func handleAdminLogout(logger *slog.Logger, admin AdminStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(adminCookieName); err == nil && c.Value != "" {
			if err := admin.DeleteAdminSession(r.Context(), c.Value); err != nil {
				logger.Error("deleting admin session", "error", err)
			}
		}
		setAdminCookie(w, "", -time.Second)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func handleAdminMe(admin AdminStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := adminFromRequest(r, admin)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		writeJSON(w, http.StatusOK, AdminMeResponse{ID: sess.AdminID, Email: sess.Email})
	}
}
