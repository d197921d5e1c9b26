package httphandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// POST v1/login JSON {"username","password"} (200 OK, 400 Bad request, 401 Unauthorized)
// POST v1/logout (204 No content)
// GET v1/session (200 OK)

type SessionHandler struct {
	verifier port.CredentialVerifier
	sessions AdminSessions
}

func RegisterSession(
	mux *http.ServeMux, verifier port.CredentialVerifier, sessions AdminSessions,
) {
	h := SessionHandler{verifier, sessions}
	mux.HandleFunc("POST /v1/login", h.PostLogin)
	mux.HandleFunc("POST /v1/logout", h.PostLogout)
	mux.HandleFunc("GET /v1/session", h.GetSession)
}

func (h SessionHandler) PostLogin(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.PostLogin"
	log := slog.With("op", op)

	var creds Credentials
	if err := decodeBody(r, &creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	err := h.verifier.VerifyCredentials(creds.Username, creds.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		log.Info("login rejected", "username", creds.Username)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "login failed")
		log.Error("failed to verify credentials", "err", err)
		return
	}

	if err := h.sessions.Grant(w, r); err != nil {
		writeError(w, http.StatusInternalServerError, "login failed")
		log.Error("failed to save session", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, Session{Admin: true})
	log.Info("admin logged in")
}

func (h SessionHandler) PostLogout(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.PostLogout"

	if err := h.sessions.Revoke(w, r); err != nil {
		slog.Error("failed to clear session", "op", op, "err", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Session{Admin: h.sessions.IsAdmin(r)})
}
