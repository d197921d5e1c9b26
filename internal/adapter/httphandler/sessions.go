package httphandler

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName  = "storefront_admin"
	adminAuthKey = "admin_auth"
)

// AdminSessions keeps the admin flag in a signed browser-session cookie.
type AdminSessions struct {
	store sessions.Store
}

func NewAdminSessions(secret []byte) AdminSessions {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return AdminSessions{store}
}

func (s AdminSessions) IsAdmin(r *http.Request) bool {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return false
	}
	flag, _ := session.Values[adminAuthKey].(bool)
	return flag
}

func (s AdminSessions) Grant(w http.ResponseWriter, r *http.Request) error {
	// A stale or forged cookie yields a fresh session and an error; the
	// fresh session is still usable.
	session, _ := s.store.Get(r, sessionName)
	session.Values[adminAuthKey] = true
	return session.Save(r, w)
}

func (s AdminSessions) Revoke(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, sessionName)
	delete(session.Values, adminAuthKey)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
