// Package session keeps the per-client state of the feedback site in a
// signed cookie: the signed-in username, flash messages and the CSRF token.
package session

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/MKhiriev/go-feedback/internal/config"
	"github.com/MKhiriev/go-feedback/internal/logger"
)

const (
	CookieName = "feedback_session"

	keyUsername = "username"
	keyCSRF     = "csrf_token"
)

// Flash categories.
const (
	FlashError = "error"
	FlashInfo  = "info"
)

// Flash is a one-time message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

// Manager reads and writes the session cookie.
type Manager struct {
	store sessions.Store
	name  string
}

// NewManager builds a Manager backed by a gorilla/sessions cookie store
// signed with cfg.Secret.
func NewManager(cfg config.Session) *Manager {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(int(cfg.MaxAge.Seconds()))

	return &Manager{store: store, name: CookieName}
}

// get returns the session of r. A cookie that fails verification is
// replaced by a fresh, anonymous session.
func (m *Manager) get(r *http.Request) *sessions.Session {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		logger.FromRequest(r).Warn().Err(err).Str("func", "*Manager.get").Msg("discarding invalid session cookie")
	}
	return sess
}

// Identity returns the signed-in username or "" for an anonymous session.
func (m *Manager) Identity(r *http.Request) string {
	username, _ := m.get(r).Values[keyUsername].(string)
	return username
}

// SignIn makes username the identity of the session and issues a new CSRF
// token.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, username string) error {
	sess := m.get(r)
	sess.Values[keyUsername] = username
	if err := rotateCSRF(sess); err != nil {
		return err
	}
	return sess.Save(r, w)
}

// SignOut makes the session anonymous. Pending flashes are kept.
func (m *Manager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess := m.get(r)
	delete(sess.Values, keyUsername)
	if err := rotateCSRF(sess); err != nil {
		return err
	}
	return sess.Save(r, w)
}

// AddFlash queues msg under category for the next rendered page.
func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, category, msg string) error {
	sess := m.get(r)
	sess.AddFlash(msg, category)
	return sess.Save(r, w)
}

// Flashes removes and returns all queued flashes, errors first.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	sess := m.get(r)

	var flashes []Flash
	for _, category := range []string{FlashError, FlashInfo} {
		for _, v := range sess.Flashes(category) {
			if msg, ok := v.(string); ok {
				flashes = append(flashes, Flash{Category: category, Message: msg})
			}
		}
	}

	if len(flashes) > 0 {
		if err := sess.Save(r, w); err != nil {
			logger.FromRequest(r).Err(err).Str("func", "*Manager.Flashes").Msg("error saving session")
		}
	}
	return flashes
}

// CSRFToken returns the CSRF token of the session, creating one when the
// session has none yet.
func (m *Manager) CSRFToken(w http.ResponseWriter, r *http.Request) (string, error) {
	sess := m.get(r)
	if token, ok := sess.Values[keyCSRF].(string); ok && token != "" {
		return token, nil
	}

	if err := rotateCSRF(sess); err != nil {
		return "", err
	}
	if err := sess.Save(r, w); err != nil {
		return "", err
	}
	return sess.Values[keyCSRF].(string), nil
}

// VerifyCSRF reports whether token matches the token of the session.
func (m *Manager) VerifyCSRF(r *http.Request, token string) bool {
	expected, ok := m.get(r).Values[keyCSRF].(string)
	if !ok || expected == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(token)) == 1
}

func rotateCSRF(sess *sessions.Session) error {
	token, err := generateToken()
	if err != nil {
		return err
	}
	sess.Values[keyCSRF] = token
	return nil
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
