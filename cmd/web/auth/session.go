package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"thirdcoast.systems/adminkit/pkg/ui/csrf"
)

const (
	SessionName  = "adminkit_session"
	UsernameKey  = "username"
	ClientIDKey  = "client_id"
	CSRFTokenKey = "csrf_token"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
)

type SessionManager struct {
	store *sessions.CookieStore
}

// NewSessionManager stores sessions in signed and encrypted cookies keyed
// from secret.
func NewSessionManager(secret string) *SessionManager {
	if secret == "" {
		slog.Warn("SESSION_SECRET not set; sessions will not survive a restart")
		var err error
		if secret, err = generateSecret(); err != nil {
			panic(fmt.Errorf("generate session secret: %w", err))
		}
	}
	hashKey, blockKey, err := deriveCookieKeys(secret)
	if err != nil {
		// hkdf only fails after producing 255 blocks of output.
		panic(err)
	}
	return &SessionManager{
		store: sessions.NewCookieStore(hashKey, blockKey),
	}
}

func generateSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// SaveSession logs username in. Every login gets a fresh browser client id
// and anti-forgery token.
func (sm *SessionManager) SaveSession(w http.ResponseWriter, r *http.Request, username string) error {
	token, err := csrf.NewToken()
	if err != nil {
		return fmt.Errorf("new csrf token: %w", err)
	}

	session, _ := sm.store.Get(r, SessionName)
	session.Values[UsernameKey] = username
	session.Values[ClientIDKey] = uuid.NewString()
	session.Values[CSRFTokenKey] = token

	// Determine if we're on HTTPS
	isHTTPS := r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"

	session.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   isHTTPS,
	}

	return session.Save(r, w)
}

func (sm *SessionManager) GetSession(r *http.Request) (username string, err error) {
	session, err := sm.store.Get(r, SessionName)
	if err != nil {
		_, cookieErr := r.Cookie(SessionName)
		slog.Warn("failed to decode session", "error", err, "host", r.Host, "has_cookie", cookieErr == nil)
		return "", err
	}
	return stringValue(session, UsernameKey)
}

// ClientID returns the id of the browser's UI state in the hub.
func (sm *SessionManager) ClientID(r *http.Request) (string, error) {
	session, err := sm.store.Get(r, SessionName)
	if err != nil {
		return "", err
	}
	return stringValue(session, ClientIDKey)
}

// CSRFToken returns the anti-forgery token issued at login.
func (sm *SessionManager) CSRFToken(r *http.Request) (string, error) {
	session, err := sm.store.Get(r, SessionName)
	if err != nil {
		return "", err
	}
	return stringValue(session, CSRFTokenKey)
}

func stringValue(session *sessions.Session, key string) (string, error) {
	val, ok := session.Values[key]
	if !ok {
		return "", ErrNotAuthenticated
	}
	str, ok := val.(string)
	if !ok || str == "" {
		return "", ErrNotAuthenticated
	}
	return str, nil
}

func (sm *SessionManager) IsAuthenticated(r *http.Request) bool {
	_, err := sm.GetSession(r)
	return err == nil
}

func (sm *SessionManager) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session, _ := sm.store.Get(r, SessionName)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
