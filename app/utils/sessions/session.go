package sessions

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const (
	sessionCookieName = "addressbook-session"

	userIDSessionKey          = "userID"
	apiTokenSessionKey        = "apiToken"
	selectedAddressSessionKey = "selectedAddressID"
)

type SessionStore interface {
	GetUserID(r *http.Request) string
	SetUserID(w http.ResponseWriter, r *http.Request, userID string) error

	GetAPIToken(r *http.Request) string
	SetAPIToken(w http.ResponseWriter, r *http.Request, token string) error

	GetSelectedAddressID(r *http.Request) uint
	SetSelectedAddressID(w http.ResponseWriter, r *http.Request, id uint) error

	ClearSession(w http.ResponseWriter, r *http.Request) error
}

type CookieSessionStore struct {
	store *sessions.CookieStore
}

func NewCookieSessionStore(secure bool, keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(7 * 24 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store}
}

// getSession never returns a nil session: a cookie that fails to decode
// yields a fresh one, which is what the caller wants after a key rotation.
func (c *CookieSessionStore) getSession(r *http.Request) *sessions.Session {
	session, err := c.store.Get(r, sessionCookieName)
	if err != nil {
		log.Printf("CookieSessionStore: Error getting session: %v", err)
	}
	return session
}

func (c *CookieSessionStore) getString(r *http.Request, key string) string {
	v, _ := c.getSession(r).Values[key].(string)
	return v
}

func (c *CookieSessionStore) set(w http.ResponseWriter, r *http.Request, key string, value interface{}) error {
	session := c.getSession(r)
	session.Values[key] = value
	return session.Save(r, w)
}

func (c *CookieSessionStore) GetUserID(r *http.Request) string {
	return c.getString(r, userIDSessionKey)
}

func (c *CookieSessionStore) SetUserID(w http.ResponseWriter, r *http.Request, userID string) error {
	return c.set(w, r, userIDSessionKey, userID)
}

func (c *CookieSessionStore) GetAPIToken(r *http.Request) string {
	return c.getString(r, apiTokenSessionKey)
}

func (c *CookieSessionStore) SetAPIToken(w http.ResponseWriter, r *http.Request, token string) error {
	return c.set(w, r, apiTokenSessionKey, token)
}

func (c *CookieSessionStore) GetSelectedAddressID(r *http.Request) uint {
	id, _ := c.getSession(r).Values[selectedAddressSessionKey].(uint)
	return id
}

func (c *CookieSessionStore) SetSelectedAddressID(w http.ResponseWriter, r *http.Request, id uint) error {
	return c.set(w, r, selectedAddressSessionKey, id)
}

func (c *CookieSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session := c.getSession(r)
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
