package utils

import (
	"net/http"

	"github.com/gorilla/securecookie"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Message  string `json:"message"`
	Category string `json:"category"` // success | info | error
}

// FlashStore reads and writes the signed flash cookie. Messages are
// read-once: Pop returns them and expires the cookie in the same response.
type FlashStore struct {
	codec      *securecookie.SecureCookie
	cookieName string
}

func NewFlashStore(secretKey, cookieName string) *FlashStore {
	codec := securecookie.New([]byte(secretKey), nil)
	codec.SetSerializer(securecookie.JSONEncoder{})
	return &FlashStore{
		codec:      codec,
		cookieName: cookieName,
	}
}

// Add appends a message to the pending flash cookie.
func (f *FlashStore) Add(w http.ResponseWriter, r *http.Request, message, category string) {
	messages := f.peek(r)
	messages = append(messages, Flash{Message: message, Category: category})

	encoded, err := f.codec.Encode(f.cookieName, messages)
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     f.cookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns all pending messages and clears the cookie.
func (f *FlashStore) Pop(w http.ResponseWriter, r *http.Request) []Flash {
	messages := f.peek(r)
	if len(messages) > 0 {
		http.SetCookie(w, &http.Cookie{
			Name:     f.cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return messages
}

func (f *FlashStore) peek(r *http.Request) []Flash {
	cookie, err := r.Cookie(f.cookieName)
	if err != nil {
		return nil
	}

	var messages []Flash
	if err := f.codec.Decode(f.cookieName, cookie.Value, &messages); err != nil {
		// Tampered or stale cookie: drop silently
		return nil
	}
	return messages
}
