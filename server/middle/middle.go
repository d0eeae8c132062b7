// Package middle contains middleware for use with the goldserver server.
package middle

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dekarrin/goldrun/server/dao"
	"github.com/dekarrin/goldrun/server/result"
)

type mwFunc http.HandlerFunc

func (sf mwFunc) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	sf(w, req)
}

// Middleware is a function that takes a handler and returns a new handler which
// wraps the given one and provides some additional functionality.
type Middleware func(next http.Handler) http.Handler

// AuthKey is a key in the context of a request populated by an AuthHandler.
type AuthKey int64

const (
	AuthLoggedIn AuthKey = iota
	AuthAPIKey
)

// getBearerKey extracts the key material from an "Authorization: Bearer
// <key>" header. It does not validate the key against the store.
func getBearerKey(req *http.Request) (string, error) {
	hdr := req.Header.Get("Authorization")
	if hdr == "" {
		return "", fmt.Errorf("no Authorization header present")
	}

	parts := strings.SplitN(hdr, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("Authorization header is not in 'Bearer <key>' format")
	}

	key := strings.TrimSpace(parts[1])
	if key == "" {
		return "", fmt.Errorf("Authorization header contains no key")
	}

	return key, nil
}

// AuthHandler is middleware that will accept a request, extract the API key
// used for admin authentication, and look up the dao.APIKey it names.
//
// Keys are added to the request context before the request is passed to the
// next step in the chain. AuthAPIKey will contain the looked-up key, and
// AuthLoggedIn will return whether a valid key was presented (only applies
// for optional auth; for required auth, not presenting a valid key results in
// an HTTP error being returned before the request reaches the next handler).
type AuthHandler struct {
	db            dao.APIKeyRepository
	required      bool
	unauthedDelay time.Duration
	next          http.Handler
}

func (ah *AuthHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var loggedIn bool
	var apiKey dao.APIKey

	keyStr, err := getBearerKey(req)
	if err != nil {
		// deliberately leaving as embedded if instead of &&
		if ah.required {
			// error here means no key is present (or at least isn't in the
			// expected format, which for all intents and purposes is
			// non-existent). This is not okay if auth is required.

			r := result.Unauthorized("", err.Error())
			time.Sleep(ah.unauthedDelay)
			r.WriteResponse(w)
			r.Log(req)
			return
		}
	} else {
		lookupKey, err := ah.db.GetByKey(req.Context(), keyStr)
		if err != nil {
			// deliberately leaving as embedded if instead of &&
			if ah.required {
				// the key does not match a stored one. it does not count as
				// logged in. if auth is required, that's not okay.

				r := result.Unauthorized("", err.Error())
				time.Sleep(ah.unauthedDelay)
				r.WriteResponse(w)
				r.Log(req)
				return
			}
		} else {
			apiKey = lookupKey
			loggedIn = true
		}
	}

	ctx := req.Context()
	ctx = context.WithValue(ctx, AuthLoggedIn, loggedIn)
	ctx = context.WithValue(ctx, AuthAPIKey, apiKey)
	req = req.WithContext(ctx)
	ah.next.ServeHTTP(w, req)
}

func RequireAuth(db dao.APIKeyRepository, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return &AuthHandler{
			db:            db,
			unauthedDelay: unauthDelay,
			required:      true,
			next:          next,
		}
	}
}

func OptionalAuth(db dao.APIKeyRepository, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return &AuthHandler{
			db:            db,
			unauthedDelay: unauthDelay,
			required:      false,
			next:          next,
		}
	}
}

// DontPanic returns a Middleware that performs a panic check as it exits. If
// the function is panicking, it will write out an HTTP response with a generic
// message to the client and add it to the log.
func DontPanic() Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, r *http.Request) {
			defer panicTo500(w, r)
			next.ServeHTTP(w, r)
		})
	}
}

func panicTo500(w http.ResponseWriter, req *http.Request) (panicVal interface{}) {
	if panicErr := recover(); panicErr != nil {
		r := result.TextErr(
			http.StatusInternalServerError,
			"An internal server error occurred",
			fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())),
		)
		r.WriteResponse(w)
		r.Log(req)
		return true
	}
	return false
}
