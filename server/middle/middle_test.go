package middle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dekarrin/goldrun/server/dao/inmem"
	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		loggedIn, _ := r.Context().Value(AuthLoggedIn).(bool)
		if loggedIn {
			w.Write([]byte("logged in"))
		} else {
			w.Write([]byte("anonymous"))
		}
	})
}

func Test_RequireAuth_noHeader(t *testing.T) {
	assert := assert.New(t)
	store := inmem.NewDatastore()

	handler := RequireAuth(store.APIKeys(), 0)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/keys", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(http.StatusUnauthorized, w.Code)
}

func Test_RequireAuth_validKey(t *testing.T) {
	assert := assert.New(t)
	store := inmem.NewDatastore()
	k, err := store.APIKeys().Create(context.Background(), "alice")
	assert.NoError(err)

	handler := RequireAuth(store.APIKeys(), 0)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/keys", nil)
	req.Header.Set("Authorization", "Bearer "+k.Key)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(http.StatusOK, w.Code)
	assert.Equal("logged in", w.Body.String())
}

func Test_RequireAuth_invalidKey(t *testing.T) {
	assert := assert.New(t)
	store := inmem.NewDatastore()

	handler := RequireAuth(store.APIKeys(), 0)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/keys", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-key")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(http.StatusUnauthorized, w.Code)
}

func Test_OptionalAuth_noHeaderPassesThrough(t *testing.T) {
	assert := assert.New(t)
	store := inmem.NewDatastore()

	handler := OptionalAuth(store.APIKeys(), 0)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/grammars", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(http.StatusOK, w.Code)
	assert.Equal("anonymous", w.Body.String())
}

func Test_OptionalAuth_validKeyMarksLoggedIn(t *testing.T) {
	assert := assert.New(t)
	store := inmem.NewDatastore()
	k, err := store.APIKeys().Create(context.Background(), "alice")
	assert.NoError(err)

	handler := OptionalAuth(store.APIKeys(), 0)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/grammars", nil)
	req.Header.Set("Authorization", "Bearer "+k.Key)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(http.StatusOK, w.Code)
	assert.Equal("logged in", w.Body.String())
}

func Test_DontPanic_recoversAndWrites500(t *testing.T) {
	assert := assert.New(t)

	panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	handler := DontPanic()(panicky)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	assert.NotPanics(func() {
		handler.ServeHTTP(w, req)
	})
	assert.Equal(http.StatusInternalServerError, w.Code)
}
