package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dekarrin/goldrun/internal/gold/types"
	"github.com/dekarrin/goldrun/server/dao/inmem"
	"github.com/dekarrin/goldrun/server/tunas"
	"github.com/stretchr/testify/assert"
)

func Test_API_HTTPGetAllGrammars(t *testing.T) {
	assert := assert.New(t)

	store := inmem.NewDatastore()
	_, err := store.Grammars().Create(context.Background(), "expr", nil, &types.Grammar{})
	assert.NoError(err)

	a := API{Backend: tunas.Service{DB: store}}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/grammars", nil)
	w := httptest.NewRecorder()

	a.HTTPGetAllGrammars()(w, req)

	assert.Equal(http.StatusOK, w.Code)

	var resp []GrammarModel
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(resp, 1)
	assert.Equal("expr", resp[0].Name)
}

func Test_API_HTTPGetGrammar_notFound(t *testing.T) {
	assert := assert.New(t)

	a := API{Backend: tunas.Service{DB: inmem.NewDatastore()}}
	randomID := "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	req := httptest.NewRequest(http.MethodGet, "/api/v1/grammars/"+randomID, nil)
	req = withIDParam(req, randomID)
	w := httptest.NewRecorder()

	a.HTTPGetGrammar()(w, req)

	assert.Equal(http.StatusNotFound, w.Code)
}

func Test_API_HTTPCreateGrammar_requiresAuth(t *testing.T) {
	assert := assert.New(t)

	a := API{Backend: tunas.Service{DB: inmem.NewDatastore()}}
	body := `{"name":"expr","table_data":"AQI="}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/grammars", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req = withLoggedIn(req, false)
	w := httptest.NewRecorder()

	a.HTTPCreateGrammar()(w, req)

	assert.Equal(http.StatusForbidden, w.Code)
}

func Test_API_HTTPCreateGrammar_missingFields(t *testing.T) {
	assert := assert.New(t)

	a := API{Backend: tunas.Service{DB: inmem.NewDatastore()}}
	body := `{"name":"","table_data":""}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/grammars", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req = withLoggedIn(req, true)
	w := httptest.NewRecorder()

	a.HTTPCreateGrammar()(w, req)

	assert.Equal(http.StatusBadRequest, w.Code)
}

func Test_API_HTTPCreateGrammar_malformedTable(t *testing.T) {
	assert := assert.New(t)

	a := API{Backend: tunas.Service{DB: inmem.NewDatastore()}}
	body := `{"name":"expr","table_data":"AQI="}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/grammars", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req = withLoggedIn(req, true)
	w := httptest.NewRecorder()

	a.HTTPCreateGrammar()(w, req)

	assert.Equal(http.StatusBadRequest, w.Code)
}

func Test_API_HTTPDeleteGrammar(t *testing.T) {
	assert := assert.New(t)

	store := inmem.NewDatastore()
	g, err := store.Grammars().Create(context.Background(), "expr", nil, &types.Grammar{})
	assert.NoError(err)

	a := API{Backend: tunas.Service{DB: store}}
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/grammars/"+g.ID.String(), nil)
	req = withLoggedIn(req, true)
	req = withIDParam(req, g.ID.String())
	w := httptest.NewRecorder()

	a.HTTPDeleteGrammar()(w, req)

	assert.Equal(http.StatusOK, w.Code)
}

func Test_API_HTTPDeleteGrammar_requiresAuth(t *testing.T) {
	assert := assert.New(t)

	store := inmem.NewDatastore()
	g, err := store.Grammars().Create(context.Background(), "expr", nil, &types.Grammar{})
	assert.NoError(err)

	a := API{Backend: tunas.Service{DB: store}}
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/grammars/"+g.ID.String(), nil)
	req = withLoggedIn(req, false)
	req = withIDParam(req, g.ID.String())
	w := httptest.NewRecorder()

	a.HTTPDeleteGrammar()(w, req)

	assert.Equal(http.StatusForbidden, w.Code)
}

func Test_API_HTTPParseInput_notFound(t *testing.T) {
	assert := assert.New(t)

	a := API{Backend: tunas.Service{DB: inmem.NewDatastore()}}
	randomID := "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	body := `{"input":"1 + 1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/grammars/"+randomID+"/parse", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req = withIDParam(req, randomID)
	w := httptest.NewRecorder()

	a.HTTPParseInput()(w, req)

	assert.Equal(http.StatusNotFound, w.Code)
}
