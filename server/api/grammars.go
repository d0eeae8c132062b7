package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/dekarrin/goldrun"
	"github.com/dekarrin/goldrun/internal/golderr"
	"github.com/dekarrin/goldrun/server/dao"
	"github.com/dekarrin/goldrun/server/middle"
	"github.com/dekarrin/goldrun/server/result"
)

func grammarModel(g dao.Grammar) GrammarModel {
	return GrammarModel{
		URI:     PathPrefix + "/grammars/" + g.ID.String(),
		ID:      g.ID.String(),
		Name:    g.Name,
		Created: g.Created.Format(time.RFC3339),
	}
}

// HTTPGetAllGrammars returns a HandlerFunc that lists every cached grammar.
// No authentication is required.
func (api API) HTTPGetAllGrammars() http.HandlerFunc {
	return api.Endpoint(api.epGetAllGrammars)
}

// GET /grammars: list all cached grammars.
func (api API) epGetAllGrammars(req *http.Request) result.Result {
	grammars, err := api.Backend.GetAllGrammars(req.Context())
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]GrammarModel, len(grammars))
	for i := range grammars {
		resp[i] = grammarModel(grammars[i])
	}

	return result.OK(resp, "got all grammars")
}

// HTTPGetGrammar returns a HandlerFunc that gets a single cached grammar's
// metadata. No authentication is required.
func (api API) HTTPGetGrammar() http.HandlerFunc {
	return api.Endpoint(api.epGetGrammar)
}

// GET /grammars/{id}: get one cached grammar's metadata.
func (api API) epGetGrammar(req *http.Request) result.Result {
	id := requireIDParam(req)

	g, err := api.Backend.GetGrammar(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, golderr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	return result.OK(grammarModel(g), "got grammar '%s'", g.Name)
}

// HTTPCreateGrammar returns a HandlerFunc that uploads a new grammar table
// and caches it. Requires admin authentication.
func (api API) HTTPCreateGrammar() http.HandlerFunc {
	return api.Endpoint(api.epCreateGrammar)
}

// POST /grammars: upload and cache a compiled grammar table (auth required).
func (api API) epCreateGrammar(req *http.Request) result.Result {
	if loggedIn, _ := req.Context().Value(middle.AuthLoggedIn).(bool); !loggedIn {
		return result.Forbidden("grammar upload: forbidden")
	}

	var upload GrammarUploadRequest
	if err := parseJSON(req, &upload); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if upload.Name == "" {
		return result.BadRequest("name: property is empty or missing from request", "empty name")
	}
	if len(upload.TableData) == 0 {
		return result.BadRequest("table_data: property is empty or missing from request", "empty table_data")
	}

	g, err := api.Backend.UploadGrammar(req.Context(), upload.Name, upload.TableData)
	if err != nil {
		if errors.Is(err, golderr.ErrAlreadyExists) {
			return result.Conflict("A grammar with that name already exists", "grammar '%s' already exists", upload.Name)
		} else if errors.Is(err, golderr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return result.Created(grammarModel(g), "grammar '%s' (%s) cached", g.Name, g.ID)
}

// HTTPDeleteGrammar returns a HandlerFunc that removes a cached grammar.
// Requires admin authentication.
func (api API) HTTPDeleteGrammar() http.HandlerFunc {
	return api.Endpoint(api.epDeleteGrammar)
}

// DELETE /grammars/{id}: evict a cached grammar (auth required).
func (api API) epDeleteGrammar(req *http.Request) result.Result {
	if loggedIn, _ := req.Context().Value(middle.AuthLoggedIn).(bool); !loggedIn {
		return result.Forbidden("grammar deletion: forbidden")
	}

	id := requireIDParam(req)

	g, err := api.Backend.DeleteGrammar(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, golderr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	return result.OK(grammarModel(g), "grammar '%s' (%s) deleted", g.Name, g.ID)
}

// HTTPParseInput returns a HandlerFunc that runs input through a cached
// grammar's lexer and parser. No authentication is required.
func (api API) HTTPParseInput() http.HandlerFunc {
	return api.Endpoint(api.epParseInput)
}

// POST /grammars/{id}/parse: parse input against a cached grammar.
func (api API) epParseInput(req *http.Request) result.Result {
	id := requireIDParam(req)

	var parseReq ParseRequest
	if err := parseJSON(req, &parseReq); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	parseRes, err := api.Backend.ParseInput(req.Context(), id.String(), parseReq.Input)
	if err != nil {
		if errors.Is(err, golderr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	var resp ParseResponse
	if goldrun.ParseSuccessful(parseRes) {
		resp.Accepted = true
		resp.Tree = parseRes.Tree.String()
	} else if parseRes.Cancelled {
		return result.Err(http.StatusRequestTimeout, "Parse was cancelled", "parse of grammar %s cancelled", id)
	} else {
		resp.Accepted = false
		resp.Error = parseRes.Err.Error()
	}

	return result.OK(resp, "parsed input against grammar %s: accepted=%t", id, resp.Accepted)
}
