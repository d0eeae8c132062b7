package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/dekarrin/goldrun/internal/golderr"
	"github.com/dekarrin/goldrun/server/dao"
	"github.com/dekarrin/goldrun/server/middle"
	"github.com/dekarrin/goldrun/server/result"
)

func apiKeyModel(k dao.APIKey) APIKeyModel {
	return APIKeyModel{
		URI:     PathPrefix + "/keys/" + k.ID.String(),
		ID:      k.ID.String(),
		Owner:   k.Owner,
		Created: k.Created.Format(time.RFC3339),
	}
}

func requireAdmin(req *http.Request) result.Result {
	if loggedIn, _ := req.Context().Value(middle.AuthLoggedIn).(bool); !loggedIn {
		return result.Forbidden("%s %s: forbidden", req.Method, req.URL.Path)
	}
	return result.Result{}
}

// HTTPGetAllAPIKeys returns a HandlerFunc that lists every issued API key.
// Requires admin authentication.
func (api API) HTTPGetAllAPIKeys() http.HandlerFunc {
	return api.Endpoint(api.epGetAllAPIKeys)
}

// GET /keys: list all issued API keys (auth required).
func (api API) epGetAllAPIKeys(req *http.Request) result.Result {
	if r := requireAdmin(req); r.Status != 0 {
		return r
	}

	keys, err := api.Backend.GetAllAPIKeys(req.Context())
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]APIKeyModel, len(keys))
	for i := range keys {
		resp[i] = apiKeyModel(keys[i])
	}

	return result.OK(resp, "got all API keys")
}

// HTTPCreateAPIKey returns a HandlerFunc that mints a new API key. Requires
// admin authentication.
func (api API) HTTPCreateAPIKey() http.HandlerFunc {
	return api.Endpoint(api.epCreateAPIKey)
}

// POST /keys: mint a new API key (auth required).
func (api API) epCreateAPIKey(req *http.Request) result.Result {
	if r := requireAdmin(req); r.Status != 0 {
		return r
	}

	var createReq APIKeyCreateRequest
	if err := parseJSON(req, &createReq); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if createReq.Owner == "" {
		return result.BadRequest("owner: property is empty or missing from request", "empty owner")
	}

	k, err := api.Backend.CreateAPIKey(req.Context(), createReq.Owner)
	if err != nil {
		if errors.Is(err, golderr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	resp := APIKeyCreateResponse{APIKeyModel: apiKeyModel(k), Key: k.Key}
	return result.Created(resp, "API key for '%s' (%s) created", k.Owner, k.ID)
}

// HTTPDeleteAPIKey returns a HandlerFunc that revokes an API key. Requires
// admin authentication.
func (api API) HTTPDeleteAPIKey() http.HandlerFunc {
	return api.Endpoint(api.epDeleteAPIKey)
}

// DELETE /keys/{id}: revoke an API key (auth required).
func (api API) epDeleteAPIKey(req *http.Request) result.Result {
	if r := requireAdmin(req); r.Status != 0 {
		return r
	}

	id := requireIDParam(req)

	k, err := api.Backend.DeleteAPIKey(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, golderr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	return result.OK(apiKeyModel(k), "API key for '%s' (%s) revoked", k.Owner, k.ID)
}
