package api

import (
	"net/http"

	"github.com/dekarrin/goldrun/internal/version"
	"github.com/dekarrin/goldrun/server/middle"
	"github.com/dekarrin/goldrun/server/result"
)

// HTTPGetInfo returns a HandlerFunc that reports version info on the server
// and the engine it embeds. No authentication is required.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return api.Endpoint(api.epGetInfo)
}

// GET /info: get server and engine version info.
func (api API) epGetInfo(req *http.Request) result.Result {
	loggedIn, _ := req.Context().Value(middle.AuthLoggedIn).(bool)

	var resp InfoModel
	resp.Version.Server = version.ServerCurrent
	resp.Version.Engine = version.Current
	resp.LoggedIn = loggedIn

	return result.OK(resp, "got server info")
}
