package api

// GrammarModel is the JSON representation of a cached grammar returned by
// the API. It never includes the raw table bytes; those are only accepted
// on upload, never echoed back.
type GrammarModel struct {
	URI     string `json:"uri"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Created string `json:"created"`
}

// GrammarUploadRequest is the body of a grammar-upload request. TableData is
// the compiled GOLD table file, base64-encoded by the standard
// encoding/json []byte handling.
type GrammarUploadRequest struct {
	Name      string `json:"name"`
	TableData []byte `json:"table_data"`
}

// ParseRequest is the body of a parse-input request.
type ParseRequest struct {
	Input string `json:"input"`
}

// ParseResponse is the result of running a parse-input request against a
// cached grammar.
type ParseResponse struct {
	// Accepted is true if the input was a complete, error-free parse.
	Accepted bool `json:"accepted"`

	// Tree is a rendered listing of the resulting parse tree, present only
	// when Accepted is true.
	Tree string `json:"tree,omitempty"`

	// Error is the parse failure's message, present only when Accepted is
	// false.
	Error string `json:"error,omitempty"`
}

// APIKeyModel is the JSON representation of an API key returned by an
// endpoint that lists or otherwise does not mint a new key. Key is omitted;
// the key material is only ever returned once, at creation.
type APIKeyModel struct {
	URI     string `json:"uri"`
	ID      string `json:"id"`
	Owner   string `json:"owner"`
	Created string `json:"created"`
}

// APIKeyCreateRequest is the body of an API-key creation request.
type APIKeyCreateRequest struct {
	Owner string `json:"owner"`
}

// APIKeyCreateResponse is returned from a successful API-key creation; it is
// the only time the key material is ever sent to a client.
type APIKeyCreateResponse struct {
	APIKeyModel
	Key string `json:"key"`
}

// InfoModel gives version info on the running server and the engine it
// embeds.
type InfoModel struct {
	Version struct {
		Server string `json:"server"`
		Engine string `json:"engine"`
	} `json:"version"`
	LoggedIn bool `json:"logged_in"`
}
