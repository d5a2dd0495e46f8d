package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/neubri/threads-clone/internal/logging"
)

const maxBodyBytes = 1 << 20

type graphqlRequest struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

type GraphQLHandler struct {
	schema graphql.Schema
	logger *logging.Logger
}

func NewGraphQLHandler(schema graphql.Schema, logger *logging.Logger) *GraphQLHandler {
	return &GraphQLHandler{schema: schema, logger: logger}
}

// ServeHTTP executes a query from a JSON POST body or from GET query parameters.
// Resolver errors are reported in the response body with status 200.
func (h *GraphQLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req graphqlRequest

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req.Query = q.Get("query")
		req.OperationName = q.Get("operationName")
		if raw := q.Get("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid variables")
				return
			}
		}
	case http.MethodPost:
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
			return
		}
	default:
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Query is required")
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        r.Context(),
	})

	if result.HasErrors() {
		h.logger.WithContext(r.Context()).WithField("errors", len(result.Errors)).Debug("graphql request returned errors")
	}

	writeJSON(w, http.StatusOK, result)
}
