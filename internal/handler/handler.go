// Package handler binds the routes of the API contract to the services.
package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/templui/focusflow/internal/contract"
	"github.com/templui/focusflow/internal/respond"
	"github.com/templui/focusflow/internal/schema"
)

const maxBodyBytes = 1 << 20

// bind decodes and validates the input declared by route. Query inputs are
// read from the URL, everything else from the JSON body.
func bind[T any](w http.ResponseWriter, r *http.Request, route contract.Route) (*T, error) {
	in, ok := route.NewInput().(*T)
	if !ok {
		return nil, fmt.Errorf("%s: input type mismatch, want *%T", route.Name, *new(T))
	}

	if q, ok := any(in).(schema.QueryInput); ok {
		q.DecodeQuery(r.URL.Query())
		return in, schema.Validate(in)
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return in, schema.DecodeJSON(r.Body, in)
}

// pathID parses the {id} path value, writing a 400 when it is not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.BadRequest(w, "id", "Invalid id")
		return 0, false
	}
	return id, true
}
