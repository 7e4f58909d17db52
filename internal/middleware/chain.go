package middleware

import "net/http"

// Chain wraps h so that middlewares run in the order given: the first one
// sees the request first and the response last.
//
//	handler := Chain(mux, Recovery, RequestLogging, AuthMiddleware(auth))
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
