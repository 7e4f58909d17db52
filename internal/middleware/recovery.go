package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/templui/focusflow/internal/respond"
)

// Recovery turns a panic in a handler into a generic 500 response.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			err := recover()
			if err == nil {
				return
			}
			if err == http.ErrAbortHandler {
				panic(err)
			}

			slog.Error("panic recovered",
				"error", err,
				"method", r.Method,
				"path", r.URL.Path,
				"stack", string(debug.Stack()),
			)
			respond.InternalError(w)
		}()

		next.ServeHTTP(w, r)
	})
}
