package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/blaisecz/sleep-data-service/pkg/problem"
	"go.uber.org/zap"
)

// Recovery recovers from panics and returns a 500 error
func Recovery(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					log.Error("panic recovered",
						zap.Any("panic", err),
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.ByteString("stack", debug.Stack()),
					)
					problem.InternalError("An unexpected error occurred").WithInstance(r.URL.Path).Write(w)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
