package http_server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// timeoutProblem is the problem document sent when a request outlives Config.Timeout.
const timeoutProblem = `{"type":"about:blank","title":"Service Unavailable","status":503,` +
	`"detail":"The request took too long to complete."}` + "\n"

type Config struct {
	Port    int
	Timeout time.Duration
}

// New builds the http server. Request contexts derive from ctx so shutdown cancels in-flight
// backend calls.
func New(ctx context.Context, handler http.Handler, config Config) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Port),
		Handler:           problemOnTimeout(http.TimeoutHandler(handler, config.Timeout, timeoutProblem)),
		BaseContext:       func(net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       config.Timeout,
		WriteTimeout:      config.Timeout + 5*time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}

// problemOnTimeout labels the timeout handler's own 503 as a problem document. Responses
// that set their own Content-Type keep it.
func problemOnTimeout(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(timeoutWriter{w}, r)
	})
}

type timeoutWriter struct {
	http.ResponseWriter
}

func (tw timeoutWriter) WriteHeader(status int) {
	if status == http.StatusServiceUnavailable && tw.Header().Get("Content-Type") == "" {
		tw.Header().Set("Content-Type", "application/problem+json")
	}
	tw.ResponseWriter.WriteHeader(status)
}
