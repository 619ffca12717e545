package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rcrowley/go-metrics"
)

type wrappedResponseWriter struct {
	http.ResponseWriter
	status int
}

func (l *wrappedResponseWriter) WriteHeader(status int) {
	l.status = status
	l.ResponseWriter.WriteHeader(status)
}

func (l *wrappedResponseWriter) Status() int {
	return l.status
}

func trackRoute(metricID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		route := fmt.Sprintf("route.%s", metricID)
		routeTimer := metrics.GetOrRegisterTimer(route, nil)
		errCounter := metrics.GetOrRegisterCounter(fmt.Sprintf("%s-err", route), nil)

		handler := func(w http.ResponseWriter, r *http.Request) {
			reqStart := time.Now()

			lw := &wrappedResponseWriter{w, -1}
			next.ServeHTTP(lw, r)

			routeTimer.UpdateSince(reqStart)
			if lw.Status() >= 400 {
				errCounter.Inc(1)
			}
		}
		return http.HandlerFunc(handler)
	}
}
