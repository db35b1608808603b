package triagem

import (
	"log"
	"net/http"
	"time"
)

// requestLogger logs one "http:" line per request with the status code
// the inner handler ended up writing and the handling time.
func requestLogger(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, Status: http.StatusOK}
		handler.ServeHTTP(rec, r)
		log.Printf("http: time:%dms %d %s %s", time.Since(start)/time.Millisecond, rec.Status, r.Method, r.URL.String())
	})
}

// statusRecorder captures the status code written by the inner handler.
// Handlers that never call WriteHeader count as 200.
type statusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.Status = status
	r.ResponseWriter.WriteHeader(status)
}
