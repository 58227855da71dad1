package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server runs an HTTP server exposing /metrics and /health.
type Server struct {
	server *http.Server
}

// NewServer creates a metrics server on the given address serving the
// collectors gathered by g.
func NewServer(addr string, g prometheus.Gatherer) *Server {
	return &Server{
		server: &http.Server{
			Addr:    addr,
			Handler: NewHandler(g),
		},
	}
}

// NewHandler returns the mux used by Server.
func NewHandler(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return mux
}

// Start starts the metrics server (blocking).
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// StartAsync starts the metrics server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		_ = s.server.ListenAndServe()
	}()
}

// Stop stops the metrics server.
func (s *Server) Stop() error {
	return s.server.Close()
}
