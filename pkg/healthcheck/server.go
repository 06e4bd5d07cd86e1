// Package healthcheck runs the HTTP liveness endpoint hosting platforms probe.
package healthcheck

import (
	"context"
	"log"
	"net/http"
	"time"
)

// Server is a minimal HTTP server answering liveness probes.
type Server struct {
	server *http.Server
}

// New creates a health check server bound to addr.
func New(addr string) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("I'm alive!"))
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","service":"zoebot"}`))
	})

	return &Server{
		server: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}
}

// Start blocks serving probes until Stop is called.
func (s *Server) Start() error {
	log.Printf("Health check server listening on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	log.Println("Stopping health check server")
	return s.server.Shutdown(ctx)
}
