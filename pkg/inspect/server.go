package inspect

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-loom/loom/pkg/compose"
)

// debugServer manages the HTTP server for composition tree inspection.
type debugServer struct {
	server   *http.Server
	listener net.Listener
	mu       sync.Mutex
}

var debugSrv debugServer

// StartServer starts the HTTP debug server on the specified port, serving
// snapshots of c. Returns the actual port (useful when port=0 for
// ephemeral allocation).
func StartServer(c *compose.Composer, port int) (int, error) {
	debugSrv.mu.Lock()
	defer debugSrv.mu.Unlock()

	if debugSrv.server != nil {
		// Already running - return current port
		if debugSrv.listener != nil {
			return debugSrv.listener.Addr().(*net.TCPAddr).Port, nil
		}
		return port, nil
	}

	// Bind listener first to fail fast on port conflicts
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return 0, fmt.Errorf("debug server listen: %w", err)
	}

	actualPort := listener.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	mux.HandleFunc("/compose/tree", handleTree(c))
	mux.HandleFunc("/health", handleHealth)

	server := &http.Server{Handler: mux}
	debugSrv.server = server
	debugSrv.listener = listener

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			// Server failed - clear state so it can be restarted
			debugSrv.mu.Lock()
			debugSrv.server = nil
			debugSrv.listener = nil
			debugSrv.mu.Unlock()
			fmt.Printf("debug server error: %v\n", err)
		}
	}()

	return actualPort, nil
}

// StopServer gracefully shuts down the debug server.
func StopServer() {
	debugSrv.mu.Lock()
	server := debugSrv.server
	debugSrv.server = nil
	debugSrv.listener = nil
	debugSrv.mu.Unlock()

	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	server.Shutdown(ctx)
}

// handleTree returns the composition tree snapshot as JSON, or YAML when
// ?format=yaml is passed.
func handleTree(c *compose.Composer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		// Recover from panics during serialization
		defer func() {
			if rec := recover(); rec != nil {
				http.Error(w, fmt.Sprintf("panic: %v", rec), http.StatusInternalServerError)
			}
		}()

		snap := Capture(c)
		if snap.Root == nil {
			http.Error(w, "no composition tree", http.StatusServiceUnavailable)
			return
		}

		if r.URL.Query().Get("format") == "yaml" {
			w.Header().Set("Content-Type", "application/yaml")
			if err := snap.EncodeYAML(w); err != nil {
				http.Error(w, fmt.Sprintf("yaml encode error: %v", err), http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := snap.EncodeJSON(w); err != nil {
			http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		}
	}
}

// handleHealth returns a simple health check response.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
