// Package rpcserver implements the crawler's read-only JSON-RPC 2.0
// surface over the latest published snapshot.
package rpcserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/pkg/metrics"
	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/pkg/snapshot"
)

// MaxBodyBytes caps both request and response bodies.
const MaxBodyBytes = 200 * 1000 * 1000

type handlerFunc func(params json.RawMessage) (interface{}, *rpcError)

// Server is the crawler's JSON-RPC 2.0 HTTP server.
type Server struct {
	builder *snapshot.Builder
	log     *zap.Logger
	methods map[string]handlerFunc

	httpServer *http.Server
}

// New builds a Server reading from builder, bound to addr. Call Serve to
// start accepting connections.
func New(addr string, builder *snapshot.Builder, log *zap.Logger) *Server {
	s := &Server{builder: builder, log: log.Named("rpc")}
	s.methods = map[string]handlerFunc{
		"getmetrics": s.handleGetMetrics,
		"getstats":   s.handleGetStats,
		"getnodes":   s.handleGetNodes,
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.MaxBytesHandler(http.HandlerFunc(s.serveRPC), MaxBodyBytes))
	mux.Handle("/metrics", promhttp.Handler())

	handler := cors.AllowAll().Handler(mux)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Serve blocks, serving RPC requests until ctx is cancelled or the
// listener errors. A bind failure is returned to the caller; the
// orchestrator exits the process on any error returned while its context
// is still live.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) serveRPC(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, errResponse(nil, errParseError, "parse error"))
		return
	}

	handler, ok := s.methods[req.Method]
	if !ok {
		writeJSON(w, errResponse(req.ID, errMethodNotFound, "method not found"))
		return
	}

	metrics.RPCRequests.WithLabelValues(req.Method).Inc()

	result, rpcErr := handler(req.Params)
	if rpcErr != nil {
		writeJSON(w, errResponse(req.ID, rpcErr.Code, rpcErr.Message))
		return
	}
	writeJSON(w, okResponse(req.ID, result))
}

// writeJSON encodes resp, replacing it with an internal-error response
// when the encoded body would exceed MaxBodyBytes.
func writeJSON(w http.ResponseWriter, resp response) {
	body, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if len(body) > MaxBodyBytes {
		body, _ = json.Marshal(errResponse(resp.ID, errInternal, "response exceeds maximum body size"))
	}
	_, _ = w.Write(append(body, '\n'))
}
