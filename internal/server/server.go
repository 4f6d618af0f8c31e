package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Server serves the JSON-RPC API, the WebSocket event stream and a health
// endpoint over a single HTTP listener.
type Server struct {
	handler *Handler
	stream  *EventStream
	http    *http.Server
	addr    string
}

// New builds a server bound to the given address.
func New(handler *Handler, stream *EventStream, bindAddr string, port int) *Server {
	s := &Server{
		handler: handler,
		stream:  stream,
		addr:    net.JoinHostPort(bindAddr, fmt.Sprintf("%d", port)),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveRPC)
	mux.HandleFunc("/rpc", s.serveRPC)
	mux.HandleFunc("/ws", s.stream.ServeHTTP)
	mux.HandleFunc("/health", s.serveHealth)

	s.http = &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// ListenAndServe blocks serving requests until Shutdown is called.
func (s *Server) ListenAndServe() error {
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stream.Close()
	return s.http.Shutdown(ctx)
}

func (s *Server) serveRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		JsonRPC string          `json:"jsonrpc"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params"`
		ID      interface{}     `json:"id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, nil, &rpcError{Code: codeParseError, Message: "Parse error"})
		return
	}

	result, rpcErr := s.handler.Handle(req.Method, req.Params)
	if rpcErr != nil {
		writeError(w, req.ID, rpcErr)
		return
	}

	response := map[string]interface{}{
		"jsonrpc": "2.0",
		"result":  result,
		"id":      req.ID,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (s *Server) serveHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func writeError(w http.ResponseWriter, id interface{}, rpcErr *rpcError) {
	response := map[string]interface{}{
		"jsonrpc": "2.0",
		"error":   rpcErr,
		"id":      id,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
