package rpc

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Server handles HTTP JSON-RPC requests.
type Server struct {
	registry *MethodRegistry
	services *Services
	httpSrv  *http.Server
}

// NewServer creates a server over the given services and registers all
// methods.
func NewServer(services *Services) *Server {
	s := &Server{
		registry: NewMethodRegistry(),
		services: services,
	}
	s.registerMethods()
	return s
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		err := s.httpSrv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		s.handleGet(w, r)
	case http.MethodPost:
		s.handlePost(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleGet serves simple queries like ?command=server_info.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Query().Get("command")
	if method == "" {
		method = "server_info"
	}
	ctx := &Context{Context: r.Context(), ClientIP: clientIP(r)}
	result, rpcErr := s.execute(method, nil, ctx)
	s.writeResponse(w, result, rpcErr)
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeResponse(w, nil, ErrInternal("failed to read request body"))
		return
	}
	defer r.Body.Close()

	var request Request
	if err := json.Unmarshal(body, &request); err != nil {
		s.writeResponse(w, nil, ErrInvalidParams("invalid JSON: "+err.Error()))
		return
	}
	if request.Method == "" {
		s.writeResponse(w, nil, ErrInvalidParams("missing method field"))
		return
	}

	var params json.RawMessage
	if len(request.Params) > 0 {
		params = request.Params[0]
	}

	ctx := &Context{Context: r.Context(), ClientIP: clientIP(r)}
	result, rpcErr := s.execute(request.Method, params, ctx)
	s.writeResponse(w, result, rpcErr)
}

func (s *Server) execute(method string, params json.RawMessage, ctx *Context) (interface{}, *Error) {
	handler, ok := s.registry.Get(method)
	if !ok {
		return nil, ErrMethodNotFound(method)
	}
	return handler(ctx, params)
}

func (s *Server) writeResponse(w http.ResponseWriter, result interface{}, rpcErr *Error) {
	response := make(map[string]interface{})
	if rpcErr != nil {
		response["result"] = map[string]interface{}{
			"status":        "error",
			"error":         rpcErr.ErrorString,
			"error_code":    rpcErr.Code,
			"error_message": rpcErr.Message,
		}
	} else {
		resultMap, ok := result.(map[string]interface{})
		if !ok {
			resultMap = map[string]interface{}{"data": result}
		}
		resultMap["status"] = "success"
		response["result"] = resultMap
	}

	data, err := json.Marshal(response)
	if err != nil {
		log.Printf("rpc: failed to marshal response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
