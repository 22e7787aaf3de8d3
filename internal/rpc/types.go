// Package rpc exposes the read-only pool views and transaction submission
// over HTTP JSON-RPC. Requests name a method and carry a single params
// object; responses wrap the result with a status field.
package rpc

import (
	"context"
	"encoding/json"
)

// Request is the wire format: {"method": "...", "params": [{...}]}.
type Request struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params,omitempty"`
}

// Context carries request-scoped information into handlers.
type Context struct {
	Context  context.Context
	ClientIP string
}

// Handler executes one method.
type Handler func(ctx *Context, params json.RawMessage) (interface{}, *Error)

// MethodRegistry maps method names to handlers.
type MethodRegistry struct {
	methods map[string]Handler
}

func NewMethodRegistry() *MethodRegistry {
	return &MethodRegistry{methods: make(map[string]Handler)}
}

func (r *MethodRegistry) Register(name string, handler Handler) {
	r.methods[name] = handler
}

func (r *MethodRegistry) Get(name string) (Handler, bool) {
	handler, ok := r.methods[name]
	return handler, ok
}

func (r *MethodRegistry) List() []string {
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	return names
}
