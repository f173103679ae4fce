// Package agent exposes the deterministic scheduling core to the external
// conversational agent as named tools with JSON-schema arguments. The agent
// is an untrusted caller: every tool re-validates through the same use cases
// the admin API runs.
package agent

import (
	"context"
	"encoding/json"

	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/httperr"
)

type Tool struct {
	Name        string
	Description string
	// Parameters is the JSON schema of the arguments object.
	Parameters json.RawMessage
	Handler    func(ctx context.Context, args json.RawMessage) (any, error)
}

// ToolDefinition is the wire shape the agent framework reads to build its
// function-calling manifest.
type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

type Registry struct {
	tools map[string]Tool
	order []string
}

func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		if _, dup := r.tools[t.Name]; dup {
			continue
		}
		r.tools[t.Name] = t
		r.order = append(r.order, t.Name)
	}
	return r
}

func (r *Registry) Definitions() []ToolDefinition {
	defs := make([]ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		defs = append(defs, ToolDefinition{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		})
	}
	return defs
}

func (r *Registry) Execute(
	ctx context.Context,
	name string,
	args json.RawMessage,
) (any, error) {

	tool, ok := r.tools[name]
	if !ok {
		return nil, httperr.NotFoundErr("tool_not_found")
	}
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	return tool.Handler(ctx, args)
}
