package types

import "strings"

// Category groups services in listings and discovery
type Category string

const (
	CategoryIntegration Category = "integration"
	CategorySystem      Category = "system"
)

// Service describes a provider and the tools it exposes
type Service struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Capabilities []string `json:"capabilities"`
	Tools        []Tool   `json:"tools"`
}

// Tool is one callable operation of a service. IDs have the form
// "<service>.<tool>".
type Tool struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
}

// Parameter describes a tool argument. Type is a JSON type name, or
// "number|string" for limits that accept "inf" and "-inf".
type Parameter struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Required    bool     `json:"required"`
	Enum        []string `json:"enum,omitempty"`
}

// SplitToolID splits "<service>.<tool>" at the first dot. ok is false when
// either part is empty.
func SplitToolID(toolID string) (service, tool string, ok bool) {
	service, tool, found := strings.Cut(toolID, ".")
	return service, tool, found && service != "" && tool != ""
}

// Context carries per-request metadata into a provider
type Context struct {
	RequestID string  `json:"request_id,omitempty"`
	Caller    *string `json:"caller,omitempty"`
}

// Result is the outcome of a tool call. Failed calls may still carry Data,
// e.g. the partial value of an integration that ran out of budget.
type Result struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *string                `json:"error,omitempty"`
}
