package types

// DiscoverRequest asks the registry for services relevant to a query
type DiscoverRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit,omitempty"`
}

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID string                 `json:"tool_id" binding:"required"`
	Params map[string]interface{} `json:"params" binding:"required"`
	Caller *string                `json:"caller,omitempty"`
}
