package luavm

// Response is the invocation orchestrator's wire response shape,
// deciding spec.md §9's first Open Question in favor of a structured
// object over a pre-combined text form (see DESIGN.md).
type Response struct {
	Output string  `json:"output"`
	Result any     `json:"result"`
	Error  *string `json:"error"`
}
