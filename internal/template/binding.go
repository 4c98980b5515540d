package template

// BoundVariable is a single typed value recovered from filled-in text.
type BoundVariable struct {
	Name  string `json:"name,omitempty"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// Compound groups the named bindings produced by a clause, contract or
// with block, tagged with the block's declared type.
type Compound struct {
	Kind   string         `json:"kind"`
	Fields map[string]any `json:"fields"`
}
