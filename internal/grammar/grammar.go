// Package grammar defines the declarative template grammar tree: literal
// text interleaved with typed variable slots and structural blocks. A
// grammar tree is plain data; internal/template compiles it into an
// executable parser.
package grammar

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Kind discriminates grammar node records.
type Kind string

const (
	KindTextChunk     Kind = "TextChunk"
	KindVariable      Kind = "Variable"
	KindConditional   Kind = "ConditionalBlock"
	KindUnorderedList Kind = "UnorderedListBlock"
	KindClause        Kind = "ClauseBlock"
	KindWith          Kind = "WithBlock"
	KindContract      Kind = "ContractBlock"
)

// Variable types understood by the compiler.
const (
	TypeEnum     = "Enum"
	TypeInteger  = "Integer"
	TypeDouble   = "Double"
	TypeString   = "String"
	TypeDateTime = "DateTime"
)

// Node is one node of a template grammar tree.
type Node struct {
	Kind Kind `json:"kind" yaml:"kind"`

	// TextChunk literal.
	Value string `json:"value,omitempty" yaml:"value,omitempty"`

	// Variable / ClauseBlock identity.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// ClauseBlock source identifier for boundary markers. Falls back to
	// Name when empty.
	Src string `json:"src,omitempty" yaml:"src,omitempty"`

	// Enum variable alternatives, tried in declared order.
	EnumValues []string `json:"enumValues,omitempty" yaml:"enumValues,omitempty"`

	// ConditionalBlock literals.
	WhenTrue  string `json:"whenTrue,omitempty" yaml:"whenTrue,omitempty"`
	WhenFalse string `json:"whenFalse,omitempty" yaml:"whenFalse,omitempty"`

	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Decode reads a grammar from JSON or YAML. The document may be a single
// node or a flat node list; a single node comes back as a one-element
// list. JSON is tried first since every JSON document is also valid YAML.
func Decode(r io.Reader) ([]*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var nodes []*Node
	if err := json.Unmarshal(data, &nodes); err == nil {
		return nodes, nil
	}
	var n Node
	if err := json.Unmarshal(data, &n); err == nil {
		return []*Node{&n}, nil
	}

	if err := yaml.Unmarshal(data, &nodes); err == nil && nodes != nil {
		return nodes, nil
	}
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("decode grammar: %w", err)
	}
	return []*Node{&n}, nil
}
