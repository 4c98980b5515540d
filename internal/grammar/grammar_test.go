package grammar

import (
	"strings"
	"testing"
)

func TestDecode_JSONList(t *testing.T) {
	input := `[
		{"kind": "TextChunk", "value": "Seller: "},
		{"kind": "Variable", "name": "seller", "type": "String"}
	]`
	nodes, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	if nodes[0].Kind != KindTextChunk || nodes[0].Value != "Seller: " {
		t.Errorf("unexpected first node: %+v", nodes[0])
	}
	if nodes[1].Kind != KindVariable || nodes[1].Name != "seller" || nodes[1].Type != TypeString {
		t.Errorf("unexpected second node: %+v", nodes[1])
	}
}

func TestDecode_JSONSingleNode(t *testing.T) {
	input := `{"kind": "ContractBlock", "children": [{"kind": "TextChunk", "value": "x"}]}`
	nodes, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected single-node list, got %d", len(nodes))
	}
	if nodes[0].Kind != KindContract || len(nodes[0].Children) != 1 {
		t.Errorf("unexpected node: %+v", nodes[0])
	}
}

func TestDecode_YAMLList(t *testing.T) {
	input := `
- kind: TextChunk
  value: "Buyer: "
- kind: Variable
  name: buyer
  type: String
`
	nodes, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	if nodes[1].Name != "buyer" {
		t.Errorf("unexpected node: %+v", nodes[1])
	}
}

func TestDecode_YAMLSingleNode(t *testing.T) {
	input := `
kind: Variable
name: state
type: Enum
enumValues: [Alabama, Alaska]
`
	nodes, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected single-node list, got %d", len(nodes))
	}
	n := nodes[0]
	if n.Type != TypeEnum || len(n.EnumValues) != 2 || n.EnumValues[1] != "Alaska" {
		t.Errorf("unexpected node: %+v", n)
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, err := Decode(strings.NewReader(":::not a grammar")); err == nil {
		t.Error("expected decode failure")
	}
}
