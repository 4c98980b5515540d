package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clausemark/clausemark/internal/combinator"
	"github.com/clausemark/clausemark/internal/grammar"
	"github.com/clausemark/clausemark/internal/template"
	"gopkg.in/yaml.v3"
)

// handleTemplateCompile validates a template grammar. Compilation checks
// all structure up front, so a success here guarantees the grammar can
// parse input later.
func (s *Server) handleTemplateCompile(w http.ResponseWriter, r *http.Request) {
	_, _, ok := s.decodeAndCompile(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"ok": true})
}

// handleTemplateParse compiles a grammar and applies it to the supplied
// text, returning the bound values.
func (s *Server) handleTemplateParse(w http.ResponseWriter, r *http.Request) {
	p, text, ok := s.decodeAndCompile(w, r)
	if !ok {
		return
	}

	result, err := template.Parse(p, text)
	if err != nil {
		var perr *combinator.ParseError
		if errors.As(err, &perr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]any{
				"error":    "parse failed",
				"position": perr.Pos,
				"expected": perr.Expected,
			})
			return
		}
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"bindings": result})
}

// decodeAndCompile reads the request body (JSON, or YAML when the
// Content-Type says so), where "grammar" is a single grammar node or a
// node list, and compiles it. On failure it writes the error response and
// returns ok=false.
func (s *Server) decodeAndCompile(w http.ResponseWriter, r *http.Request) (combinator.Parser, string, bool) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var nodes []*grammar.Node
	var text string
	var err error

	if ct := r.Header.Get("Content-Type"); ct == "application/yaml" || ct == "text/yaml" {
		var req struct {
			Grammar yaml.Node `yaml:"grammar"`
			Text    string    `yaml:"text"`
		}
		if err := yaml.NewDecoder(body).Decode(&req); err != nil {
			jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return nil, "", false
		}
		text = req.Text
		nodes, err = grammarFromYAML(&req.Grammar)
	} else {
		var req struct {
			Grammar json.RawMessage `json:"grammar"`
			Text    string          `json:"text"`
		}
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return nil, "", false
		}
		text = req.Text
		nodes, err = grammarFromJSON(req.Grammar)
	}
	if err != nil {
		jsonError(w, "invalid grammar: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}
	if len(nodes) == 0 {
		jsonError(w, "grammar is required", http.StatusBadRequest)
		return nil, "", false
	}

	p, err := compileNodes(nodes)
	if err != nil {
		var cerr *template.CompileError
		if errors.As(err, &cerr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]any{
				"error":  cerr.Error(),
				"kind":   string(cerr.Kind),
				"detail": cerr.Detail,
			})
			return nil, "", false
		}
		jsonError(w, err.Error(), http.StatusBadRequest)
		return nil, "", false
	}
	return p, text, true
}

func grammarFromJSON(raw json.RawMessage) ([]*grammar.Node, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var nodes []*grammar.Node
	if err := json.Unmarshal(raw, &nodes); err == nil {
		return nodes, nil
	}
	var node grammar.Node
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, err
	}
	return []*grammar.Node{&node}, nil
}

func grammarFromYAML(n *yaml.Node) ([]*grammar.Node, error) {
	if n.Kind == 0 {
		return nil, nil
	}
	if n.Kind == yaml.SequenceNode {
		var nodes []*grammar.Node
		if err := n.Decode(&nodes); err != nil {
			return nil, err
		}
		return nodes, nil
	}
	var node grammar.Node
	if err := n.Decode(&node); err != nil {
		return nil, err
	}
	return []*grammar.Node{&node}, nil
}

// compileNodes compiles a single grammar root directly and a flat list
// with collecting semantics.
func compileNodes(nodes []*grammar.Node) (combinator.Parser, error) {
	if len(nodes) == 1 {
		return template.Compile(nodes[0])
	}
	return template.CompileAll(nodes)
}
