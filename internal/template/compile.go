// Package template compiles a declarative grammar tree into an executable
// parser. Compilation validates the whole tree up front; a compiled parser
// is immutable and reusable. Clause blocks compiled inside a contract are
// wrapped in the same boundary markers the markdown serializer emits, so
// rendering and parsing stay byte-for-byte inverses.
package template

import (
	"fmt"
	"strconv"
	"time"

	"github.com/clausemark/clausemark/internal/combinator"
	"github.com/clausemark/clausemark/internal/doctree"
	"github.com/clausemark/clausemark/internal/grammar"
)

// ErrorKind names the compile-time failure taxonomy.
type ErrorKind string

const (
	UnknownVariableType    ErrorKind = "UnknownVariableType"
	UnknownGrammarNodeType ErrorKind = "UnknownGrammarNodeType"
)

// CompileError reports an invalid grammar tree. It is raised before any
// input text is examined; no parser is produced.
type CompileError struct {
	Kind   ErrorKind
	Detail string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// buildState threads compile-scope flags down the grammar tree. It is
// passed by value: setting withinContract for a subtree cannot leak back
// to siblings.
type buildState struct {
	withinContract bool
}

// Compile turns a grammar tree into a parser.
func Compile(root *grammar.Node) (combinator.Parser, error) {
	return compileNode(root, buildState{})
}

// CompileAll compiles a flat grammar node list the way an
// UnorderedListBlock does: children match contiguously in declared order
// and the binding is the ordered list of values from children that
// produce one.
func CompileAll(nodes []*grammar.Node) (combinator.Parser, error) {
	return compileCollecting(nodes, buildState{})
}

// Parse applies a compiled parser to input and requires it to consume all
// of it.
func Parse(p combinator.Parser, input string) (any, error) {
	res, perr := p(input, 0)
	if perr != nil {
		return nil, perr
	}
	if res.Pos != len(input) {
		return nil, &combinator.ParseError{Pos: res.Pos, Expected: "end of input"}
	}
	return res.Value, nil
}

func compileNode(n *grammar.Node, st buildState) (combinator.Parser, error) {
	switch n.Kind {
	case grammar.KindTextChunk:
		return combinator.Literal(n.Value), nil

	case grammar.KindVariable:
		return compileVariable(n)

	case grammar.KindConditional:
		return compileConditional(n), nil

	case grammar.KindUnorderedList:
		return compileCollecting(n.Children, st)

	case grammar.KindClause:
		kind := n.Type
		if kind == "" {
			kind = "Clause"
		}
		p, err := compileCompound(n.Children, st, kind)
		if err != nil {
			return nil, err
		}
		if !st.withinContract {
			return p, nil
		}
		src := n.Src
		if src == "" {
			src = n.Name
		}
		opening := combinator.Literal(doctree.ClauseOpening(src, n.Name))
		closing := combinator.Literal(doctree.ClauseClosing)
		return combinator.Wrap(opening, p, closing), nil

	case grammar.KindWith:
		return compileCompound(n.Children, st, n.Type)

	case grammar.KindContract:
		st.withinContract = true
		kind := n.Type
		if kind == "" {
			kind = "Contract"
		}
		return compileCompound(n.Children, st, kind)

	default:
		return nil, &CompileError{
			Kind:   UnknownGrammarNodeType,
			Detail: fmt.Sprintf("no compilation rule for grammar node %q", n.Kind),
		}
	}
}

func compileVariable(n *grammar.Node) (combinator.Parser, error) {
	bind := func(value any) any {
		return BoundVariable{Name: n.Name, Type: n.Type, Value: value}
	}

	switch n.Type {
	case grammar.TypeEnum:
		alts := make([]combinator.Parser, len(n.EnumValues))
		for i, v := range n.EnumValues {
			alts[i] = combinator.Literal(v)
		}
		return combinator.Map(combinator.Alternation(alts...), bind), nil

	case grammar.TypeInteger:
		return combinator.Map(combinator.Digits(), func(v any) any {
			s := v.(string)
			// Out-of-range digit runs keep their textual form.
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				return bind(i)
			}
			return bind(s)
		}), nil

	case grammar.TypeDouble:
		return combinator.Map(combinator.Decimal(), func(v any) any {
			f, _ := strconv.ParseFloat(v.(string), 64)
			return bind(f)
		}), nil

	case grammar.TypeString:
		return combinator.Map(combinator.QuotedString(), bind), nil

	case grammar.TypeDateTime:
		return compileDateTime(n), nil

	default:
		return nil, &CompileError{
			Kind:   UnknownVariableType,
			Detail: fmt.Sprintf("variable %q has unsupported type %q", n.Name, n.Type),
		}
	}
}

// compileDateTime matches a date-time literal and binds it as time.Time.
// The lexical shape comes from the runtime's date-time grammar; calendar
// validity is checked here so an impossible date fails at its position.
func compileDateTime(n *grammar.Node) combinator.Parser {
	lexical := combinator.DateTime()
	return func(input string, pos int) (combinator.Result, *combinator.ParseError) {
		res, err := lexical(input, pos)
		if err != nil {
			return combinator.Result{}, err
		}
		s := res.Value.(string)
		t, perr := parseDateTimeValue(s)
		if perr != nil {
			return combinator.Result{}, &combinator.ParseError{Pos: pos, Expected: "valid date-time"}
		}
		res.Value = BoundVariable{Name: n.Name, Type: n.Type, Value: t}
		return res, nil
	}
}

func parseDateTimeValue(s string) (time.Time, error) {
	for _, layout := range []string{
		"2006-01-02T15:04:05", "2006-01-02 15:04:05",
		"2006-01-02T15:04", "2006-01-02 15:04",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date-time %q", s)
}

func compileConditional(n *grammar.Node) combinator.Parser {
	first, second := n.WhenTrue, n.WhenFalse
	// Longer literal first, so a branch that is a prefix of the other
	// cannot shadow it.
	if len(second) > len(first) {
		first, second = second, first
	}
	p := combinator.Alternation(
		combinator.Literal(first),
		combinator.Literal(second),
	)
	return combinator.Map(p, func(v any) any {
		return BoundVariable{Name: n.Name, Type: "Boolean", Value: v.(string) == n.WhenTrue}
	})
}

// compileCollecting sequence-composes children and binds the ordered list
// of values from the ones that bind; pure connective text contributes
// nothing.
func compileCollecting(children []*grammar.Node, st buildState) (combinator.Parser, error) {
	parsers, binds, err := compileChildren(children, st)
	if err != nil {
		return nil, err
	}
	return combinator.Map(combinator.Sequence(parsers...), func(v any) any {
		values := v.([]any)
		collected := make([]any, 0, len(values))
		for i, val := range values {
			if binds[i] {
				collected = append(collected, val)
			}
		}
		return collected
	}), nil
}

// compileCompound sequence-composes children into a single compound record
// with one field per named child, tagged with kind.
func compileCompound(children []*grammar.Node, st buildState, kind string) (combinator.Parser, error) {
	parsers, _, err := compileChildren(children, st)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(children))
	for i, c := range children {
		names[i] = c.Name
	}
	return combinator.Map(combinator.Sequence(parsers...), func(v any) any {
		fields := make(map[string]any)
		for i, val := range v.([]any) {
			if names[i] != "" && children[i].Kind != grammar.KindTextChunk {
				fields[names[i]] = val
			}
		}
		return Compound{Kind: kind, Fields: fields}
	}), nil
}

func compileChildren(children []*grammar.Node, st buildState) ([]combinator.Parser, []bool, error) {
	parsers := make([]combinator.Parser, len(children))
	binds := make([]bool, len(children))
	for i, c := range children {
		p, err := compileNode(c, st)
		if err != nil {
			return nil, nil, err
		}
		parsers[i] = p
		binds[i] = c.Kind != grammar.KindTextChunk
	}
	return parsers, binds, nil
}
