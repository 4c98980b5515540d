// Package convert holds the format registry and the explicit conversion
// chains between registered formats. A chain is caller-specified: each hop
// must name a registered converter, and the output of one hop feeds the
// next. There is no automatic path search.
package convert

import (
	"fmt"
	"sort"
)

// Serialization classifies how a format is carried between calls.
type Serialization string

const (
	SerializationTree   Serialization = "tree"
	SerializationText   Serialization = "text"
	SerializationBinary Serialization = "binary"
)

// Format describes one registered document representation.
type Format struct {
	Name          string        `json:"name"`
	Serialization Serialization `json:"serialization"`
}

// Converter transforms a document from one named format to another.
type Converter struct {
	From    string
	To      string
	Convert func(doc any) (any, error)
}

// UnsupportedConversionError names a requested hop with no registered
// converter. The whole chain aborts; no partial result is returned.
type UnsupportedConversionError struct {
	From string
	To   string
}

func (e *UnsupportedConversionError) Error() string {
	return fmt.Sprintf("unsupported conversion from %q to %q", e.From, e.To)
}

// Registry maps format names to descriptors and (from,to) pairs to
// converters. Registration happens at startup; Run only reads, so one
// registry serves concurrent calls.
type Registry struct {
	formats    map[string]Format
	converters map[[2]string]Converter
}

func NewRegistry() *Registry {
	return &Registry{
		formats:    make(map[string]Format),
		converters: make(map[[2]string]Converter),
	}
}

func (r *Registry) RegisterFormat(f Format) {
	r.formats[f.Name] = f
}

func (r *Registry) RegisterConverter(c Converter) {
	r.converters[[2]string{c.From, c.To}] = c
}

// Format returns a registered format descriptor.
func (r *Registry) Format(name string) (Format, bool) {
	f, ok := r.formats[name]
	return f, ok
}

// Formats lists registered formats, sorted by name.
func (r *Registry) Formats() []Format {
	out := make([]Format, 0, len(r.formats))
	for _, f := range r.formats {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Converters enumerates registered converters for documentation purposes,
// sorted by (from, to).
func (r *Registry) Converters() []Converter {
	out := make([]Converter, 0, len(r.converters))
	for _, c := range r.converters {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// Run executes an explicit ordered chain of conversions, feeding each
// hop's output to the next. A hop with no registered converter fails the
// whole chain with UnsupportedConversionError.
func (r *Registry) Run(doc any, source string, targets []string) (any, error) {
	current := source
	for _, target := range targets {
		c, ok := r.converters[[2]string{current, target}]
		if !ok {
			return nil, &UnsupportedConversionError{From: current, To: target}
		}
		next, err := c.Convert(doc)
		if err != nil {
			return nil, fmt.Errorf("convert %s to %s: %w", current, target, err)
		}
		doc = next
		current = target
	}
	return doc, nil
}
