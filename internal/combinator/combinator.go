// Package combinator implements the parser runtime: small, pure parser
// values that consume a prefix of input text and yield a result plus the
// position after it, or a positioned failure. Parsers hold no mutable
// state, so one compiled parser can serve unlimited concurrent parses.
package combinator

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports the furthest input position a parse reached and what
// was expected there. No partial result accompanies a ParseError.
type ParseError struct {
	Pos      int
	Expected string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: expected %s", e.Pos, e.Expected)
}

// Result is a successful match: the bound value and the position
// immediately after the consumed input.
type Result struct {
	Value any
	Pos   int
}

// Parser attempts to consume input starting at pos.
type Parser func(input string, pos int) (Result, *ParseError)

// Literal matches exactly text.
func Literal(text string) Parser {
	return func(input string, pos int) (Result, *ParseError) {
		if strings.HasPrefix(input[pos:], text) {
			return Result{Value: text, Pos: pos + len(text)}, nil
		}
		return Result{}, &ParseError{Pos: pos, Expected: strconv.Quote(text)}
	}
}

// Digits matches one or more decimal digits, binding the matched text.
func Digits() Parser {
	return func(input string, pos int) (Result, *ParseError) {
		end := pos
		for end < len(input) && input[end] >= '0' && input[end] <= '9' {
			end++
		}
		if end == pos {
			return Result{}, &ParseError{Pos: pos, Expected: "digits"}
		}
		return Result{Value: input[pos:end], Pos: end}, nil
	}
}

// Decimal matches digits with an optional fractional part and an optional
// signed exponent, binding the matched text.
func Decimal() Parser {
	digits := Digits()
	return func(input string, pos int) (Result, *ParseError) {
		res, err := digits(input, pos)
		if err != nil {
			return Result{}, &ParseError{Pos: pos, Expected: "number"}
		}
		end := res.Pos
		if end < len(input) && input[end] == '.' {
			frac, err := digits(input, end+1)
			if err != nil {
				return Result{}, &ParseError{Pos: end + 1, Expected: "fractional digits"}
			}
			end = frac.Pos
		}
		if end < len(input) && (input[end] == 'e' || input[end] == 'E') {
			expStart := end + 1
			if expStart < len(input) && (input[expStart] == '+' || input[expStart] == '-') {
				expStart++
			}
			exp, err := digits(input, expStart)
			if err != nil {
				return Result{}, &ParseError{Pos: expStart, Expected: "exponent digits"}
			}
			end = exp.Pos
		}
		return Result{Value: input[pos:end], Pos: end}, nil
	}
}

// QuotedString matches a double-quoted literal and binds the interior
// without the quotes. Backslash escapes the next character.
func QuotedString() Parser {
	return func(input string, pos int) (Result, *ParseError) {
		if pos >= len(input) || input[pos] != '"' {
			return Result{}, &ParseError{Pos: pos, Expected: "quoted string"}
		}
		var b strings.Builder
		i := pos + 1
		for i < len(input) {
			switch input[i] {
			case '"':
				return Result{Value: b.String(), Pos: i + 1}, nil
			case '\\':
				if i+1 >= len(input) {
					return Result{}, &ParseError{Pos: i + 1, Expected: "escaped character"}
				}
				b.WriteByte(input[i+1])
				i += 2
			default:
				b.WriteByte(input[i])
				i++
			}
		}
		return Result{}, &ParseError{Pos: len(input), Expected: `closing "`}
	}
}

// DateTime matches a date-time literal of the shape YYYY-MM-DD with an
// optional HH:MM or HH:MM:SS part separated by a space or 'T', binding the
// matched text. Calendar validity is the caller's concern.
func DateTime() Parser {
	return func(input string, pos int) (Result, *ParseError) {
		end := pos
		fail := func() (Result, *ParseError) {
			return Result{}, &ParseError{Pos: pos, Expected: "date-time literal"}
		}
		take := func(n int) bool {
			for i := 0; i < n; i++ {
				if end >= len(input) || input[end] < '0' || input[end] > '9' {
					return false
				}
				end++
			}
			return true
		}
		lit := func(c byte) bool {
			if end < len(input) && input[end] == c {
				end++
				return true
			}
			return false
		}
		if !take(4) || !lit('-') || !take(2) || !lit('-') || !take(2) {
			return fail()
		}
		// Optional time part.
		if end < len(input) && (input[end] == ' ' || input[end] == 'T') {
			mark := end
			end++
			if !take(2) || !lit(':') || !take(2) {
				end = mark
				return Result{Value: input[pos:end], Pos: end}, nil
			}
			if end < len(input) && input[end] == ':' {
				mark = end
				end++
				if !take(2) {
					end = mark
				}
			}
		}
		return Result{Value: input[pos:end], Pos: end}, nil
	}
}

// Sequence requires every parser to match contiguously in order, binding
// the ordered list of component values.
func Sequence(parsers ...Parser) Parser {
	return func(input string, pos int) (Result, *ParseError) {
		values := make([]any, 0, len(parsers))
		cur := pos
		for _, p := range parsers {
			res, err := p(input, cur)
			if err != nil {
				return Result{}, err
			}
			values = append(values, res.Value)
			cur = res.Pos
		}
		return Result{Value: values, Pos: cur}, nil
	}
}

// Alternation tries each parser at the same position in declared order and
// commits to the first success. On failure it reports the alternative that
// reached furthest, joining expectations that tie.
func Alternation(parsers ...Parser) Parser {
	return func(input string, pos int) (Result, *ParseError) {
		var furthest *ParseError
		var expected []string
		for _, p := range parsers {
			res, err := p(input, pos)
			if err == nil {
				return res, nil
			}
			switch {
			case furthest == nil || err.Pos > furthest.Pos:
				furthest = err
				expected = []string{err.Expected}
			case err.Pos == furthest.Pos:
				expected = append(expected, err.Expected)
			}
		}
		if furthest == nil {
			return Result{}, &ParseError{Pos: pos, Expected: "one of no alternatives"}
		}
		return Result{}, &ParseError{Pos: furthest.Pos, Expected: strings.Join(expected, " or ")}
	}
}

// Wrap requires before, inner and after in order and binds inner's value.
func Wrap(before, inner, after Parser) Parser {
	return func(input string, pos int) (Result, *ParseError) {
		b, err := before(input, pos)
		if err != nil {
			return Result{}, err
		}
		res, err := inner(input, b.Pos)
		if err != nil {
			return Result{}, err
		}
		a, err := after(input, res.Pos)
		if err != nil {
			return Result{}, err
		}
		return Result{Value: res.Value, Pos: a.Pos}, nil
	}
}

// Map transforms a successful match's value into a domain record.
func Map(p Parser, f func(any) any) Parser {
	return func(input string, pos int) (Result, *ParseError) {
		res, err := p(input, pos)
		if err != nil {
			return Result{}, err
		}
		return Result{Value: f(res.Value), Pos: res.Pos}, nil
	}
}
