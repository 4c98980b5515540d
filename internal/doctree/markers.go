package doctree

import "strconv"

// Clause boundary markers bracket a clause's rendered text inside a
// contract. The exact bytes matter: the markdown serializer emits them and
// compiled template parsers require them literally, so both sides import
// these helpers instead of spelling the text out.

// ClauseClosing is the fixed closing marker.
const ClauseClosing = "\n```\n"

// ClauseOpening builds the opening marker for a clause with the given
// source and clause identifiers.
func ClauseOpening(src, clauseID string) string {
	return "\n``` <clause src=" + strconv.Quote(src) +
		" clauseid=" + strconv.Quote(clauseID) + ">\n"
}
