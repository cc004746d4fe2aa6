// Package repl implements the read-eval-print loop: cleaning and
// classifying raw input, prompting for query parameters, and dispatching
// to the executor, the presenter, the settings store or the metadata
// commands.
//
// A parameter name referenced twice in one statement prompts twice, with
// the last entered value winning. That mirrors the historical behavior and
// is a candidate for deduplication.
package repl

import "strings"

// Kind tags a classified input.
type Kind int

const (
	// KindEmpty is blank input; the driver asks whether to quit.
	KindEmpty Kind = iota
	// KindQuit is the \q command.
	KindQuit
	// KindState is a \set or \pset command.
	KindState
	// KindHelp is help or \?.
	KindHelp
	// KindDist is the \copyright command.
	KindDist
	// KindMetadata is a \d-family catalog command.
	KindMetadata
	// KindQuery is anything else, forwarded to the executor. Transaction
	// control keywords (begin, commit, rollback) classify here too; only
	// the executor treats them specially.
	KindQuery
)

// Input is a classified line of input. Raw is the cleaned text.
type Input struct {
	Kind Kind
	Raw  string
}

// Clean trims leading and trailing whitespace, then strips at most one
// trailing occurrence of the terminator substring. Whitespace exposed by
// the terminator strip is deliberately left in place, so
// "  select 1  ;" cleans to "select 1  ".
func Clean(raw, terminator string) string {
	return strings.TrimSuffix(strings.TrimSpace(raw), terminator)
}

// Classify matches the first whitespace-delimited token, lowercased,
// against the recognized command tokens. Statements matching none of them
// are SQL input.
func Classify(cleaned string) Input {
	fields := strings.Fields(cleaned)
	if len(fields) == 0 {
		return Input{Kind: KindEmpty}
	}

	switch token := strings.ToLower(fields[0]); {
	case token == `\q`:
		return Input{Kind: KindQuit, Raw: cleaned}
	case token == `\set`, token == `\pset`:
		return Input{Kind: KindState, Raw: cleaned}
	case token == "help", token == `\?`:
		return Input{Kind: KindHelp, Raw: cleaned}
	case token == `\copyright`:
		return Input{Kind: KindDist, Raw: cleaned}
	case strings.HasPrefix(token, `\d`):
		return Input{Kind: KindMetadata, Raw: cleaned}
	default:
		return Input{Kind: KindQuery, Raw: cleaned}
	}
}
