// Package report implements the diagnostic sink shared by the parser
// and resolver stages.
//
// The scanner stays self-contained (it returns its own diagnostic
// strings directly, per its contract), but the parser and resolver
// both need to accumulate possibly-many diagnostics across a single
// pass without aborting — panic-mode recovery in the parser, and a
// best-effort walk in the resolver. Sink is the small accumulator both
// stages embed for that purpose.
package report

import "fmt"

// Sink accumulates formatted diagnostic strings across a single
// parser or resolver pass.
type Sink struct {
	messages []string
}

// Syntax records a syntactic or resolver diagnostic in the format
// "[Line N] Error <where>: <message>", where `where` is either
// "at end" or "at '<lexeme>'".
func (s *Sink) Syntax(line int, where, message string) {
	s.messages = append(s.messages, fmt.Sprintf("[Line %d] Error %s: %s", line, where, message))
}

// HasErrors reports whether any diagnostic has been recorded.
func (s *Sink) HasErrors() bool {
	return len(s.messages) > 0
}

// Messages returns the accumulated diagnostics in recording order.
func (s *Sink) Messages() []string {
	return s.messages
}
