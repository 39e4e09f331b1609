// Package engine implements the token-consuming dispatch loop that
// drives METAR/TAF decoding. An ordered chain of named patterns is
// scanned against the head of the input; the first match invokes its
// handler, the matched prefix is removed, and the scan restarts from
// the top of the chain.
package engine

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// Match wraps a successful pattern match with named-group access.
type Match struct {
	re   *regexp.Regexp
	subs []string
}

// Group returns the text captured by the named group, or "" if the
// group did not participate in the match.
func (m *Match) Group(name string) string {
	for i, n := range m.re.SubexpNames() {
		if n == name && i < len(m.subs) {
			return m.subs[i]
		}
	}
	return ""
}

// Text returns the full matched text, trailing separator included.
func (m *Match) Text() string { return m.subs[0] }

// HandlerFunc decodes one matched element. A returned error is a soft
// failure: the engine logs it, the matched prefix is still consumed,
// and no builder state may have been mutated by the handler.
type HandlerFunc func(m *Match) error

// Entry binds a named pattern to its handler. Repeats marks patterns
// that may occur several times in a row (cloud layers, RVR groups,
// weather event chains): after a successful match the engine re-applies
// the same pattern until it fails before rescanning the chain.
type Entry struct {
	Name    string
	Pattern *regexp.Regexp
	Repeats bool
	Handle  HandlerFunc
}

// Chain is an ordered handler registry. The order is a behavioral
// contract: the first entry whose pattern matches wins, so entries with
// overlapping grammars must be registered most-specific first.
type Chain []Entry

// Run consumes input left-to-right against the chain and returns the
// unconsumed residue. Every successful match strictly shortens the
// input, so the loop terminates; a chain ending in a catch-all pattern
// always consumes everything.
func Run(chain Chain, input string, log zerolog.Logger) string {
	rest := strings.TrimSpace(input)

	for rest != "" {
		matched := false
		for i := range chain {
			e := &chain[i]
			var ok bool
			rest, ok = apply(e, rest, log)
			if !ok {
				continue
			}
			if e.Repeats {
				for ok && rest != "" {
					rest, ok = apply(e, rest, log)
				}
			}
			matched = true
			break
		}
		if !matched {
			break
		}
	}

	return rest
}

// MatchPattern applies a single pattern at the head of input and wraps
// the result for a decoder. It refuses empty matches, like the engine.
func MatchPattern(re *regexp.Regexp, input string) (*Match, bool) {
	subs := re.FindStringSubmatch(input)
	if subs == nil || len(subs[0]) == 0 {
		return nil, false
	}
	return &Match{re: re, subs: subs}, true
}

// apply tries one entry at the head of rest. It refuses empty matches
// so progress is guaranteed.
func apply(e *Entry, rest string, log zerolog.Logger) (string, bool) {
	subs := e.Pattern.FindStringSubmatch(rest)
	if subs == nil || len(subs[0]) == 0 {
		return rest, false
	}
	if err := e.Handle(&Match{re: e.Pattern, subs: subs}); err != nil {
		log.Warn().
			Str("element", e.Name).
			Str("token", strings.TrimSpace(subs[0])).
			Err(err).
			Msg("element decode failed, token consumed")
	}
	return rest[len(subs[0]):], true
}
