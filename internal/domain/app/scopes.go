package app

import (
	"sort"
	"strings"
)

// DefaultScope is assumed wherever a scope string is omitted.
const DefaultScope = "read"

// ScopeSet is a set of space-delimited permission tokens.
type ScopeSet map[string]struct{}

// ParseScopes parses a space-delimited scope string into a set. An
// empty string parses to the default "read" scope.
func ParseScopes(s string) ScopeSet {
	set := make(ScopeSet)
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	if len(set) == 0 {
		set[DefaultScope] = struct{}{}
	}
	return set
}

// SubsetOf reports whether every scope in s is also in other.
func (s ScopeSet) SubsetOf(other ScopeSet) bool {
	for tok := range s {
		if _, ok := other[tok]; !ok {
			return false
		}
	}
	return true
}

// Equal reports whether s and other contain exactly the same scopes.
func (s ScopeSet) Equal(other ScopeSet) bool {
	return len(s) == len(other) && s.SubsetOf(other)
}

// String renders the set back to a space-delimited string with stable
// ordering.
func (s ScopeSet) String() string {
	toks := make([]string, 0, len(s))
	for tok := range s {
		toks = append(toks, tok)
	}
	sort.Strings(toks)
	return strings.Join(toks, " ")
}
