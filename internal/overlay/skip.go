package overlay

import "strings"

// MatchKind distinguishes the two ways a Rule can match an entry name.
type MatchKind int

const (
	// MatchExact matches names equal to the pattern.
	MatchExact MatchKind = iota

	// MatchSuffix matches names ending with the pattern.
	MatchSuffix
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchSuffix:
		return "suffix"
	default:
		return "unknown"
	}
}

// Rule is a single name-matching predicate applied to directory entries.
type Rule struct {
	Kind    MatchKind
	Pattern string
}

// Exact returns a rule matching entries named exactly name.
func Exact(name string) Rule {
	return Rule{Kind: MatchExact, Pattern: name}
}

// Suffix returns a rule matching entries whose name ends with tail.
func Suffix(tail string) Rule {
	return Rule{Kind: MatchSuffix, Pattern: tail}
}

// Matches reports whether name is excluded by the rule.
// An empty pattern never matches.
func (r Rule) Matches(name string) bool {
	if r.Pattern == "" {
		return false
	}
	switch r.Kind {
	case MatchExact:
		return name == r.Pattern
	case MatchSuffix:
		return strings.HasSuffix(name, r.Pattern)
	default:
		return false
	}
}

func (r Rule) String() string {
	if r.Kind == MatchSuffix {
		return "*" + r.Pattern
	}
	return r.Pattern
}

// SkipRules is a closed set of rules; an entry is skipped when any rule matches.
type SkipRules []Rule

// DefaultSkipRules excludes build artifacts, dependency caches, version
// control metadata and local environment files from every layer.
// Named patterns also match as suffixes, so "production.env" and "redist"
// are skipped along with ".env" and "dist".
var DefaultSkipRules = concat(
	ExactOrSuffix("__pycache__"),
	ExactOrSuffix("node_modules"),
	ExactOrSuffix(".git"),
	ExactOrSuffix(".env"),
	ExactOrSuffix("dist"),
	ExactOrSuffix("build"),
	SkipRules{Suffix(".pyc"), Suffix(".egg-info")},
)

// ExactOrSuffix returns an Exact rule for name followed by a Suffix rule for
// the same string. Match reports the Exact rule when the name is equal.
func ExactOrSuffix(name string) SkipRules {
	return SkipRules{Exact(name), Suffix(name)}
}

func concat(sets ...SkipRules) SkipRules {
	var out SkipRules
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

// Match returns the first rule matching name.
func (s SkipRules) Match(name string) (Rule, bool) {
	for _, r := range s {
		if r.Matches(name) {
			return r, true
		}
	}
	return Rule{}, false
}

// Skip reports whether name matches any rule in the set.
func (s SkipRules) Skip(name string) bool {
	_, ok := s.Match(name)
	return ok
}
