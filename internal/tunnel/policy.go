package tunnel

import "regexp"

// PolicyMode selects how Policy.Permits interprets a regex match.
type PolicyMode int

const (
	// AllowList permits a target only when the matcher matches it.
	AllowList PolicyMode = iota
	// DenyList permits a target only when the matcher does not match it.
	DenyList
)

// Policy is a pure predicate over raw target strings: a single compiled
// regular expression plus a mode. A nil *Policy permits everything.
type Policy struct {
	Matcher *regexp.Regexp
	Mode    PolicyMode
}

// Permits reports whether target may be dialed. It is deterministic: the
// result depends only on target and the policy's own fields.
func (p *Policy) Permits(target string) bool {
	if p == nil || p.Matcher == nil {
		return true
	}
	matched := p.Matcher.MatchString(target)
	switch p.Mode {
	case DenyList:
		return !matched
	default:
		return matched
	}
}
