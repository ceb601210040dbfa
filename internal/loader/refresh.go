package loader

import "github.com/mvp-joe/project-lexicon/internal/descriptor"

type refreshMode int

const (
	modeFastest refreshMode = iota
	modeAll
	modeSelective
)

// RefreshPolicy decides, per resolve call, whether the cache tiers may
// serve an identifier or whether it must be recomputed from the source.
// The zero value is Fastest. Policies are immutable and safe to share.
type RefreshPolicy struct {
	mode refreshMode
	only map[string]struct{}
}

// Fastest serves every identifier from the first tier that has it.
func Fastest() RefreshPolicy {
	return RefreshPolicy{mode: modeFastest}
}

// RefreshAll bypasses both cache tiers for every identifier, recomputes,
// and rewrites the cached state.
func RefreshAll() RefreshPolicy {
	return RefreshPolicy{mode: modeAll}
}

// RefreshOnly bypasses the cache tiers for the listed identifiers and
// behaves like Fastest for everything else. Identifiers are compared in
// canonical form, so any spelling of a listed symbol is refreshed.
func RefreshOnly(identifiers ...string) RefreshPolicy {
	only := make(map[string]struct{}, len(identifiers))
	for _, identifier := range identifiers {
		only[descriptor.CanonicalName(identifier)] = struct{}{}
	}
	return RefreshPolicy{mode: modeSelective, only: only}
}

// needsRefresh reports whether the canonical identifier must bypass the
// cache tiers under this policy.
func (p RefreshPolicy) needsRefresh(canonical string) bool {
	switch p.mode {
	case modeAll:
		return true
	case modeSelective:
		_, listed := p.only[canonical]
		return listed
	default:
		return false
	}
}

// String names the policy for logs and command output.
func (p RefreshPolicy) String() string {
	switch p.mode {
	case modeAll:
		return "refresh-all"
	case modeSelective:
		return "refresh-selective"
	default:
		return "fastest"
	}
}
