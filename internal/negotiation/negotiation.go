// Package negotiation selects the (media type, profile) pair to render for a
// request, from the client's Accept / Accept-Profile headers and the server's
// ordered capability table. It is pure: no I/O, deterministic for a given
// input, and safe for concurrent use.
package negotiation

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNotAcceptable means no capability scored above zero for the request.
var ErrNotAcceptable = errors.New("no acceptable representation")

// Capability is one supported (media type, profile) pair. Profile is the
// canonical profile URI.
type Capability struct {
	MediaType string
	Profile   string
}

// Result is the selected pair.
type Result struct {
	MediaType string
	Profile   string
}

// Options holds the scoring policy. The relative weights decide, among other
// things, whether an exact media-type match at an unrequested profile beats a
// requested profile behind a wildcard media type; deployments differ here, so
// it is policy rather than algorithm.
type Options struct {
	// Media-type match weights, highest to lowest specificity.
	ExactMedia      float64
	SubtypeWildcard float64 // type/*
	FullWildcard    float64 // */*

	// Profile factors. An explicit mismatch always scores zero.
	ProfileMatch float64 // capability profile explicitly requested
	ProfileAny   float64 // no profile requested at all

	// Aliases maps shorthand profile tokens to canonical profile URIs.
	Aliases map[string]string
}

// DefaultOptions returns the standard policy: media specificity dominates,
// so an exact media type at the default profile outranks an explicit profile
// match sitting behind */*.
func DefaultOptions() Options {
	return Options{
		ExactMedia:      1.0,
		SubtypeWildcard: 0.7,
		FullWildcard:    0.3,
		ProfileMatch:    1.0,
		ProfileAny:      0.8,
	}
}

// Table is the server's fixed capability table. Order is the server's
// preference order and breaks score ties deterministically.
type Table struct {
	caps []Capability
	def  Capability
	opts Options
}

// NewTable builds a capability table with def as the designated default pair.
func NewTable(caps []Capability, def Capability, opts Options) *Table {
	return &Table{caps: caps, def: def, opts: opts}
}

// Capabilities returns a copy of the table entries in preference order.
func (t *Table) Capabilities() []Capability {
	out := make([]Capability, len(t.caps))
	copy(out, t.caps)
	return out
}

// Default returns the designated default pair.
func (t *Table) Default() Capability { return t.def }

// Negotiate picks the best capability for the given raw header values.
// Empty headers mean no preference; when both are empty the default pair is
// returned. ErrNotAcceptable is returned when every capability scores zero.
func (t *Table) Negotiate(accept, acceptProfile string) (Result, error) {
	accepts := parseClauses(accept)
	profiles := parseProfileClauses(acceptProfile, t.opts.Aliases)

	if len(accepts) == 0 && len(profiles) == 0 {
		return Result{MediaType: t.def.MediaType, Profile: t.def.Profile}, nil
	}

	best := -1
	bestScore := 0.0
	for i, cap := range t.caps {
		score := t.mediaScore(cap.MediaType, accepts) * t.profileScore(cap.Profile, profiles)
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best < 0 {
		return Result{}, ErrNotAcceptable
	}
	c := t.caps[best]
	return Result{MediaType: c.MediaType, Profile: c.Profile}, nil
}

// clause is one parsed header element with its quality weight.
type clause struct {
	token string
	q     float64
}

// parseClauses splits a preference header into {token, q} pairs. Malformed
// elements are skipped rather than failing the whole header; a malformed or
// missing q defaults to 1.0.
func parseClauses(header string) []clause {
	var out []clause
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ";")
		token := strings.TrimSpace(fields[0])
		if token == "" {
			continue
		}
		q := 1.0
		for _, p := range fields[1:] {
			k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
			if !ok || !strings.EqualFold(strings.TrimSpace(k), "q") {
				continue
			}
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && f >= 0 && f <= 1 {
				q = f
			}
		}
		out = append(out, clause{token: token, q: q})
	}
	return out
}

// parseProfileClauses parses Accept-Profile elements. Profile URIs may come
// wrapped in angle brackets or quotes; shorthand tokens are mapped through
// the alias table.
func parseProfileClauses(header string, aliases map[string]string) []clause {
	clauses := parseClauses(header)
	out := clauses[:0]
	for _, c := range clauses {
		tok := strings.Trim(c.token, `<>"`)
		if tok == "" {
			continue
		}
		if canonical, ok := aliases[tok]; ok {
			tok = canonical
		}
		out = append(out, clause{token: tok, q: c.q})
	}
	return out
}

// mediaScore returns the best weighted match between the capability's media
// type and the accepted clauses. No Accept header means no constraint.
func (t *Table) mediaScore(mediaType string, accepts []clause) float64 {
	if len(accepts) == 0 {
		return t.opts.ExactMedia
	}
	capType, capSub, _ := strings.Cut(strings.ToLower(mediaType), "/")
	best := 0.0
	for _, c := range accepts {
		typ, sub, ok := strings.Cut(strings.ToLower(c.token), "/")
		if !ok {
			continue
		}
		var w float64
		switch {
		case typ == capType && sub == capSub:
			w = t.opts.ExactMedia
		case typ == capType && sub == "*":
			w = t.opts.SubtypeWildcard
		case typ == "*" && sub == "*":
			w = t.opts.FullWildcard
		default:
			continue
		}
		if s := w * c.q; s > best {
			best = s
		}
	}
	return best
}

// profileScore returns the profile factor: explicit match beats "any",
// explicit mismatch scores zero.
func (t *Table) profileScore(profile string, profiles []clause) float64 {
	if len(profiles) == 0 {
		return t.opts.ProfileAny
	}
	for _, c := range profiles {
		if strings.EqualFold(c.token, profile) {
			return t.opts.ProfileMatch * c.q
		}
	}
	return 0
}
