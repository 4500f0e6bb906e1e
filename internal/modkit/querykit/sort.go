package querykit

import (
	"strings"

	"rolegate/internal/modkit/dtokit"
)

// Sort is a resolved ordering over an allow-listed column
// Tie is appended so equal keys page deterministically
type Sort struct {
	Col  string
	Desc bool
	Tie  string
}

// Sorts maps public sort keys to columns
// Default is itself a key, "-" allowed; keys not in the map fall back to it
type Sorts struct {
	Cols    map[string]string
	Default string
	Tie     string
}

// Resolve parses key, a leading "-" sorts descending
func (s Sorts) Resolve(key dtokit.Opt[string]) Sort {
	if k, ok := key.Get(); ok {
		if srt, ok := s.parse(k); ok {
			return srt
		}
	}
	srt, ok := s.parse(s.Default)
	if !ok {
		panic("querykit: default sort " + s.Default + " is not an allowed key")
	}
	return srt
}

func (s Sorts) parse(k string) (Sort, bool) {
	k = strings.TrimSpace(k)
	desc := strings.HasPrefix(k, "-")
	col, ok := s.Cols[strings.TrimPrefix(k, "-")]
	if !ok {
		return Sort{}, false
	}
	return Sort{Col: col, Desc: desc, Tie: s.Tie}, true
}

// SQL renders the ORDER BY body
// postgres sorts nulls last ascending, so the descending form pins them last too
func (s Sort) SQL() string {
	var b strings.Builder
	b.WriteString(s.Col)
	if s.Desc {
		b.WriteString(" DESC NULLS LAST")
	}
	if s.Tie != "" && s.Tie != s.Col {
		b.WriteString(", ")
		b.WriteString(s.Tie)
		if s.Desc {
			b.WriteString(" DESC")
		}
	}
	return b.String()
}

// Less orders two rows the same way SQL renders, nulls last
func (s Sort) Less(a, b Row) bool {
	if n := order(a[s.Col], b[s.Col], s.Desc); n != 0 {
		return n < 0
	}
	if s.Tie == "" || s.Tie == s.Col {
		return false
	}
	return order(a[s.Tie], b[s.Tie], s.Desc) < 0
}

// order is compare with nulls after every value in either direction
func order(a, b any, desc bool) int {
	an, bn := normalize(a) == nil, normalize(b) == nil
	switch {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	}
	n, _ := compare(a, b)
	if desc {
		return -n
	}
	return n
}
