package parser

import (
	"sort"
	"strings"
)

// Prefix marks the start of an argument value, e.g. "n/".
type Prefix string

// Argument prefixes for person and event fields.
const (
	PrefixName      Prefix = "n/"
	PrefixPhone     Prefix = "p/"
	PrefixEmail     Prefix = "e/"
	PrefixCategory  Prefix = "c/"
	PrefixGroup     Prefix = "g/"
	PrefixEventDate Prefix = "d/"
)

// arguments holds the preamble and every value recorded per prefix, in input order.
type arguments struct {
	preamble string
	values   map[Prefix][]string
}

type position struct {
	prefix Prefix
	at     int
}

// tokenize splits args on the given prefixes. A prefix only counts when it is
// at the start of args or preceded by whitespace, so "a/b" inside a value stays.
func tokenize(args string, prefixes ...Prefix) arguments {
	padded := " " + args
	var found []position
	for _, p := range prefixes {
		from := 0
		for {
			i := strings.Index(padded[from:], " "+string(p))
			if i < 0 {
				break
			}
			at := from + i + 1
			found = append(found, position{prefix: p, at: at})
			from = at
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].at < found[j].at })

	out := arguments{values: make(map[Prefix][]string)}
	end := len(padded)
	if len(found) > 0 {
		end = found[0].at
	}
	out.preamble = strings.TrimSpace(padded[:end])
	for i, pos := range found {
		stop := len(padded)
		if i+1 < len(found) {
			stop = found[i+1].at
		}
		value := padded[pos.at+len(pos.prefix) : stop]
		out.values[pos.prefix] = append(out.values[pos.prefix], strings.TrimSpace(value))
	}
	return out
}

// value returns the last value given for p.
func (a arguments) value(p Prefix) (string, bool) {
	vs := a.values[p]
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

func (a arguments) has(prefixes ...Prefix) bool {
	for _, p := range prefixes {
		if _, ok := a.value(p); !ok {
			return false
		}
	}
	return true
}

// duplicates lists prefixes given more than once, in the order checked.
func (a arguments) duplicates(prefixes ...Prefix) []Prefix {
	var out []Prefix
	for _, p := range prefixes {
		if len(a.values[p]) > 1 {
			out = append(out, p)
		}
	}
	return out
}
