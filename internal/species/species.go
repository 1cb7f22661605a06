// ABOUTME: Built-in list of bird species names for autocomplete and lookups.
// ABOUTME: The list is embedded from birds.txt, one name per line.
package species

import (
	_ "embed"
	"sort"
	"strings"
)

//go:embed birds.txt
var rawList string

var names = parse(rawList)

// parse splits the embedded list into sorted, non-blank names.
func parse(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	sort.Strings(out)
	return out
}

// All returns every known species name, sorted.
func All() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Suggest returns up to limit names starting with prefix, ignoring case.
// A limit of zero or less returns every match.
func Suggest(prefix string, limit int) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil
	}

	var out []string
	for _, name := range names {
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			out = append(out, name)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out
}

// Canonical returns the listed spelling of name, or false if it is not a known species.
func Canonical(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return n, true
		}
	}
	return "", false
}

// Known reports whether name is a listed species, ignoring case.
func Known(name string) bool {
	_, ok := Canonical(name)
	return ok
}
