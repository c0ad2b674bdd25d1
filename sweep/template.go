package sweep

// template.go contains placeholder substitution for command arguments and
// archive destination patterns.

import (
	"fmt"
	"regexp"
)

var placeholderRe = regexp.MustCompile(`\{([^{}]*)\}`)

// Expand substitutes every {name} placeholder in pattern with the
// combination's value for that dimension. A placeholder that does not name
// a declared dimension is an error.
func Expand(pattern string, c Combination) (string, error) {
	var expandErr error
	out := placeholderRe.ReplaceAllStringFunc(pattern, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := c.Value(name)
		if !ok {
			if expandErr == nil {
				expandErr = fmt.Errorf("unknown placeholder %q in pattern %q", name, pattern)
			}
			return m
		}
		return v
	})
	if expandErr != nil {
		return "", expandErr
	}
	return out, nil
}

// Placeholders returns the placeholder names referenced by pattern, in
// order of first appearance.
func Placeholders(pattern string) []string {
	var names []string
	seen := map[string]bool{}
	for _, m := range placeholderRe.FindAllStringSubmatch(pattern, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
