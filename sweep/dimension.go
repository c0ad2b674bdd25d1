package sweep

// dimension.go contains the sweep axes and the Cartesian product
// enumeration over them.

import (
	"fmt"
	"strings"
)

// Dimension is one named axis of the sweep. Values are opaque strings
// passed through to the external program unmodified.
type Dimension struct {
	Name   string
	Values []string
}

// Combination assigns one value per dimension. Values are ordered to match
// the declared dimension order.
type Combination struct {
	dims   []Dimension
	values []string
}

// Value returns the value assigned to the named dimension, or "" if the
// dimension does not exist.
func (c Combination) Value(name string) (string, bool) {
	for i, d := range c.dims {
		if d.Name == name {
			return c.values[i], true
		}
	}
	return "", false
}

// Values returns the assigned values in dimension order.
func (c Combination) Values() []string {
	out := make([]string, len(c.values))
	copy(out, c.values)
	return out
}

// Label renders the combination for logs and summaries,
// e.g. "dataset=flickr epsilon=3.0".
func (c Combination) Label() string {
	parts := make([]string, len(c.dims))
	for i, d := range c.dims {
		parts[i] = fmt.Sprintf("%s=%s", d.Name, c.values[i])
	}
	return strings.Join(parts, " ")
}

// Count returns the number of combinations in the product of dims.
// An empty value list on any dimension makes the product empty.
func Count(dims []Dimension) int {
	if len(dims) == 0 {
		return 0
	}
	n := 1
	for _, d := range dims {
		n *= len(d.Values)
	}
	return n
}

// Product enumerates the full Cartesian product of dims in nested-loop
// order: the first dimension varies slowest, and values are visited in the
// order given. The order is stable so repeated sweeps archive artifacts at
// predictable paths.
func Product(dims []Dimension) []Combination {
	total := Count(dims)
	if total == 0 {
		return nil
	}

	combos := make([]Combination, 0, total)
	indices := make([]int, len(dims))
	for {
		values := make([]string, len(dims))
		for i, d := range dims {
			values[i] = d.Values[indices[i]]
		}
		combos = append(combos, Combination{dims: dims, values: values})

		// Advance the innermost index, carrying leftward.
		i := len(dims) - 1
		for ; i >= 0; i-- {
			indices[i]++
			if indices[i] < len(dims[i].Values) {
				break
			}
			indices[i] = 0
		}
		if i < 0 {
			return combos
		}
	}
}
