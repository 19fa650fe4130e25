// SPDX-License-Identifier: Apache-2.0
package firestarter

import (
	"maps"
	"slices"
	"strings"
)

// Parameters maps placeholder names to their replacement values. The zero
// value has no parameters.
type Parameters struct {
	values map[string]string
}

// NewParameters copies values into a Parameters.
func NewParameters(values map[string]string) Parameters {
	return Parameters{values: maps.Clone(values)}
}

// Len returns the number of parameters.
func (p Parameters) Len() int { return len(p.values) }

// Substitute replaces every ${KEY} token in text with the value of KEY.
// Unknown placeholders are left as they are, and replacement values are
// never themselves substituted.
func Substitute(params Parameters, text string) string {
	if len(params.values) == 0 || !strings.Contains(text, "${") {
		return text
	}

	pairs := make([]string, 0, 2*len(params.values))
	for _, key := range slices.Sorted(maps.Keys(params.values)) {
		pairs = append(pairs, "${"+key+"}", params.values[key])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// substituteAll applies Substitute to each element of texts.
func substituteAll(params Parameters, texts []string) []string {
	out := make([]string, len(texts))
	for i, text := range texts {
		out[i] = Substitute(params, text)
	}
	return out
}
