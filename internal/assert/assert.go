// Package assert panics on broken startup invariants.
package assert

import (
	"fmt"
)

// That panics with the formatted message when cond is false
func That(cond bool, format string, args ...any) {
	if !cond {
		panic("assert.That: " + fmt.Sprintf(format, args...))
	}
}

// Unique panics if any key appears twice
func Unique(what string, keys []string) {
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		That(!seen[key], "duplicate %s %q", what, key)
		seen[key] = true
	}
}
