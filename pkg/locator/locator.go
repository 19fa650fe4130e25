// SPDX-License-Identifier: Apache-2.0
// Package locator resolves bare jar filenames to absolute paths.
package locator

// Locator is a strategy for locating jar files.
//
// A filename that cannot be found anywhere is reported with found == false
// and a nil error. A non-nil error means the search itself failed.
type Locator interface {
	Locate(filename string) (path string, found bool, err error)
}

// Func adapts an ordinary function to the Locator interface.
type Func func(filename string) (string, bool, error)

// Locate calls f(filename).
func (f Func) Locate(filename string) (string, bool, error) {
	return f(filename)
}
