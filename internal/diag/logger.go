// Package diag is the shared diagnostic logger. While the terminal view
// owns the screen, main redirects this to a file or mutes it so stray
// prints never corrupt the display.
package diag

import "log"

// Logf carries every recoverable-error diagnostic in the program. It
// defaults to log.Printf; SetLogger swaps it out.
var Logf = log.Printf

// SetLogger replaces the package logger. A nil f mutes diagnostics.
func SetLogger(f func(format string, v ...any)) {
	if f == nil {
		f = func(string, ...any) {}
	}
	Logf = f
}
