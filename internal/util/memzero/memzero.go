// Package memzero wipes sensitive byte slices.
package memzero

import "runtime"

// Zero overwrites b with zeros. This is best-effort and aims to reduce the
// chance of the compiler eliding the write.
//
//go:noinline
func Zero(b []byte) {
	clear(b)
	runtime.KeepAlive(&b)
}
