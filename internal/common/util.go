// Package common holds small helpers shared across client packages.
package common

// WipeByteArray overwrites buf with zeros. Callers use it to shorten the
// lifetime of sensitive material such as passwords read from the terminal.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
