// Package memzero wipes secret buffers once they are no longer needed.
package memzero

import "crypto/subtle"

// Zero overwrites every buffer in bufs with zeros.
func Zero(bufs ...[]byte) {
	for _, b := range bufs {
		if len(b) == 0 {
			continue
		}
		subtle.XORBytes(b, b, b)
	}
}
