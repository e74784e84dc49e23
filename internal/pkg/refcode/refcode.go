// Package refcode generates the human-readable reference codes printed on
// reservation and payment confirmations.
package refcode

import (
	"crypto/rand"
)

const (
	alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // no 0/O/1/I, read over the phone
	codeLen  = 8
)

// New returns a code like "RES-7KQ2M9XC" for the given prefix.
func New(prefix string) string {
	buf := make([]byte, codeLen)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; zero bytes still
		// yield a syntactically valid (if predictable) code.
		for i := range buf {
			buf[i] = 0
		}
	}
	out := make([]byte, 0, len(prefix)+1+codeLen)
	out = append(out, prefix...)
	out = append(out, '-')
	for _, b := range buf {
		out = append(out, alphabet[int(b)%len(alphabet)])
	}
	return string(out)
}

func NewReservation() string { return New("RES") }

func NewPayment() string { return New("PAY") }
