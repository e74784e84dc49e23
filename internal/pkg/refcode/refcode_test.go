//go:build unit

package refcode_test

import (
	"strings"
	"testing"

	"riviera-booking/internal/pkg/refcode"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	code := refcode.NewReservation()
	assert.True(t, strings.HasPrefix(code, "RES-"))
	assert.Len(t, code, len("RES-")+8)

	pay := refcode.NewPayment()
	assert.True(t, strings.HasPrefix(pay, "PAY-"))

	// Codes must not collide in practice; a small sample is enough to catch
	// a broken generator.
	seen := make(map[string]struct{})
	for range 1000 {
		c := refcode.NewReservation()
		_, dup := seen[c]
		assert.False(t, dup, "duplicate code %s", c)
		seen[c] = struct{}{}
	}
}
