package engine

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"
)

// Reference prefixes.  A reference embeds the creation date so support
// staff can eyeball when it was issued, followed by a random hex tail
// that makes collisions practically impossible.  The reference, not
// the numeric id, is the public identity of a booking or block and
// doubles as the idempotency key.
const (
	bookingRefPrefix = "BKG"
	blockRefPrefix   = "BLK"
)

// NewBookingReference returns a fresh reference of the form
// BKG<YYYYMMDD><6 hex chars>.
func NewBookingReference(now time.Time) (string, error) {
	return newReference(bookingRefPrefix, now)
}

// NewBlockReference returns a fresh reference of the form
// BLK<YYYYMMDD><6 hex chars>.
func NewBlockReference(now time.Time) (string, error) {
	return newReference(blockRefPrefix, now)
}

func newReference(prefix string, now time.Time) (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return prefix + now.UTC().Format("20060102") + strings.ToUpper(hex.EncodeToString(buf)), nil
}
