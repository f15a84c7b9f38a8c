package booking

import (
	"encoding/base32"

	"github.com/google/uuid"
)

var pnrEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// pnrAttempts bounds reference regeneration when an insert hits the unique
// constraint.
const pnrAttempts = 3

// NewPNR returns a reservation reference such as "PNR3K7Q2ZD4M". The suffix
// is drawn from a v4 uuid, so references minted in the same instant do not
// collide the way timestamp-based schemes do; the storage layer's unique
// constraint backstops the residual probability.
func NewPNR() string {
	id := uuid.New()
	return "PNR" + pnrEncoding.EncodeToString(id[:])[:9]
}
