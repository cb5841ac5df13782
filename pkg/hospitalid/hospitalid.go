// Package hospitalid generates the human-facing patient identifier.
package hospitalid

import (
	"fmt"
	"math/rand"
)

// Prefix is the fixed alphabetic lead-in of every hospital ID.
const Prefix = "HOSP"

// Generate returns a new identifier: Prefix followed by 8 decimal digits
// drawn uniformly from 10000000-99999999. Uniqueness is best-effort only;
// callers that need a hard guarantee must enforce it at the store.
func Generate() string {
	return fmt.Sprintf("%s%d", Prefix, 10000000+rand.Intn(90000000))
}
