// Package ids issues opaque identifiers for folders and documents.
package ids

import "github.com/google/uuid"

// New returns a fresh id. Ids are unique for the process lifetime and carry
// no ordering. uuid.NewString panics if the entropy source is exhausted,
// which is treated as a fatal process condition rather than an error.
func New() string {
	return uuid.NewString()
}
