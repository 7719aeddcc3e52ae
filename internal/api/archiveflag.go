package api

import "fmt"

// ArchiveFlag decodes the archive field of PATCH bodies. Booleans are
// canonical; the legacy numeric encoding (1/0) from older clients is still
// accepted. The store only ever sees the coerced bool.
type ArchiveFlag bool

func (a *ArchiveFlag) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case "true", "1":
		*a = true
	case "false", "0":
		*a = false
	default:
		return fmt.Errorf("archived must be true, false, 1 or 0, got %s", string(b))
	}
	return nil
}

// archiveRequest is the PATCH body for archive-status updates. "isArchived"
// is the legacy field name and is honored when "archived" is absent.
type archiveRequest struct {
	Archived   *ArchiveFlag `json:"archived"`
	IsArchived *ArchiveFlag `json:"isArchived"`
}

// flag returns the coerced value, preferring the canonical field.
func (r *archiveRequest) flag() (bool, error) {
	switch {
	case r.Archived != nil:
		return bool(*r.Archived), nil
	case r.IsArchived != nil:
		return bool(*r.IsArchived), nil
	default:
		return false, fmt.Errorf("archived is required")
	}
}
