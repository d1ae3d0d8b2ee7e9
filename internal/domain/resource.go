package domain

import (
	"time"

	"github.com/google/uuid"
)

// MediaAttachments is a typed, possibly-empty list of media references
// attached to a resource. Kind tags how the URLs should be interpreted.
type MediaAttachments struct {
	Kind string   `json:"kind"`
	URLs []string `json:"urls"`
}

// MediaKindImage is currently the only attachment kind in use
const MediaKindImage = "image"

// Resource represents a bookable facility (a room, a court) owned by one
// admin. PricingRules are kept in insertion order; order has no effect on
// price resolution beyond the documented first-match tie-break.
type Resource struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Name           string
	Description    string
	Location       string
	Media          MediaAttachments
	BasePriceCents int64 // fallback price per slot where no rule matches
	PricingRules   []PricingRule
	CreatedAt      time.Time
}

// PriceForSlot resolves the price of one slot on the given date using the
// resource's rules, falling back to the base price.
func (r *Resource) PriceForSlot(date time.Time, slotID int) (int64, error) {
	return ResolvePrice(r.PricingRules, r.BasePriceCents, date, slotID)
}

// IsOwnedBy reports whether the given user owns the resource
func (r *Resource) IsOwnedBy(userID uuid.UUID) bool {
	return r.OwnerID == userID
}
