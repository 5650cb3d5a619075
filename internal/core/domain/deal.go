package domain

import "time"

// DealStatus is the state of the mutual confirmation protocol.
type DealStatus string

// Deal statuses.
const (
	DealProposed DealStatus = "proposed"
	DealPending  DealStatus = "pending_mutual_confirmation"
	DealFinal    DealStatus = "finalized"
	DealExpired  DealStatus = "expired"
)

// DealTerms is the negotiated set of terms. Both parties must confirm an
// exactly equal snapshot before the deal finalizes.
type DealTerms struct {
	// Deliverables are the agreed deliverables, in order.
	Deliverables []string

	// Timeline is the agreed timeline, free text.
	Timeline string

	// PaymentAmount is the agreed payment.
	PaymentAmount float64

	// UsageRights describes content usage and licensing.
	UsageRights string
}

// Equal reports whether two term sets agree exactly, including
// deliverable order.
func (t DealTerms) Equal(other DealTerms) bool {
	if t.Timeline != other.Timeline ||
		t.PaymentAmount != other.PaymentAmount ||
		t.UsageRights != other.UsageRights ||
		len(t.Deliverables) != len(other.Deliverables) {
		return false
	}
	for i := range t.Deliverables {
		if t.Deliverables[i] != other.Deliverables[i] {
			return false
		}
	}
	return true
}

// Deal is a negotiated agreement requiring confirmation from both the
// brand and the creator before it is considered binding.
type Deal struct {
	// ID is the unique identifier for the deal.
	ID string

	// RequestID is the collaboration request the deal settles.
	RequestID string

	// BrandID and CreatorID are the two confirming parties.
	BrandID   string
	CreatorID string

	// Terms is the snapshot recorded by the first confirmation. A second
	// confirmation must submit exactly equal terms.
	Terms DealTerms

	// Confirmations holds the user IDs that have confirmed (size 0–2).
	Confirmations []string

	// Status is the confirmation protocol state.
	Status DealStatus

	// CreatedAt is when the deal was proposed.
	CreatedAt time.Time

	// FinalizedAt is when mutual confirmation completed. Zero until then.
	FinalizedAt time.Time
}

// Party reports whether userID is the brand or the creator of the deal.
func (d *Deal) Party(userID string) bool {
	return userID == d.BrandID || userID == d.CreatorID
}

// ConfirmedBy reports whether userID has already confirmed.
func (d *Deal) ConfirmedBy(userID string) bool {
	for _, id := range d.Confirmations {
		if id == userID {
			return true
		}
	}
	return false
}

// DealFinalized is the event emitted exactly once when both parties have
// confirmed matching terms. Consumed externally by the contract generator.
type DealFinalized struct {
	DealID      string
	RequestID   string
	BrandID     string
	CreatorID   string
	Terms       DealTerms
	FinalizedAt time.Time
}
