package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event represents a shared expense occurrence.
//
// The split collection is exclusively owned: deleting the event deletes its
// splits, and a split appears in exactly one event's collection. The creator
// is referenced by ID only; the event does not own the creator.
type Event struct {
	// ID is the unique identifier for the event (UUID format).
	ID string

	// Title is the human-readable name for the expense.
	Title string

	// Total is the authoritative cost of the expense, scale 2.
	Total decimal.Decimal

	// CreatedAt is the Unix timestamp when the event was created.
	CreatedAt int64

	// Cancelled is one-way: once true the event is excluded from the
	// creator's owed-to-you total. Its splits stay queryable for audit.
	Cancelled bool

	// CreatorID is the user who recorded the event.
	CreatorID string

	// Splits are the per-participant shares of this event.
	Splits []*Debitor
}

// NewEvent creates an event with a fresh ID and creation timestamp.
func NewEvent(title string, total decimal.Decimal, creatorID string) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Title:     title,
		Total:     total,
		CreatedAt: time.Now().Unix(),
		CreatorID: creatorID,
	}
}

// AttachSplit adds d to the event's split collection and sets its event
// reference in the same operation.
func (e *Event) AttachSplit(d *Debitor) {
	e.Splits = append(e.Splits, d)
	d.EventID = e.ID
}

// DetachSplit removes d from the event's split collection and clears its
// event reference.
func (e *Event) DetachSplit(d *Debitor) {
	for i, cur := range e.Splits {
		if cur == d {
			e.Splits = append(e.Splits[:i], e.Splits[i+1:]...)
			break
		}
	}
	d.EventID = ""
}

// ReplaceSplits swaps the entire split collection for the given set,
// attaching every split in the process. Used by the bulk update path so a
// stale collection is never merged with a new one.
func (e *Event) ReplaceSplits(splits []*Debitor) {
	e.Splits = nil
	for _, d := range splits {
		e.AttachSplit(d)
	}
}
