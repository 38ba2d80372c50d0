// Package models defines the core domain entities for splitledger.
//
// # Entities
//
//   - User: a registered account. Owns the splits assigned to it and the
//     events it created.
//   - Event: a shared expense with a total cost and a creator. Owns its
//     splits; a split cannot outlive its event.
//   - Debitor: one participant's share of one event, with independent
//     payment tracking.
//   - Transaction: a recorded payment between two users, optionally linked
//     to an event.
//
// # Design Principles
//
//  1. Money is always decimal.Decimal at scale 2. No float64 touches an
//     amount anywhere in the codebase.
//  2. Relationships are held as ID strings plus owned child slices; there
//     are no pointer cycles. User and Event exclusively own their child
//     collections, children carry a back-reference ID used only for lookup.
//  3. Both sides of a relationship are mutated through the link helpers
//     (AttachSplit, AddEvent, ...) so a child is never in a collection
//     without its back-reference set.
package models
