// Package parcel provides domain entities and business logic for package
// tracking. It implements the Parcel aggregate root with lifecycle management
// and state transitions, plus the append-only history audit trail.
//
// The package includes:
//   - Parcel: The aggregate root that manages parcel identity, position, and lifecycle
//   - Status: A state machine that enforces valid parcel status transitions
//   - StatusDefinition: Immutable reference data mapping status ids to names
//   - HistoryEntry: An immutable audit record of status and position over time
//
// Key business rules:
//   - Parcels must have a valid identifier, tracking number, sender, and recipient
//   - Status follows a defined workflow: Sent -> In Delivery -> Delivered
//   - In Delivery may be re-affirmed to record courier location pings
//   - Delivered is terminal; only re-affirmation is allowed afterwards
//   - The delivery timestamp is set exactly once, when the parcel is delivered
//   - Latitude and longitude always travel together as one optional GeoPoint
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package parcel
