// Package services provides domain services that implement the decision logic
// of the parcel tracking system: operations that don't naturally belong to a
// single aggregate root.
//
// The package includes:
//   - AccessPolicy: A pure decision table for who may view or modify a parcel
//   - TransitionEngine: Validation of status changes, position resolution via
//     geocoding, and the history-write decision
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design principles.
package services
