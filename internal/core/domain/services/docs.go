// Package services contains the domain services that work across aggregates:
// the order state machine with its per-transition guards and effects, the
// scope resolver that computes which communities, companies, and driver
// associations an actor may act upon, and the resource allocator that flips
// driver and vehicle availability together with order transitions.
package services
