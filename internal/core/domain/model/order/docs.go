// Package order contains the Order aggregate, the root entity of the waste pickup
// coordination domain, and its Status state machine.
//
// An order passes through four organizations over its lifetime: the customer who
// places it, the property company that confirms it, the transport company that
// hauls the waste, and the recycling company that receives it. Each organization
// acts on the order at a specific lifecycle stage, expressed by the Status
// enumeration and its fixed transition graph:
//
//	pending ──> property_confirmed ──> transport_assigned ──> transporting
//	   │               │                                          │
//	   └──> cancelled <┘                                          v
//	                            completed <── recycling_confirmed <── delivered
//
// The aggregate enforces state preconditions and data invariants (transport
// references set all-or-none, milestone timestamps stamped on transition). Role
// and scope guards live in the domain services layer; the aggregate does not know
// who is allowed to move it, only which moves exist.
package order
