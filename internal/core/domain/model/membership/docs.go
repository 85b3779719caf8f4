// Package membership contains the Membership aggregate linking a user to an
// organization of one of the three coordination sides: property, transport,
// or recycling.
//
// A membership is the unit of authorization scoping: property memberships
// carry the managed community, transport memberships carry the in-company
// role (dispatcher or driver) and the driver's availability, recycling
// memberships carry the station role. Orders that need a driver reference the
// membership row, never the user directly, so a driver moving between
// companies never re-binds historical orders.
package membership
