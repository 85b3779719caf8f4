// Package location contains the Community and Address entities.
//
// A community is a residential compound managed by a property company and is
// the unit of property-side order scoping. An address is a concrete pickup
// point inside a community; orders snapshot both ids at creation.
package location
