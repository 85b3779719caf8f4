// Package vehicle contains the Vehicle aggregate owned by a transport company.
//
// A vehicle's status gates allocation: only available vehicles can be bound to
// an order, assignment flips them to in_use, and delivery or cancellation
// releases them. Maintenance and inactive are manual states owned by the
// company's dispatchers.
package vehicle
