package services

import (
	"fmt"
	"time"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/membership"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/order"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/vehicle"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"
)

// ResourceAllocator binds drivers and vehicles to orders and releases them
// again. It is reached only through the order state machine: assignment runs
// inside the transition to transport_assigned, release inside the transitions
// to delivered or cancelled.
//
// Business rules:
//   - driver and vehicle must belong to the company being assigned
//   - the driver membership must carry the driver role and be available
//   - the vehicle must be available
//   - any violation is a ResourceConflictError naming the constraint, and
//     leaves order, driver, and vehicle untouched
type ResourceAllocator struct{}

// NewResourceAllocator creates a new ResourceAllocator instance.
func NewResourceAllocator() ResourceAllocator {
	return ResourceAllocator{}
}

// Assign validates the driver and vehicle against the company, flips both to
// their busy states, and records the triple on the order.
func (ResourceAllocator) Assign(
	o *order.Order,
	managerID kernel.UUID,
	driver *membership.Membership,
	veh *vehicle.Vehicle,
	companyID kernel.UUID,
	now time.Time,
) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := driver.Validate(); err != nil {
		return err
	}
	if err := veh.Validate(); err != nil {
		return err
	}

	if !driver.IsDriver() {
		return errs.NewResourceConflictError("driver",
			fmt.Sprintf("membership %s does not carry the driver role", driver.ID()))
	}
	if !driver.OrgID().IsEqual(companyID) {
		return errs.NewResourceConflictError("driver",
			fmt.Sprintf("driver %s belongs to company %s, not %s", driver.ID(), driver.OrgID(), companyID))
	}
	if driver.DriverStatus() != membership.DriverStatusAvailable {
		return errs.NewResourceConflictError("driver",
			fmt.Sprintf("driver %s is %s, not available", driver.ID(), driver.DriverStatus()))
	}

	if !veh.CompanyID().IsEqual(companyID) {
		return errs.NewResourceConflictError("vehicle",
			fmt.Sprintf("vehicle %s belongs to company %s, not %s", veh.Plate(), veh.CompanyID(), companyID))
	}
	if veh.Status() != vehicle.StatusAvailable {
		return errs.NewResourceConflictError("vehicle",
			fmt.Sprintf("vehicle %s is %s, not available", veh.Plate(), veh.Status()))
	}

	// the order transition is checked first so a precondition failure does not
	// leave the driver or vehicle flipped
	if err := o.AssignTransport(managerID, driver.ID(), veh.ID(), companyID, now); err != nil {
		return err
	}
	if err := driver.Allocate(now); err != nil {
		return err
	}
	return veh.Allocate(now)
}

// Release returns the driver and vehicle of an order to their available states.
// Either may be nil when the order never had an allocation; releasing an
// already released resource is a no-op.
func (ResourceAllocator) Release(driver *membership.Membership, veh *vehicle.Vehicle, now time.Time) error {
	if driver != nil {
		if err := driver.Release(now); err != nil {
			return err
		}
	}
	if veh != nil {
		return veh.Release(now)
	}
	return nil
}
