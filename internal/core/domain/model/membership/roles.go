package membership

import (
	"fmt"

	"github.com/esp3j0/waste-transort/internal/pkg/errs"
)

// TransportRole is the in-company role of a transport membership. Dispatchers
// assign haulage; drivers execute it.
type TransportRole int

const (
	TransportRoleUnknown TransportRole = iota
	TransportRoleDispatcher
	TransportRoleDriver
)

func transportRoleStrings() map[TransportRole]string {
	return map[TransportRole]string{
		TransportRoleDispatcher: "dispatcher",
		TransportRoleDriver:     "driver",
	}
}

// TransportRoleFromString parses the wire form of a transport role.
func TransportRoleFromString(s string) (TransportRole, error) {
	for r, str := range transportRoleStrings() {
		if s == str {
			return r, nil
		}
	}
	return TransportRoleUnknown, errs.NewValueIsInvalidErrorWithCause("transportRole",
		fmt.Errorf("%q is not a valid transport role", s))
}

// Validate checks the role is one of the listed values.
func (r TransportRole) Validate() error {
	if _, ok := transportRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("transportRole",
			fmt.Errorf("%d is not a valid transport role", int(r)))
	}
	return nil
}

// String returns the lowercase wire form of the role.
func (r TransportRole) String() string {
	if s, ok := transportRoleStrings()[r]; ok {
		return s
	}
	return fmt.Sprintf("unknown (%d)", int(r))
}

// DriverStatus is the availability of a driver membership. Only available
// drivers can be allocated to an order; allocation flips them to busy and
// release flips them back.
type DriverStatus int

const (
	DriverStatusUnknown DriverStatus = iota
	DriverStatusAvailable
	DriverStatusBusy
	DriverStatusOffDuty
	DriverStatusInactive
)

func driverStatusStrings() map[DriverStatus]string {
	return map[DriverStatus]string{
		DriverStatusAvailable: "available",
		DriverStatusBusy:      "busy",
		DriverStatusOffDuty:   "off_duty",
		DriverStatusInactive:  "inactive",
	}
}

// DriverStatusFromString parses the wire form of a driver status.
func DriverStatusFromString(s string) (DriverStatus, error) {
	for d, str := range driverStatusStrings() {
		if s == str {
			return d, nil
		}
	}
	return DriverStatusUnknown, errs.NewValueIsInvalidErrorWithCause("driverStatus",
		fmt.Errorf("%q is not a valid driver status", s))
}

// Validate checks the status is one of the listed values.
func (d DriverStatus) Validate() error {
	if _, ok := driverStatusStrings()[d]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("driverStatus",
			fmt.Errorf("%d is not a valid driver status", int(d)))
	}
	return nil
}

// String returns the lowercase wire form of the status.
func (d DriverStatus) String() string {
	if s, ok := driverStatusStrings()[d]; ok {
		return s
	}
	return fmt.Sprintf("unknown (%d)", int(d))
}

// RecyclingRole is the in-station role of a recycling membership. Pounders
// weigh incoming loads; supervisors additionally confirm them.
type RecyclingRole int

const (
	RecyclingRoleUnknown RecyclingRole = iota
	RecyclingRolePounder
	RecyclingRoleSupervisor
)

func recyclingRoleStrings() map[RecyclingRole]string {
	return map[RecyclingRole]string{
		RecyclingRolePounder:    "pounder",
		RecyclingRoleSupervisor: "supervisor",
	}
}

// RecyclingRoleFromString parses the wire form of a recycling role.
func RecyclingRoleFromString(s string) (RecyclingRole, error) {
	for r, str := range recyclingRoleStrings() {
		if s == str {
			return r, nil
		}
	}
	return RecyclingRoleUnknown, errs.NewValueIsInvalidErrorWithCause("recyclingRole",
		fmt.Errorf("%q is not a valid recycling role", s))
}

// Validate checks the role is one of the listed values.
func (r RecyclingRole) Validate() error {
	if _, ok := recyclingRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("recyclingRole",
			fmt.Errorf("%d is not a valid recycling role", int(r)))
	}
	return nil
}

// String returns the lowercase wire form of the role.
func (r RecyclingRole) String() string {
	if s, ok := recyclingRoleStrings()[r]; ok {
		return s
	}
	return fmt.Sprintf("unknown (%d)", int(r))
}
