package vehicle

import (
	"fmt"

	"github.com/esp3j0/waste-transort/internal/pkg/errs"
)

// Status is the availability of a vehicle.
type Status int

const (
	StatusUnknown Status = iota
	StatusAvailable
	StatusInUse
	StatusMaintenance
	StatusInactive
)

func statusStrings() map[Status]string {
	return map[Status]string{
		StatusAvailable:   "available",
		StatusInUse:       "in_use",
		StatusMaintenance: "maintenance",
		StatusInactive:    "inactive",
	}
}

// StatusFromString parses the wire form of a vehicle status.
func StatusFromString(s string) (Status, error) {
	for v, str := range statusStrings() {
		if s == str {
			return v, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("vehicleStatus",
		fmt.Errorf("%q is not a valid vehicle status", s))
}

// Validate checks the status is one of the listed values.
func (s Status) Validate() error {
	if _, ok := statusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vehicleStatus",
			fmt.Errorf("%d is not a valid vehicle status", int(s)))
	}
	return nil
}

// String returns the lowercase wire form of the status.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return fmt.Sprintf("unknown (%d)", int(s))
}

// Type is the size class of a vehicle.
type Type int

const (
	TypeUnknown Type = iota
	TypeSmall
	TypeMedium
	TypeLarge
	TypeSpecial
	TypeOther
)

func typeStrings() map[Type]string {
	return map[Type]string{
		TypeSmall:   "small",
		TypeMedium:  "medium",
		TypeLarge:   "large",
		TypeSpecial: "special",
		TypeOther:   "other",
	}
}

// TypeFromString parses the wire form of a vehicle type.
func TypeFromString(s string) (Type, error) {
	for v, str := range typeStrings() {
		if s == str {
			return v, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("vehicleType",
		fmt.Errorf("%q is not a valid vehicle type", s))
}

// Validate checks the type is one of the listed values.
func (t Type) Validate() error {
	if _, ok := typeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vehicleType",
			fmt.Errorf("%d is not a valid vehicle type", int(t)))
	}
	return nil
}

// String returns the lowercase wire form of the type.
func (t Type) String() string {
	if str, ok := typeStrings()[t]; ok {
		return str
	}
	return fmt.Sprintf("unknown (%d)", int(t))
}
