package membership

import (
	"fmt"

	"github.com/esp3j0/waste-transort/internal/pkg/errs"
)

// OrgType names which coordination side a membership's organization belongs to.
type OrgType int

const (
	OrgTypeUnknown OrgType = iota
	OrgTypeProperty
	OrgTypeTransport
	OrgTypeRecycling
)

func orgTypeStrings() map[OrgType]string {
	return map[OrgType]string{
		OrgTypeProperty:  "property",
		OrgTypeTransport: "transport",
		OrgTypeRecycling: "recycling",
	}
}

// OrgTypeFromString parses the wire form of an organization type.
func OrgTypeFromString(s string) (OrgType, error) {
	for t, str := range orgTypeStrings() {
		if s == str {
			return t, nil
		}
	}
	return OrgTypeUnknown, errs.NewValueIsInvalidErrorWithCause("orgType",
		fmt.Errorf("%q is not a valid organization type", s))
}

// Validate checks the org type is one of the listed values.
func (t OrgType) Validate() error {
	if _, ok := orgTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("orgType",
			fmt.Errorf("%d is not a valid organization type", int(t)))
	}
	return nil
}

// String returns the lowercase wire form of the org type.
func (t OrgType) String() string {
	if s, ok := orgTypeStrings()[t]; ok {
		return s
	}
	return fmt.Sprintf("unknown (%d)", int(t))
}
