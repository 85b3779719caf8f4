package commands_test

import (
	"testing"
	"time"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/membership"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/order"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/vehicle"
	"github.com/esp3j0/waste-transort/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), role, false)
	require.NoError(t, err)
	return actor
}

func newSuperuser(t *testing.T) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin, true)
	require.NoError(t, err)
	return actor
}

func newPendingOrder(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), customerID, kernel.NewUUID(), kernel.NewUUID(),
		"construction debris", 2.5, fixedNow)
	require.NoError(t, err)
	return o
}

func newConfirmedOrder(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()
	o := newPendingOrder(t, customerID)
	require.NoError(t, o.ConfirmByProperty(kernel.NewUUID(), fixedNow))
	return o
}

func newDriver(t *testing.T, userID, orgID kernel.UUID) *membership.Membership {
	t.Helper()
	m, err := membership.NewTransportMembership(
		kernel.NewUUID(), userID, orgID, membership.TransportRoleDriver, "B2-1234", fixedNow)
	require.NoError(t, err)
	return m
}

func newDispatcher(t *testing.T, userID, orgID kernel.UUID) *membership.Membership {
	t.Helper()
	m, err := membership.NewTransportMembership(
		kernel.NewUUID(), userID, orgID, membership.TransportRoleDispatcher, "", fixedNow)
	require.NoError(t, err)
	return m
}

func newTestVehicle(t *testing.T, companyID kernel.UUID) *vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.NewVehicle(kernel.NewUUID(), companyID, "WT-7781", vehicle.TypeMedium, 5.0, fixedNow)
	require.NoError(t, err)
	return v
}

func scopeOf(t *testing.T, memberships []*membership.Membership,
	communitiesByOrg map[kernel.UUID][]kernel.UUID,
) services.Scope {
	t.Helper()
	return services.NewScope(memberships, communitiesByOrg)
}
