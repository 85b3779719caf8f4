package membership

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"
)

var fixedNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newDriver(t *testing.T) *Membership {
	t.Helper()
	m, err := NewTransportMembership(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		TransportRoleDriver, "B2-1234567", fixedNow)
	require.NoError(t, err)
	return m
}

func TestNewPrimaryMembership(t *testing.T) {
	t.Run("primary carries no scope attribute", func(t *testing.T) {
		for _, orgType := range []OrgType{OrgTypeProperty, OrgTypeTransport, OrgTypeRecycling} {
			m, err := NewPrimaryMembership(
				kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), orgType, fixedNow)
			require.NoError(t, err)

			assert.NoError(t, m.Validate())
			assert.True(t, m.IsPrimary())
			assert.Nil(t, m.CommunityID())
			assert.Equal(t, TransportRoleUnknown, m.TransportRole())
			assert.Equal(t, RecyclingRoleUnknown, m.RecyclingRole())
		}
	})

	t.Run("transport primary can dispatch", func(t *testing.T) {
		m, err := NewPrimaryMembership(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), OrgTypeTransport, fixedNow)
		require.NoError(t, err)
		assert.True(t, m.CanDispatch())
		assert.False(t, m.IsDriver())
	})

	t.Run("unknown org type is rejected", func(t *testing.T) {
		_, err := NewPrimaryMembership(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), OrgTypeUnknown, fixedNow)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewPropertyMembership(t *testing.T) {
	t.Run("scoped member carries its community", func(t *testing.T) {
		communityID := kernel.NewUUID()
		m, err := NewPropertyMembership(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), communityID, fixedNow)
		require.NoError(t, err)

		assert.False(t, m.IsPrimary())
		assert.Equal(t, OrgTypeProperty, m.OrgType())
		assert.True(t, m.CommunityID().IsEqual(communityID))
	})

	t.Run("zero community is rejected", func(t *testing.T) {
		_, err := NewPropertyMembership(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.UUID{}, fixedNow)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewTransportMembership(t *testing.T) {
	t.Run("driver starts available with license", func(t *testing.T) {
		m := newDriver(t)

		assert.True(t, m.IsDriver())
		assert.False(t, m.CanDispatch())
		assert.Equal(t, DriverStatusAvailable, m.DriverStatus())
		assert.Equal(t, "B2-1234567", m.DriverLicenseNumber())
	})

	t.Run("driver without license is rejected", func(t *testing.T) {
		_, err := NewTransportMembership(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			TransportRoleDriver, "", fixedNow)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("dispatcher carries no license or driver status", func(t *testing.T) {
		m, err := NewTransportMembership(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			TransportRoleDispatcher, "", fixedNow)
		require.NoError(t, err)

		assert.True(t, m.CanDispatch())
		assert.Equal(t, DriverStatusUnknown, m.DriverStatus())
	})

	t.Run("dispatcher with license is rejected", func(t *testing.T) {
		_, err := NewTransportMembership(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			TransportRoleDispatcher, "B2-1234567", fixedNow)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("missing role is rejected", func(t *testing.T) {
		_, err := NewTransportMembership(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			TransportRoleUnknown, "", fixedNow)
		assert.Error(t, err)
	})
}

func TestNewRecyclingMembership(t *testing.T) {
	t.Run("scoped member carries a role", func(t *testing.T) {
		m, err := NewRecyclingMembership(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			RecyclingRolePounder, fixedNow)
		require.NoError(t, err)

		assert.False(t, m.IsPrimary())
		assert.Equal(t, RecyclingRolePounder, m.RecyclingRole())
	})

	t.Run("missing role is rejected", func(t *testing.T) {
		_, err := NewRecyclingMembership(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			RecyclingRoleUnknown, fixedNow)
		assert.Error(t, err)
	})
}

func TestMembershipAllocate(t *testing.T) {
	t.Run("available driver becomes busy", func(t *testing.T) {
		m := newDriver(t)
		require.NoError(t, m.Allocate(fixedNow))
		assert.Equal(t, DriverStatusBusy, m.DriverStatus())
	})

	t.Run("busy driver cannot be allocated again", func(t *testing.T) {
		m := newDriver(t)
		require.NoError(t, m.Allocate(fixedNow))
		assert.ErrorIs(t, m.Allocate(fixedNow), errs.ErrResourceConflict)
	})

	t.Run("off duty driver cannot be allocated", func(t *testing.T) {
		m := newDriver(t)
		require.NoError(t, m.SetDriverStatus(DriverStatusOffDuty, fixedNow))
		assert.ErrorIs(t, m.Allocate(fixedNow), errs.ErrResourceConflict)
	})

	t.Run("dispatcher cannot be allocated", func(t *testing.T) {
		m, err := NewTransportMembership(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			TransportRoleDispatcher, "", fixedNow)
		require.NoError(t, err)
		assert.ErrorIs(t, m.Allocate(fixedNow), errs.ErrValueIsInvalid)
	})
}

func TestMembershipRelease(t *testing.T) {
	t.Run("busy driver becomes available", func(t *testing.T) {
		m := newDriver(t)
		require.NoError(t, m.Allocate(fixedNow))
		require.NoError(t, m.Release(fixedNow))
		assert.Equal(t, DriverStatusAvailable, m.DriverStatus())
	})

	t.Run("releasing a non busy driver is a no-op", func(t *testing.T) {
		m := newDriver(t)
		require.NoError(t, m.SetDriverStatus(DriverStatusOffDuty, fixedNow))
		require.NoError(t, m.Release(fixedNow))
		assert.Equal(t, DriverStatusOffDuty, m.DriverStatus())
	})
}

func TestMembershipSetDriverStatus(t *testing.T) {
	t.Run("manual flips between non busy statuses", func(t *testing.T) {
		m := newDriver(t)
		require.NoError(t, m.SetDriverStatus(DriverStatusOffDuty, fixedNow))
		require.NoError(t, m.SetDriverStatus(DriverStatusAvailable, fixedNow))
		require.NoError(t, m.SetDriverStatus(DriverStatusInactive, fixedNow))
	})

	t.Run("busy cannot be set manually", func(t *testing.T) {
		m := newDriver(t)
		assert.ErrorIs(t, m.SetDriverStatus(DriverStatusBusy, fixedNow), errs.ErrValueIsInvalid)
	})

	t.Run("busy cannot be left manually", func(t *testing.T) {
		m := newDriver(t)
		require.NoError(t, m.Allocate(fixedNow))
		assert.ErrorIs(t, m.SetDriverStatus(DriverStatusOffDuty, fixedNow), errs.ErrResourceConflict)
	})
}

func TestMembershipPrimaryFlag(t *testing.T) {
	t.Run("promoting a scoped member keeps its scope attribute", func(t *testing.T) {
		communityID := kernel.NewUUID()
		m, err := NewPropertyMembership(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), communityID, fixedNow)
		require.NoError(t, err)

		m.MakePrimary(fixedNow)
		assert.True(t, m.IsPrimary())
		assert.True(t, m.CommunityID().IsEqual(communityID))

		require.NoError(t, m.ClearPrimary(fixedNow))
		assert.False(t, m.IsPrimary())
	})

	t.Run("demoting a primary without a scope attribute is rejected", func(t *testing.T) {
		m, err := NewPrimaryMembership(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), OrgTypeProperty, fixedNow)
		require.NoError(t, err)

		assert.ErrorIs(t, m.ClearPrimary(fixedNow), errs.ErrValueIsRequired)
		assert.True(t, m.IsPrimary())
	})

	t.Run("demoting after assigning a community succeeds", func(t *testing.T) {
		m, err := NewPrimaryMembership(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), OrgTypeProperty, fixedNow)
		require.NoError(t, err)

		require.NoError(t, m.AssignCommunity(kernel.NewUUID(), fixedNow))
		require.NoError(t, m.ClearPrimary(fixedNow))
		assert.False(t, m.IsPrimary())
	})
}

func TestRestoreMembership(t *testing.T) {
	t.Run("round trip preserves state", func(t *testing.T) {
		m := newDriver(t)
		require.NoError(t, m.Allocate(fixedNow))

		restored, err := RestoreMembership(m.Snapshot())
		require.NoError(t, err)

		assert.True(t, restored.IsEqual(m))
		assert.Equal(t, m.Snapshot(), restored.Snapshot())
	})

	t.Run("scoped property snapshot without community is rejected", func(t *testing.T) {
		m, err := NewPropertyMembership(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), fixedNow)
		require.NoError(t, err)

		s := m.Snapshot()
		s.CommunityID = nil
		_, err = RestoreMembership(s)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("primary snapshot without scope attribute is accepted", func(t *testing.T) {
		m, err := NewPrimaryMembership(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), OrgTypeProperty, fixedNow)
		require.NoError(t, err)

		_, err = RestoreMembership(m.Snapshot())
		assert.NoError(t, err)
	})

	t.Run("driver snapshot without license is rejected", func(t *testing.T) {
		m := newDriver(t)
		s := m.Snapshot()
		s.DriverLicenseNumber = ""
		_, err := RestoreMembership(s)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("default constructor fails validation", func(t *testing.T) {
		var m Membership
		assert.ErrorIs(t, m.Validate(), ErrMembershipIsNotConstructed)
	})
}
