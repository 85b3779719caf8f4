package vehicle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"
)

var fixedNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestVehicle(t *testing.T) *Vehicle {
	t.Helper()
	v, err := NewVehicle(kernel.NewUUID(), kernel.NewUUID(), "沪A12345", TypeMedium, 8, fixedNow)
	require.NoError(t, err)
	return v
}

func TestNewVehicle(t *testing.T) {
	t.Run("should create available vehicle", func(t *testing.T) {
		v := newTestVehicle(t)

		assert.NoError(t, v.Validate())
		assert.Equal(t, StatusAvailable, v.Status())
		assert.Equal(t, "沪A12345", v.Plate())
		assert.Equal(t, TypeMedium, v.VehicleType())
		assert.Equal(t, 8.0, v.Capacity())
	})

	t.Run("should reject empty plate", func(t *testing.T) {
		_, err := NewVehicle(kernel.NewUUID(), kernel.NewUUID(), "", TypeMedium, 8, fixedNow)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject non positive capacity", func(t *testing.T) {
		_, err := NewVehicle(kernel.NewUUID(), kernel.NewUUID(), "沪A12345", TypeMedium, 0, fixedNow)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unknown type", func(t *testing.T) {
		_, err := NewVehicle(kernel.NewUUID(), kernel.NewUUID(), "沪A12345", TypeUnknown, 8, fixedNow)
		assert.Error(t, err)
	})

	t.Run("default constructor fails validation", func(t *testing.T) {
		var v Vehicle
		assert.ErrorIs(t, v.Validate(), ErrVehicleIsNotConstructed)
	})
}

func TestVehicleAllocate(t *testing.T) {
	t.Run("available vehicle becomes in use", func(t *testing.T) {
		v := newTestVehicle(t)
		require.NoError(t, v.Allocate(fixedNow))
		assert.Equal(t, StatusInUse, v.Status())
	})

	t.Run("in use vehicle cannot be allocated again", func(t *testing.T) {
		v := newTestVehicle(t)
		require.NoError(t, v.Allocate(fixedNow))
		assert.ErrorIs(t, v.Allocate(fixedNow), errs.ErrResourceConflict)
	})

	t.Run("vehicle in maintenance cannot be allocated", func(t *testing.T) {
		v := newTestVehicle(t)
		require.NoError(t, v.SetStatus(StatusMaintenance, fixedNow))
		assert.ErrorIs(t, v.Allocate(fixedNow), errs.ErrResourceConflict)
	})
}

func TestVehicleRelease(t *testing.T) {
	t.Run("in use vehicle becomes available", func(t *testing.T) {
		v := newTestVehicle(t)
		require.NoError(t, v.Allocate(fixedNow))
		require.NoError(t, v.Release(fixedNow))
		assert.Equal(t, StatusAvailable, v.Status())
	})

	t.Run("releasing a parked vehicle is a no-op", func(t *testing.T) {
		v := newTestVehicle(t)
		require.NoError(t, v.SetStatus(StatusMaintenance, fixedNow))
		require.NoError(t, v.Release(fixedNow))
		assert.Equal(t, StatusMaintenance, v.Status())
	})
}

func TestVehicleSetStatus(t *testing.T) {
	t.Run("in use cannot be set manually", func(t *testing.T) {
		v := newTestVehicle(t)
		assert.ErrorIs(t, v.SetStatus(StatusInUse, fixedNow), errs.ErrValueIsInvalid)
	})

	t.Run("in use cannot be left manually", func(t *testing.T) {
		v := newTestVehicle(t)
		require.NoError(t, v.Allocate(fixedNow))
		assert.ErrorIs(t, v.SetStatus(StatusMaintenance, fixedNow), errs.ErrResourceConflict)
	})
}

func TestRestoreVehicle(t *testing.T) {
	t.Run("round trip preserves state", func(t *testing.T) {
		v := newTestVehicle(t)
		require.NoError(t, v.Allocate(fixedNow))

		restored, err := RestoreVehicle(v.Snapshot())
		require.NoError(t, err)

		assert.True(t, restored.IsEqual(v))
		assert.Equal(t, v.Snapshot(), restored.Snapshot())
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		v := newTestVehicle(t)
		s := v.Snapshot()
		s.Status = Status(42)
		_, err := RestoreVehicle(s)
		assert.Error(t, err)
	})
}
