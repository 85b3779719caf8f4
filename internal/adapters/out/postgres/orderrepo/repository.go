package orderrepo

import (
	"context"
	"errors"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/order"
	"github.com/esp3j0/waste-transort/internal/core/ports"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	// Save rather than Updates: cancelled party references must be able to
	// return to NULL, which Updates' zero-value skipping would silently drop.
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes an order row.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

// GetAllWithStaleAllocations retrieves orders past the point of needing their
// allocation that still reference a driver association.
func (r *GormOrderRepository) GetAllWithStaleAllocations(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("driver_association_id IS NOT NULL").
		Where("status IN ?", []string{
			order.StatusDelivered.String(),
			order.StatusRecyclingConfirmed.String(),
			order.StatusCompleted.String(),
			order.StatusCancelled.String(),
		}).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// GetActiveAllocationRefs lists the resource references of orders still in an
// assignment state. The sweep consults this before releasing anything a
// finished order points at.
func (r *GormOrderRepository) GetActiveAllocationRefs(ctx context.Context) (ports.ActiveAllocationRefs, error) {
	var rows []struct {
		DriverAssociationID *uuid.UUID
		VehicleID           *uuid.UUID
	}
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select("driver_association_id", "vehicle_id").
		Where("driver_association_id IS NOT NULL").
		Where("status IN ?", []string{
			order.StatusTransportAssigned.String(),
			order.StatusTransporting.String(),
		}).
		Find(&rows).Error
	if err != nil {
		return ports.ActiveAllocationRefs{}, err
	}

	var refs ports.ActiveAllocationRefs
	for _, row := range rows {
		driverID, err := optionalDomainID(row.DriverAssociationID)
		if err != nil {
			return ports.ActiveAllocationRefs{}, err
		}
		if driverID != nil {
			refs.DriverAssociationIDs = append(refs.DriverAssociationIDs, *driverID)
		}

		vehicleID, err := optionalDomainID(row.VehicleID)
		if err != nil {
			return ports.ActiveAllocationRefs{}, err
		}
		if vehicleID != nil {
			refs.VehicleIDs = append(refs.VehicleIDs, *vehicleID)
		}
	}

	return refs, nil
}
