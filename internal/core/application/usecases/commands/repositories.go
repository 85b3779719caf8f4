// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/services"
	"github.com/esp3j0/waste-transort/internal/core/ports"
)

// ScopeResolver computes the authorization scope of an actor. Implemented by
// the scopes package; an interface here so handler tests can stub it.
type ScopeResolver interface {
	Resolve(ctx context.Context, actor kernel.Actor) (services.Scope, error)
}

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// MembershipRepoFactory provides access to the membership repository within a transaction.
	MembershipRepoFactory interface {
		MembershipRepository() ports.MembershipRepository
	}

	// VehicleRepoFactory provides access to the vehicle repository within a transaction.
	VehicleRepoFactory interface {
		VehicleRepository() ports.VehicleRepository
	}

	// PaymentRecorderFactory provides access to the payment recorder within a transaction.
	PaymentRecorderFactory interface {
		PaymentRecorder() ports.PaymentRecorder
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// MembershipUoW manages transactions for membership-only operations.
	MembershipUoW interface {
		TxManager
		MembershipRepoFactory
	}

	// MembershipUoWFactory creates new membership unit of work instances.
	MembershipUoWFactory interface {
		Create() MembershipUoW
	}

	// UoW manages transactions across orders, memberships, vehicles, and
	// payment records. Status transitions use it so the order update and the
	// driver/vehicle flips commit as one atomic unit.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   membershipRepo := uow.MembershipRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		MembershipRepoFactory
		VehicleRepoFactory
		PaymentRecorderFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
