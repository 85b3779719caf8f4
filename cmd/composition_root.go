package cmd

import (
	"github.com/esp3j0/waste-transort/internal/adapters/out/postgres"
	"github.com/esp3j0/waste-transort/internal/adapters/out/postgres/locationrepo"
	"github.com/esp3j0/waste-transort/internal/core/application/usecases/commands"
	"github.com/esp3j0/waste-transort/internal/core/application/usecases/queries"
	"github.com/esp3j0/waste-transort/internal/core/application/usecases/scopes"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	resolver   scopes.Resolver
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	// the resolver only reads, so its repositories run outside any transaction
	readSide := uowFactory.Create()
	resolver, err := scopes.NewResolver(
		readSide.MembershipRepository(),
		locationrepo.NewGormCommunityRepository(gormDB),
	)
	if err != nil {
		panic(err)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *uowFactory,
		resolver:   resolver,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, locationrepo.NewGormAddressRepository(c.gormDB))
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderCommandHandler(f, c.resolver)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.resolver)
}

func (c *CompositionRoot) CreateCreateMembershipCommandHandler() commands.CreateMembershipCommandHandler {
	return commands.NewCreateMembershipCommandHandler(c.membershipUoWFactory())
}

func (c *CompositionRoot) CreateUpdateMembershipCommandHandler() commands.UpdateMembershipCommandHandler {
	return commands.NewUpdateMembershipCommandHandler(c.membershipUoWFactory())
}

func (c *CompositionRoot) CreateRemoveMembershipCommandHandler() commands.RemoveMembershipCommandHandler {
	return commands.NewRemoveMembershipCommandHandler(c.membershipUoWFactory())
}

func (c *CompositionRoot) CreateSetDriverStatusCommandHandler() commands.SetDriverStatusCommandHandler {
	return commands.NewSetDriverStatusCommandHandler(c.membershipUoWFactory())
}

func (c *CompositionRoot) CreateReleaseStaleAllocationsCommandHandler() commands.ReleaseStaleAllocationsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleaseStaleAllocationsCommandHandler(f)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB, c.resolver)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory.Create().OrderRepository(), c.resolver)
}

func (c *CompositionRoot) membershipUoWFactory() commands.MembershipUoWFactory {
	return FuncMembershipUoWFactory(func() commands.MembershipUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncMembershipUoWFactory func() commands.MembershipUoW

func (f FuncMembershipUoWFactory) Create() commands.MembershipUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
