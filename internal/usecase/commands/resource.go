package commands

import (
	"context"

	"riviera-booking/internal/domain/booking"
	"riviera-booking/internal/domain/resource"
	"riviera-booking/internal/infra/db"
	"riviera-booking/internal/pkg/errs"
	"riviera-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// ResourceCommands manages the bookable fleet. All mutations are elevated-
// role only; reads go through the queries side.
type ResourceCommands struct {
	uow       shared.UnitOfWork
	resources ResourceRepository
}

func NewResourceCommands(uow shared.UnitOfWork, resources ResourceRepository) *ResourceCommands {
	return &ResourceCommands{uow: uow, resources: resources}
}

type CreateRoomInput struct {
	Number      string
	Category    resource.RoomCategory
	PriceNight  int64
	Description string
	Equipements []string
	Bookable    bool
}

func (c *ResourceCommands) CreateRoom(ctx context.Context, actor booking.Actor, in CreateRoomInput) (*resource.Room, error) {
	if !actor.IsElevated() {
		return nil, errs.ErrForbidden
	}
	room, err := resource.NewRoom(in.Number, in.Category, in.PriceNight, in.Description, in.Equipements, in.Bookable)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		return markRepoErr(c.resources.CreateRoom(ctx, tx, room), errs.ErrDatabaseFailure)
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

func (c *ResourceCommands) UpdateRoom(ctx context.Context, actor booking.Actor, id uuid.UUID, in CreateRoomInput) (*resource.Room, error) {
	if !actor.IsElevated() {
		return nil, errs.ErrForbidden
	}

	var updated *resource.Room
	err := c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		current, err := c.resources.FindRoom(ctx, tx, id)
		if err != nil {
			return markRepoErr(err, errs.ErrResourceNotFound)
		}

		room, err := resource.NewRoom(in.Number, in.Category, in.PriceNight, in.Description, in.Equipements, in.Bookable)
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}
		room = resource.ReconstructRoom(
			current.ID(), room.Number(), room.Category(), room.PricePerNight(),
			room.Description(), room.Equipements(), room.IsBookable(),
			current.CreatedAt(), current.UpdatedAt(),
		)

		if err := c.resources.UpdateRoom(ctx, tx, room); err != nil {
			return markRepoErr(err, errs.ErrResourceNotFound)
		}
		updated = room
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *ResourceCommands) DeleteRoom(ctx context.Context, actor booking.Actor, id uuid.UUID) error {
	if !actor.IsElevated() {
		return errs.ErrForbidden
	}
	return c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		return markRepoErr(c.resources.DeleteRoom(ctx, tx, id), errs.ErrResourceNotFound)
	})
}

type CreateTableInput struct {
	Number   string
	Seats    int
	Area     resource.TableArea
	Bookable bool
}

func (c *ResourceCommands) CreateTable(ctx context.Context, actor booking.Actor, in CreateTableInput) (*resource.Table, error) {
	if !actor.IsElevated() {
		return nil, errs.ErrForbidden
	}
	table, err := resource.NewTable(in.Number, in.Seats, in.Area, in.Bookable)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		return markRepoErr(c.resources.CreateTable(ctx, tx, table), errs.ErrDatabaseFailure)
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

func (c *ResourceCommands) UpdateTable(ctx context.Context, actor booking.Actor, id uuid.UUID, in CreateTableInput) (*resource.Table, error) {
	if !actor.IsElevated() {
		return nil, errs.ErrForbidden
	}

	var updated *resource.Table
	err := c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		current, err := c.resources.FindTable(ctx, tx, id)
		if err != nil {
			return markRepoErr(err, errs.ErrResourceNotFound)
		}

		table, err := resource.NewTable(in.Number, in.Seats, in.Area, in.Bookable)
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}
		table = resource.ReconstructTable(
			current.ID(), table.Number(), table.Seats(), table.Area(), table.IsBookable(),
			current.CreatedAt(), current.UpdatedAt(),
		)

		if err := c.resources.UpdateTable(ctx, tx, table); err != nil {
			return markRepoErr(err, errs.ErrResourceNotFound)
		}
		updated = table
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *ResourceCommands) DeleteTable(ctx context.Context, actor booking.Actor, id uuid.UUID) error {
	if !actor.IsElevated() {
		return errs.ErrForbidden
	}
	return c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		return markRepoErr(c.resources.DeleteTable(ctx, tx, id), errs.ErrResourceNotFound)
	})
}
