package repository

import (
	"context"
	"errors"
	"time"

	"riviera-booking/internal/domain/resource"
	"riviera-booking/internal/infra"
	"riviera-booking/internal/infra/db"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	roomTable   = "chambres"
	diningTable = "tables_restaurant"
)

type ResourceRepository struct{}

func NewResourceRepository() *ResourceRepository {
	return &ResourceRepository{}
}

// FindBookable resolves a kind+id pair to the concrete resource. Used at the
// head of every booking flow.
func (r *ResourceRepository) FindBookable(ctx context.Context, tx db.DBTX, kind resource.Kind, id uuid.UUID) (resource.Bookable, error) {
	switch kind {
	case resource.KindRoom:
		return r.FindRoom(ctx, tx, id)
	case resource.KindTable:
		return r.FindTable(ctx, tx, id)
	default:
		return nil, infra.WrapRepoErr("unknown resource kind", resource.ErrInvalidKind, infra.KindNotFound)
	}
}

func (r *ResourceRepository) FindRoom(ctx context.Context, tx db.DBTX, id uuid.UUID) (*resource.Room, error) {
	query, args, err := db.Builder.
		Select("id", "numero", "categorie", "prix_nuit", "description", "equipements", "bookable", "created_at", "updated_at").
		From(roomTable).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build room query", err)
	}
	return scanRoom(tx.QueryRow(ctx, query, args...))
}

func (r *ResourceRepository) ListRooms(ctx context.Context, tx db.DBTX) ([]*resource.Room, error) {
	query, args, err := db.Builder.
		Select("id", "numero", "categorie", "prix_nuit", "description", "equipements", "bookable", "created_at", "updated_at").
		From(roomTable).
		OrderBy("numero").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build rooms query", err)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query rooms", err)
	}
	defer rows.Close()

	var rooms []*resource.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate room rows", err)
	}
	return rooms, nil
}

func (r *ResourceRepository) CreateRoom(ctx context.Context, tx db.DBTX, room *resource.Room) error {
	query, args, err := db.Builder.
		Insert(roomTable).
		Columns("id", "numero", "categorie", "prix_nuit", "description", "equipements", "bookable").
		Values(room.ID(), room.Number(), string(room.Category()), room.PricePerNight(), room.Description(), room.Equipements(), room.IsBookable()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build room insert", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("room number already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert room", err)
	}
	return nil
}

func (r *ResourceRepository) UpdateRoom(ctx context.Context, tx db.DBTX, room *resource.Room) error {
	query, args, err := db.Builder.
		Update(roomTable).
		Set("numero", room.Number()).
		Set("categorie", string(room.Category())).
		Set("prix_nuit", room.PricePerNight()).
		Set("description", room.Description()).
		Set("equipements", room.Equipements()).
		Set("bookable", room.IsBookable()).
		Set("updated_at", sq.Expr("now()")).
		Where("id = ?", room.ID()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build room update", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("room number already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to update room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ResourceRepository) DeleteRoom(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	return r.deleteByID(ctx, tx, roomTable, "room", id)
}

func (r *ResourceRepository) FindTable(ctx context.Context, tx db.DBTX, id uuid.UUID) (*resource.Table, error) {
	query, args, err := db.Builder.
		Select("id", "numero", "places", "emplacement", "bookable", "created_at", "updated_at").
		From(diningTable).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build table query", err)
	}
	return scanTable(tx.QueryRow(ctx, query, args...))
}

func (r *ResourceRepository) ListTables(ctx context.Context, tx db.DBTX) ([]*resource.Table, error) {
	query, args, err := db.Builder.
		Select("id", "numero", "places", "emplacement", "bookable", "created_at", "updated_at").
		From(diningTable).
		OrderBy("numero").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build tables query", err)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query tables", err)
	}
	defer rows.Close()

	var tables []*resource.Table
	for rows.Next() {
		table, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate table rows", err)
	}
	return tables, nil
}

func (r *ResourceRepository) CreateTable(ctx context.Context, tx db.DBTX, table *resource.Table) error {
	query, args, err := db.Builder.
		Insert(diningTable).
		Columns("id", "numero", "places", "emplacement", "bookable").
		Values(table.ID(), table.Number(), table.Seats(), string(table.Area()), table.IsBookable()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build table insert", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("table number already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert table", err)
	}
	return nil
}

func (r *ResourceRepository) UpdateTable(ctx context.Context, tx db.DBTX, table *resource.Table) error {
	query, args, err := db.Builder.
		Update(diningTable).
		Set("numero", table.Number()).
		Set("places", table.Seats()).
		Set("emplacement", string(table.Area())).
		Set("bookable", table.IsBookable()).
		Set("updated_at", sq.Expr("now()")).
		Where("id = ?", table.ID()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build table update", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("table number already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to update table", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("table not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ResourceRepository) DeleteTable(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	return r.deleteByID(ctx, tx, diningTable, "table", id)
}

func (r *ResourceRepository) deleteByID(ctx context.Context, tx db.DBTX, table, label string, id uuid.UUID) error {
	query, args, err := db.Builder.
		Delete(table).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build "+label+" delete", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return infra.WrapRepoErr(label+" still has reservations", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to delete "+label, err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(label+" not found", nil, infra.KindNotFound)
	}
	return nil
}

func scanRoom(row pgx.Row) (*resource.Room, error) {
	var (
		id                   uuid.UUID
		numero               string
		categorie            string
		prixNuit             int64
		description          string
		equipements          []string
		bookable             bool
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&id, &numero, &categorie, &prixNuit, &description, &equipements, &bookable, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan room", err)
	}

	category, err := resource.NewRoomCategory(categorie)
	if err != nil {
		return nil, infra.WrapRepoErr("stored room category is invalid", err)
	}
	return resource.ReconstructRoom(id, numero, category, prixNuit, description, equipements, bookable, createdAt, updatedAt), nil
}

func scanTable(row pgx.Row) (*resource.Table, error) {
	var (
		id                   uuid.UUID
		numero               string
		places               int
		emplacement          string
		bookable             bool
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&id, &numero, &places, &emplacement, &bookable, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("table not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan table", err)
	}

	area, err := resource.NewTableArea(emplacement)
	if err != nil {
		return nil, infra.WrapRepoErr("stored table area is invalid", err)
	}
	return resource.ReconstructTable(id, numero, places, area, bookable, createdAt, updatedAt), nil
}
