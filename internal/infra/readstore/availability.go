package readstore

import (
	"context"
	"time"

	"riviera-booking/internal/domain/booking"
	"riviera-booking/internal/domain/resource"
	"riviera-booking/internal/infra"
	"riviera-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AvailabilityReadStore feeds the availability query: bookable candidates
// plus every active window touching the requested range, loaded in two
// round trips regardless of fleet size.
type AvailabilityReadStore struct {
	pool *pgxpool.Pool
}

func NewAvailabilityReadStore(pool *pgxpool.Pool) *AvailabilityReadStore {
	return &AvailabilityReadStore{pool: pool}
}

// RoomFilter narrows the candidate room set before the conflict check.
type RoomFilter struct {
	Category *resource.RoomCategory
	MaxPrice *int64
}

// TableFilter narrows the candidate table set before the conflict check.
type TableFilter struct {
	Area     *resource.TableArea
	MinSeats *int
}

func (s *AvailabilityReadStore) CandidateRooms(ctx context.Context, filter RoomFilter) ([]*resource.Room, error) {
	b := db.Builder.
		Select("id", "numero", "categorie", "prix_nuit", "description", "equipements", "bookable", "created_at", "updated_at").
		From("chambres").
		Where("bookable = TRUE").
		OrderBy("numero")
	if filter.Category != nil {
		b = b.Where("categorie = ?", string(*filter.Category))
	}
	if filter.MaxPrice != nil {
		b = b.Where("prix_nuit <= ?", *filter.MaxPrice)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build candidate rooms query", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query candidate rooms", err)
	}
	defer rows.Close()

	var rooms []*resource.Room
	for rows.Next() {
		var (
			id                   uuid.UUID
			numero, categorie    string
			prixNuit             int64
			description          string
			equipements          []string
			bookable             bool
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &numero, &categorie, &prixNuit, &description, &equipements, &bookable, &createdAt, &updatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan candidate room", err)
		}
		category, err := resource.NewRoomCategory(categorie)
		if err != nil {
			return nil, infra.WrapRepoErr("stored room category is invalid", err)
		}
		rooms = append(rooms, resource.ReconstructRoom(id, numero, category, prixNuit, description, equipements, bookable, createdAt, updatedAt))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate candidate rooms", err)
	}
	return rooms, nil
}

func (s *AvailabilityReadStore) CandidateTables(ctx context.Context, filter TableFilter) ([]*resource.Table, error) {
	b := db.Builder.
		Select("id", "numero", "places", "emplacement", "bookable", "created_at", "updated_at").
		From("tables_restaurant").
		Where("bookable = TRUE").
		OrderBy("numero")
	if filter.Area != nil {
		b = b.Where("emplacement = ?", string(*filter.Area))
	}
	if filter.MinSeats != nil {
		b = b.Where("places >= ?", *filter.MinSeats)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build candidate tables query", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query candidate tables", err)
	}
	defer rows.Close()

	var tables []*resource.Table
	for rows.Next() {
		var (
			id                   uuid.UUID
			numero, emplacement  string
			places               int
			bookable             bool
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &numero, &places, &emplacement, &bookable, &createdAt, &updatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan candidate table", err)
		}
		area, err := resource.NewTableArea(emplacement)
		if err != nil {
			return nil, infra.WrapRepoErr("stored table area is invalid", err)
		}
		tables = append(tables, resource.ReconstructTable(id, numero, places, area, bookable, createdAt, updatedAt))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate candidate tables", err)
	}
	return tables, nil
}

// WindowsInRange loads the active windows of every resource of one kind that
// touch [from, to], keyed by resource id. Boundaries are inclusive, matching
// the conflict rule.
func (s *AvailabilityReadStore) WindowsInRange(ctx context.Context, kind resource.Kind, from, to time.Time) (map[uuid.UUID][]booking.Window, error) {
	query, args, err := db.Builder.
		Select("resource_id", "date_debut", "date_fin", "heure_debut", "heure_fin").
		From("reservations").
		Where("resource_kind = ?", kind.String()).
		Where("statut <> ?", booking.StatusCancelled.String()).
		Where("date_debut <= ?", to).
		Where("date_fin >= ?", from).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build windows query", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query windows", err)
	}
	defer rows.Close()

	windows := make(map[uuid.UUID][]booking.Window)
	for rows.Next() {
		var (
			resourceID           uuid.UUID
			dateDebut, dateFin   time.Time
			heureDebut, heureFin *string
		)
		if err := rows.Scan(&resourceID, &dateDebut, &dateFin, &heureDebut, &heureFin); err != nil {
			return nil, infra.WrapRepoErr("failed to scan window row", err)
		}

		var w booking.Window
		if kind == resource.KindTable && heureDebut != nil && heureFin != nil {
			start, err := booking.NewTimeOfDay(*heureDebut)
			if err != nil {
				return nil, infra.WrapRepoErr("stored window time is invalid", err)
			}
			end, err := booking.NewTimeOfDay(*heureFin)
			if err != nil {
				return nil, infra.WrapRepoErr("stored window time is invalid", err)
			}
			w, err = booking.NewSeatingWindow(dateDebut, start, end)
			if err != nil {
				return nil, infra.WrapRepoErr("stored window is invalid", err)
			}
		} else {
			w, err = booking.NewStayWindow(dateDebut, dateFin)
			if err != nil {
				return nil, infra.WrapRepoErr("stored window is invalid", err)
			}
		}
		windows[resourceID] = append(windows[resourceID], w)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate window rows", err)
	}
	return windows, nil
}
