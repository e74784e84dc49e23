package readstore

import (
	"context"
	"errors"
	"time"

	"riviera-booking/internal/infra"
	"riviera-booking/internal/infra/db"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReservationView is the flattened listing row: the reservation plus the
// display fields the API joins in (resource number, account email).
type ReservationView struct {
	ID             uuid.UUID
	Reference      string
	ResourceKind   string
	ResourceID     uuid.UUID
	ResourceNumber string
	UserID         uuid.UUID
	UserEmail      string
	DateDebut      time.Time
	DateFin        time.Time
	HeureDebut     *string
	HeureFin       *string
	PartySize      int
	Statut         string
	Montant        int64
	Nom            string
	Prenom         string
	Email          string
	Telephone      string
	Commentaire    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ListFilter narrows the reservation listing. A zero filter lists everything;
// handlers set UserID for client callers so they only ever see their own.
type ListFilter struct {
	UserID       *uuid.UUID
	ResourceKind *string
	ResourceID   *uuid.UUID
	Statut       *string
	From         *time.Time
	To           *time.Time
	Limit        uint64
	Offset       uint64
}

type ReservationReadStore struct {
	pool *pgxpool.Pool
}

func NewReservationReadStore(pool *pgxpool.Pool) *ReservationReadStore {
	return &ReservationReadStore{pool: pool}
}

func (s *ReservationReadStore) baseQuery() sq.SelectBuilder {
	return db.Builder.
		Select(
			"r.id", "r.reference", "r.resource_kind", "r.resource_id",
			"COALESCE(c.numero, t.numero, '')",
			"r.user_id", "u.email",
			"r.date_debut", "r.date_fin", "r.heure_debut", "r.heure_fin",
			"r.party_size", "r.statut", "r.montant",
			"r.nom", "r.prenom", "r.email", "r.telephone", "r.commentaire",
			"r.created_at", "r.updated_at",
		).
		From("reservations r").
		Join("users u ON u.id = r.user_id").
		LeftJoin("chambres c ON r.resource_kind = 'chambre' AND c.id = r.resource_id").
		LeftJoin("tables_restaurant t ON r.resource_kind = 'table' AND t.id = r.resource_id")
}

func (s *ReservationReadStore) Find(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	query, args, err := s.baseQuery().Where("r.id = ?", id).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build reservation view query", err)
	}
	view, err := scanView(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *ReservationReadStore) List(ctx context.Context, filter ListFilter) ([]ReservationView, error) {
	b := s.baseQuery().OrderBy("r.date_debut DESC", "r.created_at DESC")

	if filter.UserID != nil {
		b = b.Where("r.user_id = ?", *filter.UserID)
	}
	if filter.ResourceKind != nil {
		b = b.Where("r.resource_kind = ?", *filter.ResourceKind)
	}
	if filter.ResourceID != nil {
		b = b.Where("r.resource_id = ?", *filter.ResourceID)
	}
	if filter.Statut != nil {
		b = b.Where("r.statut = ?", *filter.Statut)
	}
	if filter.From != nil {
		b = b.Where("r.date_fin >= ?", *filter.From)
	}
	if filter.To != nil {
		b = b.Where("r.date_debut <= ?", *filter.To)
	}
	if filter.Limit > 0 {
		b = b.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		b = b.Offset(filter.Offset)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build reservation list query", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query reservations", err)
	}
	defer rows.Close()

	var views []ReservationView
	for rows.Next() {
		view, err := scanView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation rows", err)
	}
	return views, nil
}

func scanView(row pgx.Row) (*ReservationView, error) {
	var v ReservationView
	err := row.Scan(
		&v.ID, &v.Reference, &v.ResourceKind, &v.ResourceID,
		&v.ResourceNumber,
		&v.UserID, &v.UserEmail,
		&v.DateDebut, &v.DateFin, &v.HeureDebut, &v.HeureFin,
		&v.PartySize, &v.Statut, &v.Montant,
		&v.Nom, &v.Prenom, &v.Email, &v.Telephone, &v.Commentaire,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan reservation view", err)
	}
	return &v, nil
}
