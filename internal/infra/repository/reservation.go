package repository

import (
	"context"
	"errors"
	"time"

	"riviera-booking/internal/domain/booking"
	"riviera-booking/internal/domain/resource"
	"riviera-booking/internal/infra"
	"riviera-booking/internal/infra/db"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const reservationTable = "reservations"

var reservationColumns = []string{
	"id", "reference", "resource_kind", "resource_id", "user_id",
	"date_debut", "date_fin", "heure_debut", "heure_fin",
	"party_size", "statut", "montant",
	"nom", "prenom", "email", "telephone", "adresse", "ville", "code_postal", "commentaire",
	"created_at", "updated_at",
}

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

func (r *ReservationRepository) Find(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Reservation, error) {
	query, args, err := db.Builder.
		Select(reservationColumns...).
		From(reservationTable).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build reservation query", err)
	}
	return scanReservation(tx.QueryRow(ctx, query, args...))
}

func (r *ReservationRepository) FindByReference(ctx context.Context, tx db.DBTX, reference string) (*booking.Reservation, error) {
	query, args, err := db.Builder.
		Select(reservationColumns...).
		From(reservationTable).
		Where("reference = ?", reference).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build reservation query", err)
	}
	return scanReservation(tx.QueryRow(ctx, query, args...))
}

// ActiveWindows loads the occupied windows of one resource, skipping
// cancelled reservations and optionally the reservation being edited. Called
// inside WithinResource so the result stays true until commit.
func (r *ReservationRepository) ActiveWindows(
	ctx context.Context,
	tx db.DBTX,
	kind resource.Kind,
	resourceID uuid.UUID,
	exclude *uuid.UUID,
) ([]booking.Window, error) {
	b := db.Builder.
		Select("resource_kind", "date_debut", "date_fin", "heure_debut", "heure_fin").
		From(reservationTable).
		Where("resource_kind = ?", kind.String()).
		Where("resource_id = ?", resourceID).
		Where("statut <> ?", booking.StatusCancelled.String())
	if exclude != nil {
		b = b.Where("id <> ?", *exclude)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build windows query", err)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query active windows", err)
	}
	defer rows.Close()

	var windows []booking.Window
	for rows.Next() {
		var (
			rk                   string
			dateDebut, dateFin   time.Time
			heureDebut, heureFin *string
		)
		if err := rows.Scan(&rk, &dateDebut, &dateFin, &heureDebut, &heureFin); err != nil {
			return nil, infra.WrapRepoErr("failed to scan window row", err)
		}
		w, err := rebuildWindow(resource.Kind(rk), dateDebut, dateFin, heureDebut, heureFin)
		if err != nil {
			return nil, infra.WrapRepoErr("stored window is invalid", err)
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate window rows", err)
	}
	return windows, nil
}

func (r *ReservationRepository) Create(ctx context.Context, tx db.DBTX, res *booking.Reservation) error {
	heureDebut, heureFin := windowTimes(res.Window())
	g := res.Guest()

	query, args, err := db.Builder.
		Insert(reservationTable).
		Columns(
			"id", "reference", "resource_kind", "resource_id", "user_id",
			"date_debut", "date_fin", "heure_debut", "heure_fin",
			"party_size", "statut", "montant",
			"nom", "prenom", "email", "telephone", "adresse", "ville", "code_postal", "commentaire",
		).
		Values(
			res.ID(), res.Reference(), res.ResourceKind().String(), res.ResourceID(), res.UserID(),
			res.Window().Start(), res.Window().End(), heureDebut, heureFin,
			res.PartySize(), res.Status().String(), res.Total().Amount(),
			g.Nom, g.Prenom, g.Email, g.Telephone, g.Adresse, g.Ville, g.CodePostal, g.Commentaire,
		).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build reservation insert", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("reservation reference already exists", err, infra.KindDuplicateKey)
		}
		if isForeignKeyViolation(err) {
			return infra.WrapRepoErr("reservation references a missing row", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to insert reservation", err)
	}
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, tx db.DBTX, res *booking.Reservation) error {
	heureDebut, heureFin := windowTimes(res.Window())
	g := res.Guest()

	query, args, err := db.Builder.
		Update(reservationTable).
		Set("date_debut", res.Window().Start()).
		Set("date_fin", res.Window().End()).
		Set("heure_debut", heureDebut).
		Set("heure_fin", heureFin).
		Set("party_size", res.PartySize()).
		Set("statut", res.Status().String()).
		Set("montant", res.Total().Amount()).
		Set("commentaire", g.Commentaire).
		Set("updated_at", sq.Expr("now()")).
		Where("id = ?", res.ID()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build reservation update", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	query, args, err := db.Builder.
		Delete(reservationTable).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build reservation delete", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func scanReservation(row pgx.Row) (*booking.Reservation, error) {
	var (
		id, resourceID, userID uuid.UUID
		reference, rk          string
		dateDebut, dateFin     time.Time
		heureDebut, heureFin   *string
		partySize              int
		statut                 string
		montant                int64
		g                      booking.Guest
		createdAt, updatedAt   time.Time
	)
	err := row.Scan(
		&id, &reference, &rk, &resourceID, &userID,
		&dateDebut, &dateFin, &heureDebut, &heureFin,
		&partySize, &statut, &montant,
		&g.Nom, &g.Prenom, &g.Email, &g.Telephone, &g.Adresse, &g.Ville, &g.CodePostal, &g.Commentaire,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan reservation", err)
	}

	kind := resource.Kind(rk)
	window, err := rebuildWindow(kind, dateDebut, dateFin, heureDebut, heureFin)
	if err != nil {
		return nil, infra.WrapRepoErr("stored window is invalid", err)
	}
	status, err := booking.NewStatus(statut)
	if err != nil {
		return nil, infra.WrapRepoErr("stored status is invalid", err)
	}
	total, err := booking.NewMoney(montant)
	if err != nil {
		return nil, infra.WrapRepoErr("stored amount is invalid", err)
	}

	return booking.ReconstructReservation(
		id, kind, resourceID, userID,
		window, partySize, status, total, g, reference,
		createdAt, updatedAt,
	), nil
}

func rebuildWindow(kind resource.Kind, dateDebut, dateFin time.Time, heureDebut, heureFin *string) (booking.Window, error) {
	if kind == resource.KindTable {
		if heureDebut == nil || heureFin == nil {
			return booking.Window{}, booking.ErrInvalidWindow
		}
		start, err := booking.NewTimeOfDay(*heureDebut)
		if err != nil {
			return booking.Window{}, err
		}
		end, err := booking.NewTimeOfDay(*heureFin)
		if err != nil {
			return booking.Window{}, err
		}
		return booking.NewSeatingWindow(dateDebut, start, end)
	}
	return booking.NewStayWindow(dateDebut, dateFin)
}

func windowTimes(w booking.Window) (*string, *string) {
	if w.Kind() != booking.KindSeating {
		return nil, nil
	}
	start := w.StartTime().String()
	end := w.EndTime().String()
	return &start, &end
}
