package repository

import (
	"context"
	"errors"
	"time"

	"riviera-booking/internal/domain/booking"
	"riviera-booking/internal/infra"
	"riviera-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const paymentTable = "paiements"

var paymentColumns = []string{"id", "reference", "reservation_id", "montant", "mode", "statut", "paid_at", "created_at"}

type PaymentRepository struct{}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{}
}

func (r *PaymentRepository) Find(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Payment, error) {
	query, args, err := db.Builder.
		Select(paymentColumns...).
		From(paymentTable).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build payment query", err)
	}
	return scanPayment(tx.QueryRow(ctx, query, args...))
}

func (r *PaymentRepository) ListByReservation(ctx context.Context, tx db.DBTX, reservationID uuid.UUID) ([]*booking.Payment, error) {
	query, args, err := db.Builder.
		Select(paymentColumns...).
		From(paymentTable).
		Where("reservation_id = ?", reservationID).
		OrderBy("paid_at").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build payments query", err)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query payments", err)
	}
	defer rows.Close()

	var payments []*booking.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate payment rows", err)
	}
	return payments, nil
}

func (r *PaymentRepository) Create(ctx context.Context, tx db.DBTX, p *booking.Payment) error {
	query, args, err := db.Builder.
		Insert(paymentTable).
		Columns("id", "reference", "reservation_id", "montant", "mode", "statut", "paid_at").
		Values(p.ID(), p.Reference(), p.ReservationID(), p.Amount().Amount(), string(p.Mode()), string(p.Status()), p.PaidAt()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build payment insert", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return infra.WrapRepoErr("payment references a missing reservation", err, infra.KindForeignKeyViolated)
		}
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("payment reference already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert payment", err)
	}
	return nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, tx db.DBTX, p *booking.Payment) error {
	query, args, err := db.Builder.
		Update(paymentTable).
		Set("statut", string(p.Status())).
		Where("id = ?", p.ID()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build payment update", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update payment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("payment not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

func scanPayment(row pgx.Row) (*booking.Payment, error) {
	var (
		id, reservationID uuid.UUID
		reference         string
		montant           int64
		mode, statut      string
		paidAt, createdAt time.Time
	)
	err := row.Scan(&id, &reference, &reservationID, &montant, &mode, &statut, &paidAt, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan payment", err)
	}

	amount, err := booking.NewMoney(montant)
	if err != nil {
		return nil, infra.WrapRepoErr("stored amount is invalid", err)
	}
	pm, err := booking.NewPaymentMode(mode)
	if err != nil {
		return nil, infra.WrapRepoErr("stored payment mode is invalid", err)
	}
	status, err := booking.NewPaymentStatus(statut)
	if err != nil {
		return nil, infra.WrapRepoErr("stored payment status is invalid", err)
	}
	return booking.ReconstructPayment(id, reservationID, amount, pm, status, reference, paidAt, createdAt), nil
}
