package readstore

import (
	"context"
	"time"

	"riviera-booking/internal/infra"
	"riviera-booking/internal/infra/db"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardStats is the admin overview: live counts by status plus the day's
// desk activity and recognized revenue.
type DashboardStats struct {
	TotalReservations int64
	ByStatus          map[string]int64
	ArrivalsToday     int64
	DeparturesToday   int64
	RevenueCompleted  int64
	PaymentsReceived  int64
}

type DashboardReadStore struct {
	pool *pgxpool.Pool
}

func NewDashboardReadStore(pool *pgxpool.Pool) *DashboardReadStore {
	return &DashboardReadStore{pool: pool}
}

func (s *DashboardReadStore) Stats(ctx context.Context, today time.Time) (*DashboardStats, error) {
	stats := &DashboardStats{ByStatus: make(map[string]int64)}

	query, args, err := db.Builder.
		Select("statut", "COUNT(*)", "COALESCE(SUM(montant) FILTER (WHERE statut = 'terminee'), 0)").
		From("reservations").
		GroupBy("statut").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build status counts query", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query status counts", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			statut  string
			count   int64
			revenue int64
		)
		if err := rows.Scan(&statut, &count, &revenue); err != nil {
			return nil, infra.WrapRepoErr("failed to scan status count", err)
		}
		stats.ByStatus[statut] = count
		stats.TotalReservations += count
		stats.RevenueCompleted += revenue
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate status counts", err)
	}

	day := today.Format(time.DateOnly)

	arrivalsQ, arrivalsArgs, err := db.Builder.
		Select("COUNT(*)").
		From("reservations").
		Where("date_debut = ?", day).
		Where("statut IN ('pending', 'confirmee')").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build arrivals query", err)
	}
	if err := s.pool.QueryRow(ctx, arrivalsQ, arrivalsArgs...).Scan(&stats.ArrivalsToday); err != nil {
		return nil, infra.WrapRepoErr("failed to count arrivals", err)
	}

	departuresQ, departuresArgs, err := db.Builder.
		Select("COUNT(*)").
		From("reservations").
		Where("date_fin = ?", day).
		Where("statut IN ('confirmee', 'terminee')").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build departures query", err)
	}
	if err := s.pool.QueryRow(ctx, departuresQ, departuresArgs...).Scan(&stats.DeparturesToday); err != nil {
		return nil, infra.WrapRepoErr("failed to count departures", err)
	}

	paymentsQ, paymentsArgs, err := db.Builder.
		Select("COALESCE(SUM(montant), 0)").
		From("paiements").
		Where("statut = 'valide'").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build payments query", err)
	}
	if err := s.pool.QueryRow(ctx, paymentsQ, paymentsArgs...).Scan(&stats.PaymentsReceived); err != nil {
		return nil, infra.WrapRepoErr("failed to sum payments", err)
	}

	return stats, nil
}
