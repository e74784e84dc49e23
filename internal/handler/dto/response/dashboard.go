package response

import "riviera-booking/internal/infra/readstore"

type DashboardResponse struct {
	TotalReservations int64            `json:"total_reservations"`
	ByStatus          map[string]int64 `json:"par_statut"`
	ArrivalsToday     int64            `json:"arrivees_aujourdhui"`
	DeparturesToday   int64            `json:"departs_aujourdhui"`
	RevenueCompleted  int64            `json:"revenu_termine"`
	PaymentsReceived  int64            `json:"paiements_recus"`
}

func FromStats(s *readstore.DashboardStats) DashboardResponse {
	return DashboardResponse{
		TotalReservations: s.TotalReservations,
		ByStatus:          s.ByStatus,
		ArrivalsToday:     s.ArrivalsToday,
		DeparturesToday:   s.DeparturesToday,
		RevenueCompleted:  s.RevenueCompleted,
		PaymentsReceived:  s.PaymentsReceived,
	}
}
