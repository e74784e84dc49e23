package response

import (
	"time"

	"riviera-booking/internal/domain/booking"
)

type PaymentResponse struct {
	ID            string    `json:"id"`
	Reference     string    `json:"reference"`
	ReservationID string    `json:"reservation_id"`
	Montant       int64     `json:"montant"`
	Mode          string    `json:"mode"`
	Statut        string    `json:"statut"`
	PaidAt        time.Time `json:"paid_at"`
}

func FromPayment(p *booking.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID().String(),
		Reference:     p.Reference(),
		ReservationID: p.ReservationID().String(),
		Montant:       p.Amount().Amount(),
		Mode:          string(p.Mode()),
		Statut:        string(p.Status()),
		PaidAt:        p.PaidAt(),
	}
}

func FromPayments(payments []*booking.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromPayment(p))
	}
	return out
}
