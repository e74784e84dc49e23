package booking

import (
	"errors"
	"time"

	"riviera-booking/internal/pkg/refcode"

	"github.com/google/uuid"
)

var (
	ErrInvalidPaymentMode   = errors.New("invalid payment mode")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrPaymentNotAllowed    = errors.New("payments can only be recorded against active reservations")
	ErrPaymentNotPending    = errors.New("only pending payments can be validated or failed")
	ErrPaymentNotRefundable = errors.New("only validated payments can be refunded")
)

// PaymentMode is the settlement channel accepted at the desk.
type PaymentMode string

const (
	PaymentCash        PaymentMode = "especes"
	PaymentCard        PaymentMode = "carte"
	PaymentMobileMoney PaymentMode = "mobile_money"
	PaymentTransfer    PaymentMode = "virement"
)

func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobileMoney, PaymentTransfer:
		return true
	default:
		return false
	}
}

func NewPaymentMode(s string) (PaymentMode, error) {
	m := PaymentMode(s)
	if !m.IsValid() {
		return "", ErrInvalidPaymentMode
	}
	return m, nil
}

// PaymentStatus tracks settlement of a single payment, independently of the
// reservation lifecycle. Card and mobile money arrive en_attente until the
// desk sees the funds; cash is valide immediately.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "en_attente"
	PaymentValidated PaymentStatus = "valide"
	PaymentFailed    PaymentStatus = "echec"
	PaymentRefunded  PaymentStatus = "rembourse"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentValidated, PaymentFailed, PaymentRefunded:
		return true
	default:
		return false
	}
}

func NewPaymentStatus(s string) (PaymentStatus, error) {
	st := PaymentStatus(s)
	if !st.IsValid() {
		return "", ErrInvalidPaymentStatus
	}
	return st, nil
}

// Payment is an informational record of money received for a reservation.
// It never drives the reservation lifecycle; the desk confirms separately.
type Payment struct {
	id            uuid.UUID
	reservationID uuid.UUID
	amount        Money
	mode          PaymentMode
	status        PaymentStatus
	reference     string
	paidAt        time.Time
	createdAt     time.Time
}

func NewPayment(res *Reservation, amount Money, mode PaymentMode, status PaymentStatus, paidAt time.Time) (*Payment, error) {
	if !mode.IsValid() {
		return nil, ErrInvalidPaymentMode
	}
	if !status.IsValid() || status == PaymentRefunded {
		return nil, ErrInvalidPaymentStatus
	}
	if !res.Status().IsActive() {
		return nil, ErrPaymentNotAllowed
	}
	return &Payment{
		id:            uuid.New(),
		reservationID: res.ID(),
		amount:        amount,
		mode:          mode,
		status:        status,
		reference:     refcode.NewPayment(),
		paidAt:        paidAt,
	}, nil
}

func ReconstructPayment(
	id, reservationID uuid.UUID,
	amount Money,
	mode PaymentMode,
	status PaymentStatus,
	reference string,
	paidAt, createdAt time.Time,
) *Payment {
	return &Payment{
		id:            id,
		reservationID: reservationID,
		amount:        amount,
		mode:          mode,
		status:        status,
		reference:     reference,
		paidAt:        paidAt,
		createdAt:     createdAt,
	}
}

// Validate settles an en_attente payment once the funds are seen.
func (p *Payment) Validate() error {
	if p.status != PaymentPending {
		return ErrPaymentNotPending
	}
	p.status = PaymentValidated
	return nil
}

// Fail marks an en_attente payment that never arrived.
func (p *Payment) Fail() error {
	if p.status != PaymentPending {
		return ErrPaymentNotPending
	}
	p.status = PaymentFailed
	return nil
}

// Refund reverses a validated payment.
func (p *Payment) Refund() error {
	if p.status != PaymentValidated {
		return ErrPaymentNotRefundable
	}
	p.status = PaymentRefunded
	return nil
}

func (p *Payment) ID() uuid.UUID            { return p.id }
func (p *Payment) ReservationID() uuid.UUID { return p.reservationID }
func (p *Payment) Amount() Money            { return p.amount }
func (p *Payment) Mode() PaymentMode        { return p.mode }
func (p *Payment) Status() PaymentStatus    { return p.status }
func (p *Payment) Reference() string        { return p.reference }
func (p *Payment) PaidAt() time.Time        { return p.paidAt }
func (p *Payment) CreatedAt() time.Time     { return p.createdAt }
