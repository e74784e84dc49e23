package request

type RecordPaymentRequest struct {
	Montant int64   `json:"montant" binding:"required,min=0"`
	Mode    string  `json:"mode" binding:"required,oneof=especes carte mobile_money virement"`
	Statut  *string `json:"statut" binding:"omitempty,oneof=en_attente valide echec"` // defaults to valide
	PaidAt  *string `json:"paid_at"`                                                  // RFC 3339; defaults to now
}
