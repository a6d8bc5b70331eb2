package domain

import "time"

// DeletedCardName labels purchases whose card no longer exists.
// Card deletion does not cascade to its purchases.
const DeletedCardName = "Cartão Excluído"

// Card is a credit card with its billing cycle configuration.
// ClosingDay and DueDay drive the statement projection: a purchase on or
// after the closing day bills one month later, and a due day numerically
// before the closing day pushes the bill one further month out.
type Card struct {
	CardID     string    `json:"cardID"`
	Name       string    `json:"name"`
	Color      string    `json:"color"`
	Flag       string    `json:"flag"`
	Limit      Money     `json:"limit"`
	ClosingDay int       `json:"closingDay"` // 1..31
	DueDay     int       `json:"dueDay"`     // 1..31
	CreatedAt  time.Time `json:"createdAt"`
}

// CardMetrics is the advisory credit view derived from open purchases.
// It is recomputed on every read and can be stale by the time a payment
// batch commits; the authoritative state is the purchase documents.
type CardMetrics struct {
	CardID         string  `json:"cardID"`
	Limit          Money   `json:"limit"`
	Used           Money   `json:"used"`
	Available      Money   `json:"available"`
	PercentageUsed float64 `json:"percentageUsed"`
}
