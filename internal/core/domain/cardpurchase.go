package domain

import "time"

// PurchaseStatus is the lifecycle state of a card purchase installment.
// Wire values match the stored documents.
type PurchaseStatus string

const (
	PurchaseOpen PurchaseStatus = "aberto"
	PurchasePaid PurchaseStatus = "pago"
)

// CardPurchase is one dated, individually payable installment of a
// credit purchase. A purchase of N installments produces N of these in
// a single atomic batch, dated one month apart.
//
// TotalValue is this installment's share; OriginalTotal is the full
// purchase amount, repeated on every installment for display.
type CardPurchase struct {
	PurchaseID        string         `json:"purchaseID"`
	Description       string         `json:"description"`
	CardID            string         `json:"cardID"`
	Category          string         `json:"category"`
	Date              time.Time      `json:"date"`
	TotalValue        Money          `json:"totalValue"`
	InstallmentIndex  int            `json:"installmentIndex"`  // 1..InstallmentsCount
	InstallmentsCount int            `json:"installmentsCount"`
	OriginalTotal     Money          `json:"originalTotal"`
	Status            PurchaseStatus `json:"status"`
}

// IsOpen reports whether the installment still counts against the card
// limit and can be paid.
func (p CardPurchase) IsOpen() bool {
	return p.Status != PurchasePaid
}
