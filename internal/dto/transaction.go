package dto

import (
	"time"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a
// transaction against a wallet.
type CreateTransactionRequest struct {
	Description string                 `json:"description" binding:"required"`
	Value       decimal.Decimal        `json:"value" binding:"required"`
	Type        domain.TransactionType `json:"type" binding:"required,oneof=entrada saida"`
	Category    string                 `json:"category" binding:"required"`
	Date        *time.Time             `json:"date"` // Optional, defaults to now
	WalletID    string                 `json:"walletID" binding:"required"`
}

// TransferRequest defines the data needed to move money between wallets.
type TransferRequest struct {
	SourceID string          `json:"sourceID" binding:"required"`
	DestID   string          `json:"destID" binding:"required"`
	Value    decimal.Decimal `json:"value" binding:"required"`
	Date     *time.Time      `json:"date"` // Optional, defaults to now
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	Description   string                 `json:"description"`
	Value         decimal.Decimal        `json:"value"`
	Type          domain.TransactionType `json:"type"`
	Category      string                 `json:"category"`
	Date          time.Time              `json:"date"`
	WalletID      string                 `json:"walletID"`
	WalletName    string                 `json:"walletName"`
	PaymentMethod string                 `json:"paymentMethod,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Description:   t.Description,
		Value:         t.Value.Decimal(),
		Type:          t.Type,
		Category:      t.Category,
		Date:          t.Date,
		WalletID:      t.WalletID,
		WalletName:    t.WalletName,
		PaymentMethod: t.PaymentMethod,
	}
}

// ToTransactionResponses converts a slice of ledger entries.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}
