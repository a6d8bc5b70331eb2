package dto

import (
	"time"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWalletRequest defines the data needed to create a new wallet.
type CreateWalletRequest struct {
	Name           string            `json:"name" binding:"required"`
	Type           domain.WalletType `json:"type" binding:"required,oneof=conta_corrente vale_alimentacao dinheiro poupanca"`
	InitialBalance decimal.Decimal   `json:"initialBalance"` // Optional, defaults to zero
	Color          string            `json:"color"`
}

// WalletResponse defines the data returned for a wallet.
type WalletResponse struct {
	WalletID       string            `json:"walletID"`
	Name           string            `json:"name"`
	Type           domain.WalletType `json:"type"`
	CurrentBalance decimal.Decimal   `json:"currentBalance"`
	Color          string            `json:"color"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// ToWalletResponse converts a domain.Wallet to WalletResponse DTO.
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		WalletID:       w.WalletID,
		Name:           w.Name,
		Type:           w.Type,
		CurrentBalance: w.CurrentBalance.Decimal(),
		Color:          w.Color,
		CreatedAt:      w.CreatedAt,
	}
}

// ToWalletResponses converts a slice of wallets.
func ToWalletResponses(wallets []domain.Wallet) []WalletResponse {
	out := make([]WalletResponse, len(wallets))
	for i := range wallets {
		out[i] = ToWalletResponse(&wallets[i])
	}
	return out
}
