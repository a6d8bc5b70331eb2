package domain

import "time"

// WalletType is the kind of account a wallet represents.
type WalletType string

const (
	Checking    WalletType = "conta_corrente"
	FoodVoucher WalletType = "vale_alimentacao"
	Cash        WalletType = "dinheiro"
	Savings     WalletType = "poupanca"
)

// Wallet is a cash or bank account shared by the couple.
//
// CurrentBalance is a cached derived value: at any quiescent point it
// equals InitialBalance plus the signed sum of all realized
// transactions referencing the wallet. It is mutated only through
// atomic increments issued by the ledger service, never set directly by
// callers (the reconciliation backstop in the wallet service is the
// single exception). InitialBalance is the opening balance the wallet
// was created with; it never changes and anchors reconciliation.
type Wallet struct {
	WalletID       string     `json:"walletID"`
	Name           string     `json:"name"`
	Type           WalletType `json:"type"`
	CurrentBalance Money      `json:"currentBalance"`
	InitialBalance Money      `json:"initialBalance"`
	Color          string     `json:"color"`
	CreatedAt      time.Time  `json:"createdAt"`
}
