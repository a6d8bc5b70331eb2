package domain

import "time"

// PaymentMethodBill marks transactions generated by a card bill payment.
const PaymentMethodBill = "payment_bill"

// Transaction is one append-only ledger entry against a wallet.
// WalletName is denormalized for history rendering so deleting a wallet
// does not blank out past entries.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	Description   string          `json:"description"`
	Value         Money           `json:"value"`
	Type          TransactionType `json:"type"`
	Category      string          `json:"category"`
	Date          time.Time       `json:"date"`
	WalletID      string          `json:"walletID"`
	WalletName    string          `json:"walletName"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
}

// SignedValue is the wallet-balance effect of the entry: entrada adds,
// saida subtracts.
func (t Transaction) SignedValue() Money {
	if t.Type == Entrada {
		return t.Value
	}
	return t.Value.Neg()
}
