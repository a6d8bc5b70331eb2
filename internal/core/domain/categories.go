package domain

// TransactionType distinguishes money entering or leaving a wallet.
// Wire values are kept in Portuguese, matching the stored documents.
type TransactionType string

const (
	Entrada TransactionType = "entrada"
	Saida   TransactionType = "saida"
)

// Categories carried on stored documents. The bookkeeping ones below are
// written by the balance mutation engine itself and get special handling
// in aggregation.
const (
	// CategoryCardPayment marks the wallet-side leg of a card bill
	// payment; excluded from category spending so the expense is not
	// counted twice (the card purchase already carries it).
	CategoryCardPayment = "Pagamento de Cartão"

	// CategoryTransfer marks both legs of an inter-wallet transfer.
	CategoryTransfer = "Transferência"

	// CategoryBills is stamped on realized fixed expenses.
	CategoryBills = "Contas"

	// CategoryFixedIncome is stamped on realized fixed incomes.
	CategoryFixedIncome = "Receita Fixa"

	// CategoryOther is the fallback bucket for unknown categories.
	CategoryOther = "Outros"
)

// ExpenseCategories is the fixed category set budget rows are built over.
var ExpenseCategories = []string{
	"Alimentação",
	"Mercado",
	CategoryBills,
	"Lazer",
	"Investimentos",
	"Transporte",
	"Saúde",
	"Eletrônicos",
	CategoryCardPayment,
	CategoryOther,
}

// IncomeCategories are the selectable entrada categories.
var IncomeCategories = []string{
	"Salário",
	"Renda Extra",
	"Investimentos (Resgate)",
	"Presente",
	CategoryOther,
}

// IsExpenseCategory reports whether cat is one of the known saida buckets.
func IsExpenseCategory(cat string) bool {
	for _, c := range ExpenseCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// IsIncomeCategory reports whether cat is a selectable entrada category.
// CategoryFixedIncome is not in the selectable set; it is stamped by the
// ledger service when realizing a fixed income.
func IsIncomeCategory(cat string) bool {
	for _, c := range IncomeCategories {
		if c == cat {
			return true
		}
	}
	return false
}
