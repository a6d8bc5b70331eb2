package domain

// FixedExpense is a recurring expense template (rent, utilities).
// Templates are never dated or marked done; "realizing" one creates a
// concrete transaction or card purchase for the current period.
type FixedExpense struct {
	ExpenseID   string `json:"expenseID"`
	Description string `json:"description"`
	Value       Money  `json:"value"`
}

// FixedIncome is a recurring income template (salary).
type FixedIncome struct {
	IncomeID    string `json:"incomeID"`
	Description string `json:"description"`
	Value       Money  `json:"value"`
}

// Forecast is the fixed-items outlook shown on the dashboard:
// what is expected to come in, go out, and remain each month.
type Forecast struct {
	Incomes  Money `json:"incomes"`
	Expenses Money `json:"expenses"`
	Net      Money `json:"net"`
}
