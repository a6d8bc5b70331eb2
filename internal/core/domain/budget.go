package domain

// Budget is a per-(month, category) spending limit.
// The document id IS the natural key, so writing it is an idempotent
// upsert: the latest write wins and at most one row exists per key.
type Budget struct {
	BudgetID string `json:"budgetID"` // "{YYYY-MM}_{category}"
	Month    Month  `json:"month"`
	Category string `json:"category"`
	Limit    Money  `json:"limit"`
}

// BudgetKey builds the natural document id for a (month, category) pair.
func BudgetKey(month Month, category string) string {
	return month.String() + "_" + category
}

// BudgetStatus is the reconciled state of a category against its limit.
type BudgetStatus string

const (
	BudgetOK      BudgetStatus = "ok"
	BudgetWarning BudgetStatus = "warning"     // spent > 75% of limit
	BudgetOver    BudgetStatus = "over_budget" // spent >= limit
	BudgetNoGoal  BudgetStatus = "no_goal"     // no limit set for the month
)

// CategoryBudget is one reconciled row of the monthly budget overview.
type CategoryBudget struct {
	Category  string       `json:"category"`
	Limit     Money        `json:"limit"`
	Spent     Money        `json:"spent"`
	Remaining Money        `json:"remaining"`
	Percent   float64      `json:"percent"`
	Status    BudgetStatus `json:"status"`
}

// ReconcileBudget derives the overview row for a category from its
// aggregated spending and stored limit. A zero limit means no goal was
// set, which is reported distinctly from being under budget.
func ReconcileBudget(category string, limit, spent Money) CategoryBudget {
	row := CategoryBudget{
		Category:  category,
		Limit:     limit,
		Spent:     spent,
		Remaining: limit.Sub(spent),
		Status:    BudgetOK,
	}
	if limit.IsZero() {
		row.Status = BudgetNoGoal
		return row
	}
	row.Percent = float64(spent) / float64(limit) * 100
	switch {
	case row.Percent >= 100:
		row.Status = BudgetOver
	case row.Percent > 75:
		row.Status = BudgetWarning
	}
	return row
}
