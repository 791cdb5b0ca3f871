package model

// ExpenseFrequency is how often a fixed expense recurs.
type ExpenseFrequency string

const (
	FrequencyMonthly   ExpenseFrequency = "mensual"
	FrequencyQuarterly ExpenseFrequency = "trimestral"
	FrequencyYearly    ExpenseFrequency = "anual"
)

// FixedExpense is a recurring cost (rent, insurance). Soft-deleted via Active.
type FixedExpense struct {
	ID        int64            `json:"id"`
	Concept   string           `json:"concept"`
	Amount    float64          `json:"amount"`
	Frequency ExpenseFrequency `json:"frequency"`
	Active    bool             `json:"active"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt string           `json:"created_at,omitempty"`
}

// VariableExpense is a one-off purchase. Hard-deleted on request.
type VariableExpense struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`
	Concept   string  `json:"concept"`
	Amount    float64 `json:"amount"`
	Category  string  `json:"category,omitempty"`
	Notes     string  `json:"notes,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
}

type CreateFixedExpenseRequest struct {
	Concept   string  `json:"concept" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Frequency string  `json:"frequency" binding:"required,oneof=mensual trimestral anual"`
	Notes     string  `json:"notes"`
}

type CreateVariableExpenseRequest struct {
	Date     string  `json:"date" binding:"required"`
	Concept  string  `json:"concept" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Category string  `json:"category"`
	Notes    string  `json:"notes"`
}
