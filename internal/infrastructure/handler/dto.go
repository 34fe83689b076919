package handler

// CreateExpenseRequest represents the request body for creating an expense
type CreateExpenseRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"expense_date"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
}

// UpdateExpenseRequest represents the request body for a partial update.
// Absent fields are left unchanged.
type UpdateExpenseRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Date        *string  `json:"expense_date,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
}

// ExpenseResponse represents the response for expense endpoints
type ExpenseResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Date        string  `json:"expense_date"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
}

// ConvertedAmount carries an expense's value in the requested currency
type ConvertedAmount struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	IsEstimated bool    `json:"is_estimated"`
}

// ConvertedExpenseResponse is an expense plus its converted value
type ConvertedExpenseResponse struct {
	ExpenseResponse
	Converted *ConvertedAmount `json:"converted,omitempty"`
}

// CreateExpenseResponse represents the response for the create endpoint
type CreateExpenseResponse struct {
	ID string `json:"id"`
}

// RateTableResponse represents a resolved rate table
type RateTableResponse struct {
	Date        string             `json:"date"`
	RetrievedAt string             `json:"retrieved_at"`
	Rates       map[string]float64 `json:"rates"`
	CacheHit    bool               `json:"cache_hit"`
}

// CategoryRequest represents the request body for category endpoints
type CategoryRequest struct {
	Name     *string `json:"name,omitempty"`
	ParentID *string `json:"parent_id,omitempty"`
}

// CategoryResponse represents a category
type CategoryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}
