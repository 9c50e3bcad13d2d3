package adminmodel

// DefaultHistoryLimit is the page size used when none is requested
const DefaultHistoryLimit = 10

type CashBalance struct {
	Balance float64 `json:"balance"`
}

// TransactionType says whether a cash balance update adds or removes funds
type TransactionType string

const (
	Debit  TransactionType = "debit"
	Credit TransactionType = "credit"
)

// UpdateCashBalanceRequest is a ledger entry. Status true credits the balance.
type UpdateCashBalanceRequest struct {
	Status      bool    `json:"status"`
	Value       float64 `json:"value"`
	Description string  `json:"description"`
}

// NewCashBalanceUpdate builds a ledger entry from a transaction type
func NewCashBalanceUpdate(t TransactionType, value float64, description string) UpdateCashBalanceRequest {
	return UpdateCashBalanceRequest{
		Status:      t == Credit,
		Value:       value,
		Description: description,
	}
}

type Role struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type HistoryUser struct {
	ID           int     `json:"id"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Username     string  `json:"username"`
	Role         Role    `json:"role"`
	Active       string  `json:"active"`
	RegisteredAt string  `json:"registered_at"`
	Contact      *string `json:"contact"`
}

type CashBalanceHistoryItem struct {
	ID            int         `json:"id"`
	Status        bool        `json:"status"`
	Value         float64     `json:"value"`
	Description   string      `json:"description"`
	CreatedBy     int         `json:"created_by"`
	CreatedAt     string      `json:"created_at"`
	CreatedByUser HistoryUser `json:"created_by_user"`
}

// CashBalanceHistory is one cursor page of the ledger
type CashBalanceHistory struct {
	Items      []CashBalanceHistoryItem `json:"items"`
	NextCursor *int                     `json:"next_cursor"`
	HasMore    bool                     `json:"has_more"`
}

type CashBalanceHistoryParams struct {
	Limit  int
	Cursor string
}
