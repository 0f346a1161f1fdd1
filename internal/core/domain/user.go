package domain

// User is the owning principal for accounts, transactions, budgets and goals.
// Authentication is out of scope; the record exists for referential integrity.
type User struct {
	UserID string `json:"userID"` // Primary Key (UUID)
	Name   string `json:"name"`
	Email  string `json:"email"`
	AuditFields
}
