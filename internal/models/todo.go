package models

import "time"

// Todo statuses. The store only ever holds one of these two values.
const (
	StatusTodo = "todo"
	StatusDone = "done"
)

// ValidStatus reports whether s is an accepted todo status.
func ValidStatus(s string) bool {
	return s == StatusTodo || s == StatusDone
}

// Todo represents a single task owned by a user. OwnerUUID is set at
// creation and never reassigned.
type Todo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	OwnerUUID   string    `json:"ownerUuid"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TodoUpdate carries a partial update. Nil fields are left untouched so
// an absent JSON key never overwrites a stored value.
type TodoUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}
