package model

import "time"

// DateLayout is the dd.mm.yyyy layout used for due dates in seed data,
// selectors and console output.
const DateLayout = "02.01.2006"

// Todo is a single ToDo record persisted in the todo table.
type Todo struct {
	ID          int64     `json:"id" db:"id"`
	Topic       string    `json:"topic" db:"topic"`
	Done        bool      `json:"done" db:"done"`
	DueDate     time.Time `json:"due_date" db:"due_date"`
	Description string    `json:"description" db:"description"`
}
