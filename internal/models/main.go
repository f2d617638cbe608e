// Package models defines the core data structures for accounts and tasks.
package models

// Account represents a registered user identity.
type Account struct {
	// ID is the unique identifier assigned by storage.
	ID int64
	// Email is the login email, unique across accounts.
	Email string
	// PasswordHash is the salted bcrypt hash of the account password.
	PasswordHash string
}

// Status is the completion state of a task.
type Status string

const (
	// StatusPending marks a task that has not been completed yet.
	StatusPending Status = "Pending"
	// StatusCompleted marks a task the owner has finished.
	StatusCompleted Status = "Completed"
)

// Toggled returns the opposite status: Pending becomes Completed
// and anything else becomes Pending.
func (s Status) Toggled() Status {
	if s == StatusPending {
		return StatusCompleted
	}
	return StatusPending
}

// Task is a to-do item owned by exactly one account.
type Task struct {
	// ID is the unique identifier assigned by storage.
	ID int64
	// AccountID references the owning account; set at creation,
	// never reassigned.
	AccountID int64
	// Title is the free-text description of the task.
	Title string
	// Priority is a free-text label ("High", "Low", ...); the current
	// design does not validate it against a fixed set.
	Priority string
	// DueDate is the due date, stored as text.
	DueDate string
	// Status is either StatusPending or StatusCompleted.
	Status Status
}
