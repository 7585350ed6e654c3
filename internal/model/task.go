package model

import "time"

// Task is the storage record for a single to-do item.
// Priority holds the plain integer stored in the tasks table.
type Task struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"not null;index"`
	Description *string
	Priority    int       `gorm:"not null"`
	DueDate     time.Time `gorm:"column:due_date;not null;default:CURRENT_TIMESTAMP"`
	Completed   bool      `gorm:"not null;default:false"`
}

// TaskFilter narrows List. Nil fields impose no constraint; set fields are ANDed.
type TaskFilter struct {
	Completed *bool
	Priority  *int
}
