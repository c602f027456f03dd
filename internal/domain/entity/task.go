package entity

import "time"

// TaskStatus estado de una taak.
type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "open"
	TaskStatusInProgress TaskStatus = "bezig"
	TaskStatusCompleted  TaskStatus = "afgerond"
)

// DefaultTaskColor color HEX por defecto de una taak.
const DefaultTaskColor = "#000000"

// Valid indica si el estado pertenece al conjunto cerrado.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Task pertenece a exactamente un project.
type Task struct {
	ID        int64
	ProjectID int64
	Title     string
	Status    TaskStatus
	Executor  string
	Color     string
	Date      time.Time
}

// Appointment (afspraak) pertenece a exactamente un project.
type Appointment struct {
	ID        int64
	ProjectID int64
	Title     string
	Date      time.Time
	Notes     string
}
