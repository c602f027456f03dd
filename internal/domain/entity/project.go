package entity

import "time"

// ProjectStatus estado de un project. No hay grafo de transiciones: cualquier estado puede pasar a cualquiera.
type ProjectStatus string

const (
	ProjectStatusScheduled  ProjectStatus = "ingepland"
	ProjectStatusInProgress ProjectStatus = "bezig"
	ProjectStatusCompleted  ProjectStatus = "afgerond"
)

// Valid indica si el estado pertenece al conjunto cerrado.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusScheduled, ProjectStatusInProgress, ProjectStatusCompleted:
		return true
	}
	return false
}

// Project es la raíz del agregado: posee Tasks, Appointments, DocumentFolders y Documents.
// CustomerID es una referencia, la klant no pertenece al project.
type Project struct {
	ID          int64
	Name        string
	CustomerID  int64
	Description string
	Street      string
	PostalCode  string
	City        string
	Status      ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Installers  string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Hijos cargados por GetProject; vacíos en listados.
	Customer     *Customer
	Tasks        []*Task
	Appointments []*Appointment
	Documents    []*Document
	Folders      []*DocumentFolder
}

// Touch refresca UpdatedAt; se llama en cada mutación del project.
func (p *Project) Touch(now time.Time) {
	p.UpdatedAt = now
}
