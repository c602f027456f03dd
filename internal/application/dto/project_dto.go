package dto

import "time"

// CreateTaskRequest entrada para una taak.
type CreateTaskRequest struct {
	Title    string `json:"titel"`
	Status   string `json:"status"`
	Executor string `json:"uitvoerder"`
	Color    string `json:"kleur"`
	Date     Date   `json:"datum"`
}

// UpdateTaskRequest actualización parcial de una taak.
type UpdateTaskRequest struct {
	Title    *string `json:"titel"`
	Status   *string `json:"status"`
	Executor *string `json:"uitvoerder"`
	Color    *string `json:"kleur"`
	Date     *Date   `json:"datum"`
}

// StatusRequest cuerpo de PUT .../status.
type StatusRequest struct {
	Status string `json:"status"`
}

// InstallersRequest cuerpo de PUT .../installateurs.
type InstallersRequest struct {
	Installers string `json:"installateurs"`
}

// TaskResponse salida de una taak.
type TaskResponse struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project_id"`
	Title     string `json:"titel"`
	Status    string `json:"status"`
	Executor  string `json:"uitvoerder"`
	Color     string `json:"kleur"`
	Date      Date   `json:"datum"`
}

// CreateAppointmentRequest entrada para una afspraak.
type CreateAppointmentRequest struct {
	Title string `json:"titel"`
	Date  Date   `json:"datum"`
	Notes string `json:"notities"`
}

// AppointmentResponse salida de una afspraak.
type AppointmentResponse struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project_id"`
	Title     string `json:"titel"`
	Date      Date   `json:"datum"`
	Notes     string `json:"notities,omitempty"`
}

// ProjectDocumentInput documento declarado al crear el project (solo registro, sin bytes).
type ProjectDocumentInput struct {
	Filename string `json:"bestandsnaam"`
	Path     string `json:"pad"`
}

// CreateProjectRequest entrada para crear un project con sus hijos iniciales.
type CreateProjectRequest struct {
	Name         string                     `json:"projectnaam"`
	CustomerID   int64                      `json:"klant_id"`
	Description  string                     `json:"omschrijving"`
	Street       string                     `json:"straat"`
	PostalCode   string                     `json:"postcode"`
	City         string                     `json:"woonplaats"`
	Status       string                     `json:"status"`
	StartDate    *Date                      `json:"startdatum"`
	EndDate      *Date                      `json:"einddatum"`
	Installers   string                     `json:"installateurs"`
	Tasks        []CreateTaskRequest        `json:"taken"`
	Appointments []CreateAppointmentRequest `json:"afspraken"`
	Documents    []ProjectDocumentInput     `json:"documenten"`
}

// ProjectResponse salida de un project. Los hijos solo se rellenan en el detalle.
type ProjectResponse struct {
	ID           int64                 `json:"id"`
	Name         string                `json:"projectnaam"`
	CustomerID   int64                 `json:"klant_id"`
	Customer     *CustomerResponse     `json:"klant,omitempty"`
	Description  string                `json:"omschrijving"`
	Street       string                `json:"straat"`
	PostalCode   string                `json:"postcode"`
	City         string                `json:"woonplaats"`
	Status       string                `json:"status"`
	StartDate    *Date                 `json:"startdatum"`
	EndDate      *Date                 `json:"einddatum"`
	Installers   string                `json:"installateurs"`
	Tasks        []TaskResponse        `json:"taken"`
	Appointments []AppointmentResponse `json:"afspraken"`
	Documents    []DocumentResponse    `json:"documenten"`
	Folders      []FolderResponse      `json:"mappen"`
	CreatedAt    time.Time             `json:"aangemaakt_op"`
	UpdatedAt    time.Time             `json:"bijgewerkt_op"`
}
