package sqlite

import (
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// Modelos gorm: tablas y columnas en neerlandés, igual que el esquema de postgres.

type customerModel struct {
	ID               int64     `gorm:"column:id;primaryKey;autoIncrement"`
	FirstName        string    `gorm:"column:voornaam;not null"`
	LastName         string    `gorm:"column:achternaam;not null;index"`
	Street           string    `gorm:"column:straatnaam"`
	HouseNumber      string    `gorm:"column:huisnummer"`
	PostalCode       string    `gorm:"column:postcode"`
	City             string    `gorm:"column:woonplaats"`
	Email            string    `gorm:"column:email;not null;uniqueIndex"`
	Phone            string    `gorm:"column:telefoon"`
	CustomerNumber   string    `gorm:"column:klantnummer;not null;uniqueIndex"`
	CustomerType     string    `gorm:"column:klanttype;not null"`
	RegistrationDate time.Time `gorm:"column:registratiedatum"`
}

func (customerModel) TableName() string { return "klanten" }

type projectModel struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string     `gorm:"column:projectnaam;not null"`
	CustomerID  int64      `gorm:"column:klant_id;index"`
	Description string     `gorm:"column:omschrijving"`
	Street      string     `gorm:"column:straat"`
	PostalCode  string     `gorm:"column:postcode"`
	City        string     `gorm:"column:woonplaats"`
	Status      string     `gorm:"column:status;not null"`
	StartDate   *time.Time `gorm:"column:startdatum"`
	EndDate     *time.Time `gorm:"column:einddatum"`
	Installers  string     `gorm:"column:installateurs"`
	CreatedAt   time.Time  `gorm:"column:aangemaakt_op;autoCreateTime:false"`
	UpdatedAt   time.Time  `gorm:"column:bijgewerkt_op;autoUpdateTime:false"`
}

func (projectModel) TableName() string { return "projecten" }

type taskModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectID int64     `gorm:"column:project_id;not null;index"`
	Title     string    `gorm:"column:titel;not null"`
	Status    string    `gorm:"column:status;not null"`
	Executor  string    `gorm:"column:uitvoerder"`
	Color     string    `gorm:"column:kleur"`
	Date      time.Time `gorm:"column:datum"`
}

func (taskModel) TableName() string { return "taken" }

type appointmentModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectID int64     `gorm:"column:project_id;not null;index"`
	Title     string    `gorm:"column:titel;not null"`
	Date      time.Time `gorm:"column:datum"`
	Notes     string    `gorm:"column:notities"`
}

func (appointmentModel) TableName() string { return "afspraken" }

type folderModel struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectID int64  `gorm:"column:project_id;not null;uniqueIndex:idx_documentmappen_project_naam"`
	Name      string `gorm:"column:naam;not null;uniqueIndex:idx_documentmappen_project_naam"`
}

func (folderModel) TableName() string { return "documentmappen" }

type documentModel struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectID   int64  `gorm:"column:project_id;not null;index"`
	FolderID    *int64 `gorm:"column:map_id;index"`
	Filename    string `gorm:"column:bestandsnaam;not null"`
	Path        string `gorm:"column:pad;not null;index"`
	ContentType string `gorm:"column:content_type"`
}

func (documentModel) TableName() string { return "documenten" }

func allModels() []any {
	return []any{
		&customerModel{}, &projectModel{}, &taskModel{},
		&appointmentModel{}, &folderModel{}, &documentModel{},
	}
}

// ── mapeo entidad <-> modelo ──────────────────────────────────────────────────

func customerToModel(c *entity.Customer) customerModel {
	return customerModel{
		ID: c.ID, FirstName: c.FirstName, LastName: c.LastName,
		Street: c.Street, HouseNumber: c.HouseNumber, PostalCode: c.PostalCode, City: c.City,
		Email: c.Email, Phone: c.Phone, CustomerNumber: c.CustomerNumber,
		CustomerType: string(c.CustomerType), RegistrationDate: c.RegistrationDate.UTC(),
	}
}

func (m *customerModel) toEntity() *entity.Customer {
	return &entity.Customer{
		ID: m.ID, FirstName: m.FirstName, LastName: m.LastName,
		Street: m.Street, HouseNumber: m.HouseNumber, PostalCode: m.PostalCode, City: m.City,
		Email: m.Email, Phone: m.Phone, CustomerNumber: m.CustomerNumber,
		CustomerType: entity.CustomerType(m.CustomerType), RegistrationDate: m.RegistrationDate.UTC(),
	}
}

func projectToModel(p *entity.Project) projectModel {
	return projectModel{
		ID: p.ID, Name: p.Name, CustomerID: p.CustomerID, Description: p.Description,
		Street: p.Street, PostalCode: p.PostalCode, City: p.City, Status: string(p.Status),
		StartDate: utcPtr(p.StartDate), EndDate: utcPtr(p.EndDate), Installers: p.Installers,
		CreatedAt: p.CreatedAt.UTC(), UpdatedAt: p.UpdatedAt.UTC(),
	}
}

func (m *projectModel) toEntity() *entity.Project {
	return &entity.Project{
		ID: m.ID, Name: m.Name, CustomerID: m.CustomerID, Description: m.Description,
		Street: m.Street, PostalCode: m.PostalCode, City: m.City, Status: entity.ProjectStatus(m.Status),
		StartDate: utcPtr(m.StartDate), EndDate: utcPtr(m.EndDate), Installers: m.Installers,
		CreatedAt: m.CreatedAt.UTC(), UpdatedAt: m.UpdatedAt.UTC(),
	}
}

func taskToModel(t *entity.Task) taskModel {
	return taskModel{
		ID: t.ID, ProjectID: t.ProjectID, Title: t.Title, Status: string(t.Status),
		Executor: t.Executor, Color: t.Color, Date: t.Date.UTC(),
	}
}

func (m *taskModel) toEntity() *entity.Task {
	return &entity.Task{
		ID: m.ID, ProjectID: m.ProjectID, Title: m.Title, Status: entity.TaskStatus(m.Status),
		Executor: m.Executor, Color: m.Color, Date: m.Date.UTC(),
	}
}

func (m *appointmentModel) toEntity() *entity.Appointment {
	return &entity.Appointment{ID: m.ID, ProjectID: m.ProjectID, Title: m.Title, Date: m.Date.UTC(), Notes: m.Notes}
}

func (m *folderModel) toEntity() *entity.DocumentFolder {
	return &entity.DocumentFolder{ID: m.ID, ProjectID: m.ProjectID, Name: m.Name}
}

func documentToModel(d *entity.Document) documentModel {
	return documentModel{
		ID: d.ID, ProjectID: d.ProjectID, FolderID: d.FolderID,
		Filename: d.Filename, Path: d.Path, ContentType: d.ContentType,
	}
}

func (m *documentModel) toEntity() *entity.Document {
	return &entity.Document{
		ID: m.ID, ProjectID: m.ProjectID, FolderID: m.FolderID,
		Filename: m.Filename, Path: m.Path, ContentType: m.ContentType,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
