// Package project implementa el agregado Project: creación en cascada de sus hijos,
// cambios de estado, taken, afspraken, documentmappen y documentos.
package project

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/ports"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/domain/storagekey"
	"github.com/jhoicas/backoffice-api/internal/domain/validation"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

// ProjectUseCase casos de uso de la raíz del agregado y de sus taken/afspraken.
type ProjectUseCase struct {
	repos repository.Set
	tx    ports.TxRunner
	store ports.DocumentStore
	log   *logger.Logger
	now   func() time.Time
}

// NewProjectUseCase construye el caso de uso. repos se usa para lecturas fuera de transacción.
func NewProjectUseCase(repos repository.Set, tx ports.TxRunner, store ports.DocumentStore, log *logger.Logger) *ProjectUseCase {
	return &ProjectUseCase{repos: repos, tx: tx, store: store, log: log, now: time.Now}
}

// Create inserta el project y todos los hijos del payload en una única transacción.
func (uc *ProjectUseCase) Create(ctx context.Context, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	now := uc.now()
	p, err := projectFromRequest(in, now)
	if err != nil {
		return nil, err
	}
	tasks, err := tasksFromRequests(in.Tasks)
	if err != nil {
		return nil, err
	}
	appointments, err := appointmentsFromRequests(in.Appointments)
	if err != nil {
		return nil, err
	}
	docs, err := documentsFromInputs(in.Documents)
	if err != nil {
		return nil, err
	}

	err = uc.tx.Run(ctx, func(repos repository.Set) error {
		customer, err := repos.Customers.GetByID(ctx, p.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return fmt.Errorf("klant %d: %w", p.CustomerID, domain.ErrNotFound)
		}
		p.Customer = customer
		if err := repos.Projects.Create(ctx, p); err != nil {
			return err
		}
		for _, t := range tasks {
			t.ProjectID = p.ID
			if err := repos.Tasks.Create(ctx, t); err != nil {
				return err
			}
		}
		for _, a := range appointments {
			a.ProjectID = p.ID
			if err := repos.Appointments.Create(ctx, a); err != nil {
				return err
			}
		}
		var pathErrs []error
		for i, d := range docs {
			key, err := storagekey.Within(fmt.Sprintf("documenten[%d].pad", i), p.ID, d.Path)
			if err != nil {
				pathErrs = append(pathErrs, err)
				continue
			}
			d.ProjectID, d.Path = p.ID, key
		}
		if len(pathErrs) > 0 {
			return errors.Join(pathErrs...)
		}
		for _, d := range docs {
			if err := repos.Documents.Create(ctx, d); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	p.Tasks, p.Appointments, p.Documents = tasks, appointments, docs
	return toProjectResponse(p), nil
}

// List devuelve una página de projecten ordenada por startdatum.
func (uc *ProjectUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.ProjectResponse, error) {
	page.DefaultPage()
	list, err := uc.repos.Projects.List(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProjectResponse(p))
	}
	return out, nil
}

// GetByID devuelve el project con klant, taken, afspraken, documenten y mappen.
func (uc *ProjectUseCase) GetByID(ctx context.Context, id int64) (*dto.ProjectResponse, error) {
	p, err := loadProject(ctx, uc.repos, id)
	if err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

// UpdateStatus cambia el estado sin restricciones de transición.
func (uc *ProjectUseCase) UpdateStatus(ctx context.Context, id int64, status string) (*dto.ProjectResponse, error) {
	s, err := validation.ParseProjectStatus(status)
	if err != nil {
		return nil, err
	}
	return uc.mutate(ctx, id, func(p *entity.Project) { p.Status = s })
}

// UpdateInstallers reemplaza el texto libre de installateurs.
func (uc *ProjectUseCase) UpdateInstallers(ctx context.Context, id int64, installers string) (*dto.ProjectResponse, error) {
	return uc.mutate(ctx, id, func(p *entity.Project) { p.Installers = installers })
}

func (uc *ProjectUseCase) mutate(ctx context.Context, id int64, apply func(*entity.Project)) (*dto.ProjectResponse, error) {
	p, err := uc.repos.Projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	apply(p)
	p.Touch(uc.now())
	if err := uc.repos.Projects.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

// Delete elimina el project y, en la misma transacción, todos sus hijos.
// Los ficheros se borran después del commit. Si el project no existe no hace nada.
func (uc *ProjectUseCase) Delete(ctx context.Context, id int64) error {
	var docs []*entity.Document
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		p, err := repos.Projects.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return nil
		}
		if docs, err = repos.Documents.ListByProject(ctx, id); err != nil {
			return err
		}
		if err := repos.Documents.DeleteByProject(ctx, id); err != nil {
			return err
		}
		if err := repos.Folders.DeleteByProject(ctx, id); err != nil {
			return err
		}
		if err := repos.Tasks.DeleteByProject(ctx, id); err != nil {
			return err
		}
		if err := repos.Appointments.DeleteByProject(ctx, id); err != nil {
			return err
		}
		return repos.Projects.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	removeObjects(ctx, uc.store, uc.log, docs)
	return nil
}

// AddTask añade una taak a un project existente.
func (uc *ProjectUseCase) AddTask(ctx context.Context, projectID int64, in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	task, err := taskFromRequest("", in)
	if err != nil {
		return nil, err
	}
	task.ProjectID = projectID
	err = uc.tx.Run(ctx, func(repos repository.Set) error {
		if err := requireProject(ctx, repos, projectID); err != nil {
			return err
		}
		return repos.Tasks.Create(ctx, task)
	})
	if err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

// UpdateTaskStatus cambia el estado de una taak.
func (uc *ProjectUseCase) UpdateTaskStatus(ctx context.Context, taskID int64, status string) (*dto.TaskResponse, error) {
	if _, err := validation.ParseTaskStatus(status); err != nil {
		return nil, err
	}
	return uc.UpdateTask(ctx, taskID, dto.UpdateTaskRequest{Status: &status})
}

// UpdateTask aplica una actualización parcial (solo los campos enviados).
func (uc *ProjectUseCase) UpdateTask(ctx context.Context, taskID int64, in dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := uc.repos.Tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrNotFound
	}
	var errs []error
	if in.Title != nil {
		if err := validation.Required("titel", *in.Title); err != nil {
			errs = append(errs, err)
		}
		task.Title = *in.Title
	}
	if in.Status != nil {
		s, err := validation.ParseTaskStatus(*in.Status)
		if err != nil {
			errs = append(errs, err)
		}
		task.Status = s
	}
	if in.Executor != nil {
		task.Executor = *in.Executor
	}
	if in.Color != nil {
		if err := validation.ValidateColor(*in.Color); err != nil {
			errs = append(errs, err)
		}
		task.Color = *in.Color
	}
	if in.Date != nil {
		if in.Date.IsZero() {
			errs = append(errs, &domain.FieldError{Field: "datum", Message: "Veld is verplicht."})
		}
		task.Date = in.Date.Time
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if err := uc.repos.Tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

// DeleteTask elimina una taak; si no existe no hace nada.
func (uc *ProjectUseCase) DeleteTask(ctx context.Context, taskID int64) error {
	return uc.repos.Tasks.Delete(ctx, taskID)
}

// AddAppointment añade una afspraak a un project existente.
func (uc *ProjectUseCase) AddAppointment(ctx context.Context, projectID int64, in dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	a, err := appointmentFromRequest("", in)
	if err != nil {
		return nil, err
	}
	a.ProjectID = projectID
	err = uc.tx.Run(ctx, func(repos repository.Set) error {
		if err := requireProject(ctx, repos, projectID); err != nil {
			return err
		}
		return repos.Appointments.Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return toAppointmentResponse(a), nil
}

// DeleteAppointment elimina una afspraak; si no existe no hace nada.
func (uc *ProjectUseCase) DeleteAppointment(ctx context.Context, id int64) error {
	return uc.repos.Appointments.Delete(ctx, id)
}

func requireProject(ctx context.Context, repos repository.Set, id int64) error {
	p, err := repos.Projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// loadProject carga el project con todos sus hijos. Los documentos de cada map se
// agrupan en memoria a partir de la lista del project.
func loadProject(ctx context.Context, repos repository.Set, id int64) (*entity.Project, error) {
	p, err := repos.Projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.Customer, err = repos.Customers.GetByID(ctx, p.CustomerID); err != nil {
		return nil, err
	}
	if p.Tasks, err = repos.Tasks.ListByProject(ctx, id); err != nil {
		return nil, err
	}
	if p.Appointments, err = repos.Appointments.ListByProject(ctx, id); err != nil {
		return nil, err
	}
	if p.Documents, err = repos.Documents.ListByProject(ctx, id); err != nil {
		return nil, err
	}
	if p.Folders, err = repos.Folders.ListByProject(ctx, id); err != nil {
		return nil, err
	}
	attachDocuments(p.Folders, p.Documents)
	return p, nil
}

func attachDocuments(folders []*entity.DocumentFolder, docs []*entity.Document) {
	byID := make(map[int64]*entity.DocumentFolder, len(folders))
	for _, f := range folders {
		f.Documents = nil
		byID[f.ID] = f
	}
	for _, d := range docs {
		if d.FolderID == nil {
			continue
		}
		if f, ok := byID[*d.FolderID]; ok {
			f.Documents = append(f.Documents, d)
		}
	}
}

// removeObjects borra los ficheros de documentos ya eliminados de la BD.
// Un fallo aquí no revierte el borrado: se registra como warning.
func removeObjects(ctx context.Context, store ports.DocumentStore, log *logger.Logger, docs []*entity.Document) {
	for _, d := range docs {
		if strings.TrimSpace(d.Path) == "" {
			continue
		}
		if err := store.Delete(ctx, d.Path); err != nil && !errors.Is(err, domain.ErrNotFound) {
			log.Warn().Err(err).Int64("document_id", d.ID).Str("path", d.Path).Msg("bestand niet verwijderd")
		}
	}
}

func projectFromRequest(in dto.CreateProjectRequest, now time.Time) (*entity.Project, error) {
	var errs []error
	if err := validation.Required("projectnaam", in.Name); err != nil {
		errs = append(errs, err)
	}
	if in.CustomerID <= 0 {
		errs = append(errs, &domain.FieldError{Field: "klant_id", Message: "Veld is verplicht."})
	}
	status := entity.ProjectStatusScheduled
	if in.Status != "" {
		s, err := validation.ParseProjectStatus(in.Status)
		if err != nil {
			errs = append(errs, err)
		}
		status = s
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &entity.Project{
		Name:        in.Name,
		CustomerID:  in.CustomerID,
		Description: in.Description,
		Street:      in.Street,
		PostalCode:  in.PostalCode,
		City:        in.City,
		Status:      status,
		StartDate:   in.StartDate.TimePtr(),
		EndDate:     in.EndDate.TimePtr(),
		Installers:  in.Installers,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func tasksFromRequests(in []dto.CreateTaskRequest) ([]*entity.Task, error) {
	out := make([]*entity.Task, 0, len(in))
	var errs []error
	for i, req := range in {
		t, err := taskFromRequest(fmt.Sprintf("taken[%d].", i), req)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, t)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// taskFromRequest aplica valores por defecto (status open, kleur #000000) y valida.
// prefix antecede el nombre de campo en los errores de listas anidadas.
func taskFromRequest(prefix string, in dto.CreateTaskRequest) (*entity.Task, error) {
	var errs []error
	if err := validation.Required(prefix+"titel", in.Title); err != nil {
		errs = append(errs, err)
	}
	status := entity.TaskStatusOpen
	if in.Status != "" {
		s, err := validation.ParseTaskStatus(in.Status)
		if err != nil {
			errs = append(errs, prefixed(prefix, err))
		}
		status = s
	}
	color := entity.DefaultTaskColor
	if in.Color != "" {
		if err := validation.ValidateColor(in.Color); err != nil {
			errs = append(errs, prefixed(prefix, err))
		}
		color = in.Color
	}
	if in.Date.IsZero() {
		errs = append(errs, &domain.FieldError{Field: prefix + "datum", Message: "Veld is verplicht."})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &entity.Task{
		Title:    in.Title,
		Status:   status,
		Executor: in.Executor,
		Color:    color,
		Date:     in.Date.Time,
	}, nil
}

func appointmentsFromRequests(in []dto.CreateAppointmentRequest) ([]*entity.Appointment, error) {
	out := make([]*entity.Appointment, 0, len(in))
	var errs []error
	for i, req := range in {
		a, err := appointmentFromRequest(fmt.Sprintf("afspraken[%d].", i), req)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, a)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

func appointmentFromRequest(prefix string, in dto.CreateAppointmentRequest) (*entity.Appointment, error) {
	var errs []error
	if err := validation.Required(prefix+"titel", in.Title); err != nil {
		errs = append(errs, err)
	}
	if in.Date.IsZero() {
		errs = append(errs, &domain.FieldError{Field: prefix + "datum", Message: "Veld is verplicht."})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &entity.Appointment{Title: in.Title, Date: in.Date.Time, Notes: in.Notes}, nil
}

func documentsFromInputs(in []dto.ProjectDocumentInput) ([]*entity.Document, error) {
	out := make([]*entity.Document, 0, len(in))
	var errs []error
	for i, d := range in {
		prefix := fmt.Sprintf("documenten[%d].", i)
		if err := validation.Required(prefix+"bestandsnaam", d.Filename); err != nil {
			errs = append(errs, err)
		}
		if err := validation.Required(prefix+"pad", d.Path); err != nil {
			errs = append(errs, err)
		}
		out = append(out, &entity.Document{Filename: d.Filename, Path: d.Path})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

func prefixed(prefix string, err error) error {
	var fe *domain.FieldError
	if prefix == "" || !errors.As(err, &fe) {
		return err
	}
	return &domain.FieldError{Field: prefix + fe.Field, Message: fe.Message}
}
