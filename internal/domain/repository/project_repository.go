package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ProjectRepository persiste la fila del project (sin hijos).
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id int64) (*entity.Project, error)
	// List ordena por fecha de inicio ascendente (sin fecha al final).
	List(ctx context.Context, limit, offset int) ([]*entity.Project, error)
	Update(ctx context.Context, project *entity.Project) error
	Delete(ctx context.Context, id int64) error
	CountByCustomer(ctx context.Context, customerID int64) (int, error)
}

// TaskRepository persiste taken.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id int64) (*entity.Task, error)
	ListByProject(ctx context.Context, projectID int64) ([]*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, id int64) error
	DeleteByProject(ctx context.Context, projectID int64) error
}

// AppointmentRepository persiste afspraken.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	ListByProject(ctx context.Context, projectID int64) ([]*entity.Appointment, error)
	Delete(ctx context.Context, id int64) error
	DeleteByProject(ctx context.Context, projectID int64) error
}
