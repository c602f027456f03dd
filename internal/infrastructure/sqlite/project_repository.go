package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ProjectRepository implementa repository.ProjectRepository.
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository construye el repositorio.
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	m := projectToModel(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return mapError(err)
	}
	p.ID = m.ID
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*entity.Project, error) {
	var list []projectModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&list).Error; err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0].toEntity(), nil
}

// List ordena por startdatum; los projecten sin fecha van al final.
func (r *ProjectRepository) List(ctx context.Context, limit, offset int) ([]*entity.Project, error) {
	var list []projectModel
	err := r.db.WithContext(ctx).
		Order("startdatum IS NULL").Order("startdatum").Order("id").
		Limit(limit).Offset(offset).Find(&list).Error
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Project, 0, len(list))
	for i := range list {
		out = append(out, list[i].toEntity())
	}
	return out, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *entity.Project) error {
	m := projectToModel(p)
	err := r.db.WithContext(ctx).Model(&projectModel{}).
		Where("id = ?", p.ID).Select("*").Omit("id").Updates(&m).Error
	return mapError(err)
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&projectModel{}, id).Error
}

func (r *ProjectRepository) CountByCustomer(ctx context.Context, customerID int64) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&projectModel{}).Where("klant_id = ?", customerID).Count(&n).Error
	return int(n), err
}

// TaskRepository implementa repository.TaskRepository.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository construye el repositorio.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	m := taskToModel(t)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return mapError(err)
	}
	t.ID = m.ID
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	var list []taskModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&list).Error; err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0].toEntity(), nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID int64) ([]*entity.Task, error) {
	var list []taskModel
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("datum").Order("id").Find(&list).Error
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Task, 0, len(list))
	for i := range list {
		out = append(out, list[i].toEntity())
	}
	return out, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	m := taskToModel(t)
	err := r.db.WithContext(ctx).Model(&taskModel{}).
		Where("id = ?", t.ID).Select("*").Omit("id").Updates(&m).Error
	return mapError(err)
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&taskModel{}, id).Error
}

func (r *TaskRepository) DeleteByProject(ctx context.Context, projectID int64) error {
	return r.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&taskModel{}).Error
}

// AppointmentRepository implementa repository.AppointmentRepository.
type AppointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository construye el repositorio.
func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *entity.Appointment) error {
	m := appointmentModel{ProjectID: a.ProjectID, Title: a.Title, Date: a.Date.UTC(), Notes: a.Notes}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return mapError(err)
	}
	a.ID = m.ID
	return nil
}

func (r *AppointmentRepository) ListByProject(ctx context.Context, projectID int64) ([]*entity.Appointment, error) {
	var list []appointmentModel
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("datum").Order("id").Find(&list).Error
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Appointment, 0, len(list))
	for i := range list {
		out = append(out, list[i].toEntity())
	}
	return out, nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&appointmentModel{}, id).Error
}

func (r *AppointmentRepository) DeleteByProject(ctx context.Context, projectID int64) error {
	return r.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&appointmentModel{}).Error
}
