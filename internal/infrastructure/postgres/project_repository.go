package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var (
	_ repository.ProjectRepository     = (*ProjectRepo)(nil)
	_ repository.TaskRepository        = (*TaskRepo)(nil)
	_ repository.AppointmentRepository = (*AppointmentRepo)(nil)
)

// ProjectRepo implementación de ProjectRepository (usable con pool o tx).
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador.
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

const projectColumns = `id, projectnaam, klant_id, omschrijving, straat, postcode, woonplaats, status,
	startdatum, einddatum, installateurs, aangemaakt_op, bijgewerkt_op`

func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	query := `
		INSERT INTO projecten (projectnaam, klant_id, omschrijving, straat, postcode, woonplaats, status,
			startdatum, einddatum, installateurs, aangemaakt_op, bijgewerkt_op)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.Name, nullableID(p.CustomerID), p.Description, p.Street, p.PostalCode, p.City, string(p.Status),
		p.StartDate, p.EndDate, p.Installers, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *ProjectRepo) GetByID(ctx context.Context, id int64) (*entity.Project, error) {
	p, err := scanProject(r.q.QueryRow(ctx, `SELECT `+projectColumns+` FROM projecten WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// List ordena por startdatum; los projecten sin fecha van al final.
func (r *ProjectRepo) List(ctx context.Context, limit, offset int) ([]*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projecten
		ORDER BY startdatum ASC NULLS LAST, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list projecten: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	query := `
		UPDATE projecten SET projectnaam = $2, klant_id = $3, omschrijving = $4, straat = $5,
			postcode = $6, woonplaats = $7, status = $8, startdatum = $9, einddatum = $10,
			installateurs = $11, bijgewerkt_op = $12
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, nullableID(p.CustomerID), p.Description, p.Street, p.PostalCode, p.City,
		string(p.Status), p.StartDate, p.EndDate, p.Installers, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

func (r *ProjectRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM projecten WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

func (r *ProjectRepo) CountByCustomer(ctx context.Context, customerID int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM projecten WHERE klant_id = $1`, customerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count projecten: %w", err)
	}
	return n, nil
}

func scanProject(row pgx.Row) (*entity.Project, error) {
	var p entity.Project
	var customerID *int64
	var status string
	err := row.Scan(&p.ID, &p.Name, &customerID, &p.Description, &p.Street, &p.PostalCode, &p.City, &status,
		&p.StartDate, &p.EndDate, &p.Installers, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if customerID != nil {
		p.CustomerID = *customerID
	}
	p.Status = entity.ProjectStatus(status)
	return &p, nil
}

// nullableID guarda 0 como NULL (project sin klant).
func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

// TaskRepo implementación de TaskRepository.
type TaskRepo struct {
	q Querier
}

// NewTaskRepository construye el adaptador.
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

const taskColumns = `id, project_id, titel, status, uitvoerder, kleur, datum`

func (r *TaskRepo) Create(ctx context.Context, t *entity.Task) error {
	query := `
		INSERT INTO taken (project_id, titel, status, uitvoerder, kleur, datum)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query,
		t.ProjectID, t.Title, string(t.Status), t.Executor, t.Color, t.Date,
	).Scan(&t.ID); err != nil {
		return fmt.Errorf("insert taak: %w", err)
	}
	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	t, err := scanTask(r.q.QueryRow(ctx, `SELECT `+taskColumns+` FROM taken WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get taak: %w", err)
	}
	return t, nil
}

func (r *TaskRepo) ListByProject(ctx context.Context, projectID int64) ([]*entity.Task, error) {
	rows, err := r.q.Query(ctx, `SELECT `+taskColumns+` FROM taken WHERE project_id = $1 ORDER BY datum, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list taken: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan taak: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *TaskRepo) Update(ctx context.Context, t *entity.Task) error {
	query := `UPDATE taken SET titel = $2, status = $3, uitvoerder = $4, kleur = $5, datum = $6 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, t.ID, t.Title, string(t.Status), t.Executor, t.Color, t.Date); err != nil {
		return fmt.Errorf("update taak: %w", err)
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM taken WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete taak: %w", err)
	}
	return nil
}

func (r *TaskRepo) DeleteByProject(ctx context.Context, projectID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM taken WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("delete taken: %w", err)
	}
	return nil
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	var t entity.Task
	var status string
	if err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &status, &t.Executor, &t.Color, &t.Date); err != nil {
		return nil, err
	}
	t.Status = entity.TaskStatus(status)
	return &t, nil
}

// AppointmentRepo implementación de AppointmentRepository.
type AppointmentRepo struct {
	q Querier
}

// NewAppointmentRepository construye el adaptador.
func NewAppointmentRepository(q Querier) *AppointmentRepo {
	return &AppointmentRepo{q: q}
}

func (r *AppointmentRepo) Create(ctx context.Context, a *entity.Appointment) error {
	query := `INSERT INTO afspraken (project_id, titel, datum, notities) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.q.QueryRow(ctx, query, a.ProjectID, a.Title, a.Date, a.Notes).Scan(&a.ID); err != nil {
		return fmt.Errorf("insert afspraak: %w", err)
	}
	return nil
}

func (r *AppointmentRepo) ListByProject(ctx context.Context, projectID int64) ([]*entity.Appointment, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, project_id, titel, datum, notities FROM afspraken WHERE project_id = $1 ORDER BY datum, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list afspraken: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Appointment, 0)
	for rows.Next() {
		var a entity.Appointment
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.Title, &a.Date, &a.Notes); err != nil {
			return nil, fmt.Errorf("scan afspraak: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

func (r *AppointmentRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM afspraken WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete afspraak: %w", err)
	}
	return nil
}

func (r *AppointmentRepo) DeleteByProject(ctx context.Context, projectID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM afspraken WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("delete afspraken: %w", err)
	}
	return nil
}
