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
	_ repository.FolderRepository   = (*FolderRepo)(nil)
	_ repository.DocumentRepository = (*DocumentRepo)(nil)
)

// FolderRepo implementación de FolderRepository.
type FolderRepo struct {
	q Querier
}

// NewFolderRepository construye el adaptador.
func NewFolderRepository(q Querier) *FolderRepo {
	return &FolderRepo{q: q}
}

func (r *FolderRepo) Create(ctx context.Context, f *entity.DocumentFolder) error {
	query := `INSERT INTO documentmappen (project_id, naam) VALUES ($1, $2) RETURNING id`
	if err := r.q.QueryRow(ctx, query, f.ProjectID, f.Name).Scan(&f.ID); err != nil {
		if isUniqueViolation(err) {
			return mapUniqueViolation(err)
		}
		return fmt.Errorf("insert map: %w", err)
	}
	return nil
}

func (r *FolderRepo) GetByID(ctx context.Context, id int64) (*entity.DocumentFolder, error) {
	var f entity.DocumentFolder
	err := r.q.QueryRow(ctx, `SELECT id, project_id, naam FROM documentmappen WHERE id = $1`, id).
		Scan(&f.ID, &f.ProjectID, &f.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get map: %w", err)
	}
	return &f, nil
}

func (r *FolderRepo) ListByProject(ctx context.Context, projectID int64) ([]*entity.DocumentFolder, error) {
	rows, err := r.q.Query(ctx, `SELECT id, project_id, naam FROM documentmappen WHERE project_id = $1 ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list mappen: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.DocumentFolder, 0)
	for rows.Next() {
		var f entity.DocumentFolder
		if err := rows.Scan(&f.ID, &f.ProjectID, &f.Name); err != nil {
			return nil, fmt.Errorf("scan map: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

func (r *FolderRepo) Update(ctx context.Context, f *entity.DocumentFolder) error {
	if _, err := r.q.Exec(ctx, `UPDATE documentmappen SET naam = $2 WHERE id = $1`, f.ID, f.Name); err != nil {
		if isUniqueViolation(err) {
			return mapUniqueViolation(err)
		}
		return fmt.Errorf("update map: %w", err)
	}
	return nil
}

func (r *FolderRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM documentmappen WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete map: %w", err)
	}
	return nil
}

func (r *FolderRepo) DeleteByProject(ctx context.Context, projectID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM documentmappen WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("delete mappen: %w", err)
	}
	return nil
}

// DocumentRepo implementación de DocumentRepository.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador.
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, project_id, map_id, bestandsnaam, pad, content_type`

func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	query := `
		INSERT INTO documenten (project_id, map_id, bestandsnaam, pad, content_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, d.ProjectID, d.FolderID, d.Filename, d.Path, d.ContentType).Scan(&d.ID); err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepo) GetByID(ctx context.Context, id int64) (*entity.Document, error) {
	return r.one(ctx, `SELECT `+documentColumns+` FROM documenten WHERE id = $1`, id)
}

func (r *DocumentRepo) GetByPath(ctx context.Context, path string) (*entity.Document, error) {
	return r.one(ctx, `SELECT `+documentColumns+` FROM documenten WHERE pad = $1 ORDER BY id DESC LIMIT 1`, path)
}

func (r *DocumentRepo) LatestByFilename(ctx context.Context, projectID int64, filename string) (*entity.Document, error) {
	return r.one(ctx, `SELECT `+documentColumns+` FROM documenten
		WHERE project_id = $1 AND bestandsnaam = $2 ORDER BY id DESC LIMIT 1`, projectID, filename)
}

func (r *DocumentRepo) one(ctx context.Context, query string, args ...any) (*entity.Document, error) {
	d, err := scanDocument(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

func (r *DocumentRepo) Update(ctx context.Context, d *entity.Document) error {
	query := `UPDATE documenten SET project_id = $2, map_id = $3, bestandsnaam = $4, pad = $5, content_type = $6 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, d.ID, d.ProjectID, d.FolderID, d.Filename, d.Path, d.ContentType); err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

func (r *DocumentRepo) ListByProject(ctx context.Context, projectID int64) ([]*entity.Document, error) {
	return r.list(ctx, `SELECT `+documentColumns+` FROM documenten WHERE project_id = $1 ORDER BY id`, projectID)
}

func (r *DocumentRepo) ListByFolder(ctx context.Context, folderID int64) ([]*entity.Document, error) {
	return r.list(ctx, `SELECT `+documentColumns+` FROM documenten WHERE map_id = $1 ORDER BY id`, folderID)
}

func (r *DocumentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Document, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documenten: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *DocumentRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM documenten WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (r *DocumentRepo) DeleteByFolder(ctx context.Context, folderID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM documenten WHERE map_id = $1`, folderID); err != nil {
		return fmt.Errorf("delete documenten: %w", err)
	}
	return nil
}

func (r *DocumentRepo) DeleteByProject(ctx context.Context, projectID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM documenten WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("delete documenten: %w", err)
	}
	return nil
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	if err := row.Scan(&d.ID, &d.ProjectID, &d.FolderID, &d.Filename, &d.Path, &d.ContentType); err != nil {
		return nil, err
	}
	return &d, nil
}
