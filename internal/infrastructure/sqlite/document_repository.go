package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// FolderRepository implementa repository.FolderRepository.
type FolderRepository struct {
	db *gorm.DB
}

// NewFolderRepository construye el repositorio.
func NewFolderRepository(db *gorm.DB) *FolderRepository {
	return &FolderRepository{db: db}
}

func (r *FolderRepository) Create(ctx context.Context, f *entity.DocumentFolder) error {
	m := folderModel{ProjectID: f.ProjectID, Name: f.Name}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return mapError(err)
	}
	f.ID = m.ID
	return nil
}

func (r *FolderRepository) GetByID(ctx context.Context, id int64) (*entity.DocumentFolder, error) {
	var list []folderModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&list).Error; err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0].toEntity(), nil
}

func (r *FolderRepository) ListByProject(ctx context.Context, projectID int64) ([]*entity.DocumentFolder, error) {
	var list []folderModel
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.DocumentFolder, 0, len(list))
	for i := range list {
		out = append(out, list[i].toEntity())
	}
	return out, nil
}

func (r *FolderRepository) Update(ctx context.Context, f *entity.DocumentFolder) error {
	return mapError(r.db.WithContext(ctx).Model(&folderModel{}).Where("id = ?", f.ID).Update("naam", f.Name).Error)
}

func (r *FolderRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&folderModel{}, id).Error
}

func (r *FolderRepository) DeleteByProject(ctx context.Context, projectID int64) error {
	return r.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&folderModel{}).Error
}

// DocumentRepository implementa repository.DocumentRepository.
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository construye el repositorio.
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, d *entity.Document) error {
	m := documentToModel(d)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return mapError(err)
	}
	d.ID = m.ID
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*entity.Document, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *DocumentRepository) GetByPath(ctx context.Context, path string) (*entity.Document, error) {
	return r.first(r.db.WithContext(ctx).Where("pad = ?", path).Order("id DESC"))
}

func (r *DocumentRepository) LatestByFilename(ctx context.Context, projectID int64, filename string) (*entity.Document, error) {
	return r.first(r.db.WithContext(ctx).
		Where("project_id = ? AND bestandsnaam = ?", projectID, filename).Order("id DESC"))
}

func (r *DocumentRepository) first(q *gorm.DB) (*entity.Document, error) {
	var list []documentModel
	if err := q.Limit(1).Find(&list).Error; err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0].toEntity(), nil
}

func (r *DocumentRepository) Update(ctx context.Context, d *entity.Document) error {
	m := documentToModel(d)
	err := r.db.WithContext(ctx).Model(&documentModel{}).
		Where("id = ?", d.ID).Select("*").Omit("id").Updates(&m).Error
	return mapError(err)
}

func (r *DocumentRepository) ListByProject(ctx context.Context, projectID int64) ([]*entity.Document, error) {
	return r.list(r.db.WithContext(ctx).Where("project_id = ?", projectID))
}

func (r *DocumentRepository) ListByFolder(ctx context.Context, folderID int64) ([]*entity.Document, error) {
	return r.list(r.db.WithContext(ctx).Where("map_id = ?", folderID))
}

func (r *DocumentRepository) list(q *gorm.DB) ([]*entity.Document, error) {
	var list []documentModel
	if err := q.Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.Document, 0, len(list))
	for i := range list {
		out = append(out, list[i].toEntity())
	}
	return out, nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&documentModel{}, id).Error
}

func (r *DocumentRepository) DeleteByFolder(ctx context.Context, folderID int64) error {
	return r.db.WithContext(ctx).Where("map_id = ?", folderID).Delete(&documentModel{}).Error
}

func (r *DocumentRepository) DeleteByProject(ctx context.Context, projectID int64) error {
	return r.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&documentModel{}).Error
}
