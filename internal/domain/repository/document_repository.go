package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// FolderRepository persiste documentmappen (sin documentos).
type FolderRepository interface {
	Create(ctx context.Context, folder *entity.DocumentFolder) error
	GetByID(ctx context.Context, id int64) (*entity.DocumentFolder, error)
	ListByProject(ctx context.Context, projectID int64) ([]*entity.DocumentFolder, error)
	Update(ctx context.Context, folder *entity.DocumentFolder) error
	Delete(ctx context.Context, id int64) error
	DeleteByProject(ctx context.Context, projectID int64) error
}

// DocumentRepository persiste los registros de documentos; los bytes viven en el DocumentStore.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id int64) (*entity.Document, error)
	// GetByPath devuelve el registro más reciente con esa clave de objeto.
	GetByPath(ctx context.Context, path string) (*entity.Document, error)
	// LatestByFilename devuelve el registro más reciente del project con ese nombre.
	LatestByFilename(ctx context.Context, projectID int64, filename string) (*entity.Document, error)
	Update(ctx context.Context, doc *entity.Document) error
	ListByProject(ctx context.Context, projectID int64) ([]*entity.Document, error)
	ListByFolder(ctx context.Context, folderID int64) ([]*entity.Document, error)
	Delete(ctx context.Context, id int64) error
	DeleteByFolder(ctx context.Context, folderID int64) error
	DeleteByProject(ctx context.Context, projectID int64) error
}
