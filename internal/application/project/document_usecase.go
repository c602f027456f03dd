package project

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/ports"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/domain/storagekey"
	"github.com/jhoicas/backoffice-api/internal/domain/validation"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

// sniffLen bytes leídos para detectar el tipo de contenido (límite por defecto de mimetype).
const sniffLen = 3072

// DocumentUseCase casos de uso de documentmappen y documenten, incluida la subida y
// descarga de bytes a través del DocumentStore.
type DocumentUseCase struct {
	repos repository.Set
	tx    ports.TxRunner
	store ports.DocumentStore
	log   *logger.Logger
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(repos repository.Set, tx ports.TxRunner, store ports.DocumentStore, log *logger.Logger) *DocumentUseCase {
	return &DocumentUseCase{repos: repos, tx: tx, store: store, log: log}
}

// CreateFolder crea una map en un project existente. El nombre forma parte de la ruta
// física, así que no puede contener separadores y es único dentro del project.
func (uc *DocumentUseCase) CreateFolder(ctx context.Context, projectID int64, in dto.FolderRequest) (*dto.FolderResponse, error) {
	name, err := storagekey.CleanSegment("naam", in.Name)
	if err != nil {
		return nil, err
	}
	folder := &entity.DocumentFolder{ProjectID: projectID, Name: name}
	err = uc.tx.Run(ctx, func(repos repository.Set) error {
		if err := requireProject(ctx, repos, projectID); err != nil {
			return err
		}
		if err := requireFreeFolderName(ctx, repos, folder); err != nil {
			return err
		}
		return repos.Folders.Create(ctx, folder)
	})
	if err != nil {
		return nil, err
	}
	return toFolderResponse(folder), nil
}

// ListFolders devuelve las mappen del project con sus documentos.
func (uc *DocumentUseCase) ListFolders(ctx context.Context, projectID int64) ([]*dto.FolderResponse, error) {
	if err := requireProject(ctx, uc.repos, projectID); err != nil {
		return nil, err
	}
	folders, err := uc.repos.Folders.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	docs, err := uc.repos.Documents.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	attachDocuments(folders, docs)
	out := make([]*dto.FolderResponse, 0, len(folders))
	for _, f := range folders {
		out = append(out, toFolderResponse(f))
	}
	return out, nil
}

// UpdateFolder renombra una map. Los documentos existentes conservan su ruta.
// Devuelve domain.ErrFolderNameInUse si otra map del project ya usa el nombre.
func (uc *DocumentUseCase) UpdateFolder(ctx context.Context, folderID int64, in dto.FolderRequest) (*dto.FolderResponse, error) {
	name, err := storagekey.CleanSegment("naam", in.Name)
	if err != nil {
		return nil, err
	}
	var folder *entity.DocumentFolder
	err = uc.tx.Run(ctx, func(repos repository.Set) error {
		var err error
		if folder, err = repos.Folders.GetByID(ctx, folderID); err != nil {
			return err
		}
		if folder == nil {
			return domain.ErrNotFound
		}
		folder.Name = name
		if err := requireFreeFolderName(ctx, repos, folder); err != nil {
			return err
		}
		if err := repos.Folders.Update(ctx, folder); err != nil {
			return err
		}
		folder.Documents, err = repos.Documents.ListByFolder(ctx, folderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toFolderResponse(folder), nil
}

// DeleteFolder elimina la map y sus documentos (registros y ficheros).
// Devuelve domain.ErrNotFound si la map no existe.
func (uc *DocumentUseCase) DeleteFolder(ctx context.Context, folderID int64) error {
	var docs []*entity.Document
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		folder, err := repos.Folders.GetByID(ctx, folderID)
		if err != nil {
			return err
		}
		if folder == nil {
			return domain.ErrNotFound
		}
		if docs, err = repos.Documents.ListByFolder(ctx, folderID); err != nil {
			return err
		}
		if err := repos.Documents.DeleteByFolder(ctx, folderID); err != nil {
			return err
		}
		return repos.Folders.Delete(ctx, folderID)
	})
	if err != nil {
		return err
	}
	removeObjects(ctx, uc.store, uc.log, docs)
	return nil
}

// AddDocument registra un documento cuyos bytes ya fueron guardados. No escribe bytes.
// pad debe quedar dentro de project_<id>/.
func (uc *DocumentUseCase) AddDocument(ctx context.Context, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	var errs []error
	if err := validation.Required("bestandsnaam", in.Filename); err != nil {
		errs = append(errs, err)
	}
	if err := validation.Required("pad", in.Path); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	key, err := storagekey.Within("pad", in.ProjectID, in.Path)
	if err != nil {
		return nil, err
	}
	doc := &entity.Document{
		ProjectID: in.ProjectID,
		FolderID:  in.FolderID,
		Filename:  in.Filename,
		Path:      key,
	}
	err = uc.tx.Run(ctx, func(repos repository.Set) error {
		if err := requireProject(ctx, repos, in.ProjectID); err != nil {
			return err
		}
		if _, err := folderOf(ctx, repos, in.ProjectID, in.FolderID); err != nil {
			return err
		}
		return repos.Documents.Create(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// ListDocumentsInFolder devuelve los documentos de una map existente.
func (uc *DocumentUseCase) ListDocumentsInFolder(ctx context.Context, folderID int64) ([]dto.DocumentResponse, error) {
	folder, err := uc.repos.Folders.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, domain.ErrNotFound
	}
	docs, err := uc.repos.Documents.ListByFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}
	return toDocumentResponses(docs), nil
}

// DeleteDocument elimina registro y fichero; si no existe no hace nada.
func (uc *DocumentUseCase) DeleteDocument(ctx context.Context, id int64) error {
	doc, err := uc.repos.Documents.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return nil
	}
	if err := uc.repos.Documents.Delete(ctx, id); err != nil {
		return err
	}
	removeObjects(ctx, uc.store, uc.log, []*entity.Document{doc})
	return nil
}

// Upload guarda los bytes en project_<id>[/<map>]/<bestandsnaam> y registra el documento.
// Si ya existe un registro con esa ruta en la misma map se reutiliza (last write wins
// sobre los bytes); si pertenece a otra map devuelve domain.ErrPathInOtherMap sin escribir.
// Si el registro nuevo no se puede insertar, el fichero recién escrito se elimina.
func (uc *DocumentUseCase) Upload(ctx context.Context, in dto.UploadDocumentRequest) (*dto.DocumentResponse, error) {
	filename, err := storagekey.CleanSegment("bestandsnaam", in.Filename)
	if err != nil {
		return nil, err
	}
	if err := requireProject(ctx, uc.repos, in.ProjectID); err != nil {
		return nil, err
	}
	folder, err := folderOf(ctx, uc.repos, in.ProjectID, in.FolderID)
	if err != nil {
		return nil, err
	}
	folderName := ""
	if folder != nil {
		folderName = folder.Name
	}
	key, err := storagekey.For(in.ProjectID, folderName, filename)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repos.Documents.GetByPath(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := reusable(existing, in.FolderID); err != nil {
		return nil, err
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(in.Content, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w: lezen upload: %v", domain.ErrIO, err)
	}
	head = head[:n]
	contentType := mimetype.Detect(head).String()

	if err := uc.store.Save(ctx, key, io.MultiReader(bytes.NewReader(head), in.Content)); err != nil {
		return nil, err
	}

	var doc *entity.Document
	created := false
	err = uc.tx.Run(ctx, func(repos repository.Set) error {
		existing, err := repos.Documents.GetByPath(ctx, key)
		if err != nil {
			return err
		}
		if err := reusable(existing, in.FolderID); err != nil {
			return err
		}
		if existing != nil {
			existing.FolderID = in.FolderID
			existing.ContentType = contentType
			doc = existing
			return repos.Documents.Update(ctx, existing)
		}
		doc = &entity.Document{
			ProjectID:   in.ProjectID,
			FolderID:    in.FolderID,
			Filename:    filename,
			Path:        key,
			ContentType: contentType,
		}
		created = true
		return repos.Documents.Create(ctx, doc)
	})
	if err != nil {
		if created {
			removeObjects(ctx, uc.store, uc.log, []*entity.Document{{Path: key}})
		}
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// Download abre el documento más reciente del project con ese nombre.
// El caller debe cerrar Body.
func (uc *DocumentUseCase) Download(ctx context.Context, projectID int64, filename string) (*dto.DocumentContent, error) {
	name, err := storagekey.CleanSegment("bestandsnaam", filename)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	doc, err := uc.repos.Documents.LatestByFilename(ctx, projectID, name)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	body, err := uc.store.Open(ctx, doc.Path)
	if err != nil {
		return nil, err
	}
	contentType := doc.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &dto.DocumentContent{Filename: doc.Filename, ContentType: contentType, Body: body}, nil
}

// folderOf comprueba que la map (opcional) existe y pertenece al project.
func folderOf(ctx context.Context, repos repository.Set, projectID int64, folderID *int64) (*entity.DocumentFolder, error) {
	if folderID == nil {
		return nil, nil
	}
	folder, err := repos.Folders.GetByID(ctx, *folderID)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, fmt.Errorf("map %d: %w", *folderID, domain.ErrNotFound)
	}
	if folder.ProjectID != projectID {
		return nil, &domain.FieldError{Field: "map_id", Message: "Map hoort niet bij dit project."}
	}
	return folder, nil
}

// requireFreeFolderName comprueba que ninguna otra map del project usa folder.Name.
func requireFreeFolderName(ctx context.Context, repos repository.Set, folder *entity.DocumentFolder) error {
	folders, err := repos.Folders.ListByProject(ctx, folder.ProjectID)
	if err != nil {
		return err
	}
	for _, f := range folders {
		if f.ID != folder.ID && f.Name == folder.Name {
			return domain.ErrFolderNameInUse
		}
	}
	return nil
}

// reusable indica si el registro que ya ocupa la ruta puede recibir la subida: solo si
// no existe, está suelto o pertenece a la misma map.
func reusable(existing *entity.Document, folderID *int64) error {
	if existing == nil || existing.FolderID == nil {
		return nil
	}
	if folderID == nil || *existing.FolderID != *folderID {
		return domain.ErrPathInOtherMap
	}
	return nil
}
