package dto

import "io"

// FolderRequest entrada para crear o renombrar una documentmap.
type FolderRequest struct {
	Name string `json:"naam"`
}

// FolderResponse salida de una documentmap con sus documentos.
type FolderResponse struct {
	ID        int64              `json:"id"`
	ProjectID int64              `json:"project_id"`
	Name      string             `json:"naam"`
	Documents []DocumentResponse `json:"documenten"`
}

// CreateDocumentRequest registra un documento cuyos bytes ya están en el store.
type CreateDocumentRequest struct {
	Filename  string `json:"bestandsnaam"`
	Path      string `json:"pad"`
	ProjectID int64  `json:"project_id"`
	FolderID  *int64 `json:"map_id"`
}

// UploadDocumentRequest entrada de una subida (multipart en la capa HTTP).
type UploadDocumentRequest struct {
	ProjectID int64
	FolderID  *int64
	Filename  string
	Content   io.Reader
}

// DocumentResponse salida de un documento.
type DocumentResponse struct {
	ID          int64  `json:"id"`
	ProjectID   int64  `json:"project_id"`
	FolderID    *int64 `json:"map_id"`
	Filename    string `json:"bestandsnaam"`
	Path        string `json:"pad"`
	ContentType string `json:"content_type,omitempty"`
}

// DocumentContent contenido descargable; el caller debe cerrar Body.
type DocumentContent struct {
	Filename    string
	ContentType string
	Body        io.ReadCloser
}
