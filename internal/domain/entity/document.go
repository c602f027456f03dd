package entity

// DocumentFolder (documentmap) pertenece a un project y posee sus documentos.
type DocumentFolder struct {
	ID        int64
	ProjectID int64
	Name      string
	Documents []*Document
}

// Document pertenece a un project y opcionalmente a una carpeta.
// Path es la clave relativa del objeto en el DocumentStore.
type Document struct {
	ID          int64
	ProjectID   int64
	FolderID    *int64
	Filename    string
	Path        string
	ContentType string
}
