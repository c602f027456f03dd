package ports

import (
	"context"
	"io"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, con repositorios atados a esa tx.
// Si fn devuelve error se hace rollback; de lo contrario commit.
// Dentro de fn solo deben usarse los repositorios recibidos.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Set) error) error
}

// DocumentStore guarda los bytes de los documentos bajo una clave relativa
// (ver storagekey). Save sobrescribe si la clave ya existe (last write wins).
// Open y Delete devuelven domain.ErrNotFound si el objeto no existe.
type DocumentStore interface {
	Save(ctx context.Context, key string, r io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// WorkOrderGenerator genera la werkbon (PDF) de un project con sus hijos cargados.
type WorkOrderGenerator interface {
	GenerateWorkOrderPDF(ctx context.Context, project *entity.Project) ([]byte, error)
}
