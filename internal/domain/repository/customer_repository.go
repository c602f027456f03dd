package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Klant.
// GetByID devuelve (nil, nil) si no existe.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
	// Search busca la subcadena (sin distinguir mayúsculas) en todos los campos de texto,
	// ordenado por apellido ascendente.
	Search(ctx context.Context, term string) ([]*entity.Customer, error)
	// EmailInUse y CustomerNumberInUse ignoran excludeID (0 = no excluir).
	EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error)
	CustomerNumberInUse(ctx context.Context, number string, excludeID int64) (bool, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id int64) error
}
