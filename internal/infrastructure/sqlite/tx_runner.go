package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// TxRunner implementa ports.TxRunner con db.Transaction.
type TxRunner struct {
	db *gorm.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *gorm.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run ejecuta fn dentro de una transacción. Si fn devuelve error se hace rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Set) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositorySet(tx))
	})
}
