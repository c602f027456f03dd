package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/backoffice-api/internal/domain"
)

// Querier es la parte común de *pgxpool.Pool y pgx.Tx que usan los repositorios.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// mapUniqueViolation traduce los constraints únicos a conflictos de dominio.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.ConstraintName {
		case "klanten_email_key":
			return domain.ErrEmailInUse
		case "klanten_klantnummer_key":
			return domain.ErrCustomerNumberInUse
		case "documentmappen_project_naam_key":
			return domain.ErrFolderNameInUse
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrConflict, err)
}

// likePattern escapa los comodines de LIKE y envuelve term en %...%.
// Un término vacío produce "%%", que coincide con todo.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}
