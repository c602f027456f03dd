package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, voornaam, achternaam, straatnaam, huisnummer, postcode, woonplaats,
	email, telefoon, klantnummer, klanttype, registratiedatum`

// Create persiste una nueva klant y asigna su ID.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO klanten (voornaam, achternaam, straatnaam, huisnummer, postcode, woonplaats,
			email, telefoon, klantnummer, klanttype, registratiedatum)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		c.FirstName, c.LastName, c.Street, c.HouseNumber, c.PostalCode, c.City,
		c.Email, c.Phone, c.CustomerNumber, string(c.CustomerType), c.RegistrationDate,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return mapUniqueViolation(err)
		}
		return fmt.Errorf("insert klant: %w", err)
	}
	return nil
}

// GetByID obtiene una klant por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM klanten WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get klant: %w", err)
	}
	return c, nil
}

// List lista klanten con paginación, en orden de inserción.
func (r *CustomerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM klanten ORDER BY id LIMIT $1 OFFSET $2`
	return r.query(ctx, query, limit, offset)
}

// Search busca la subcadena sin distinguir mayúsculas en todos los campos de texto.
func (r *CustomerRepo) Search(ctx context.Context, term string) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM klanten
		WHERE voornaam ILIKE $1 ESCAPE '\' OR achternaam ILIKE $1 ESCAPE '\'
		   OR straatnaam ILIKE $1 ESCAPE '\' OR huisnummer ILIKE $1 ESCAPE '\'
		   OR woonplaats ILIKE $1 ESCAPE '\' OR postcode ILIKE $1 ESCAPE '\'
		   OR email ILIKE $1 ESCAPE '\' OR telefoon ILIKE $1 ESCAPE '\'
		   OR klantnummer ILIKE $1 ESCAPE '\' OR klanttype ILIKE $1 ESCAPE '\'
		ORDER BY achternaam, id`
	return r.query(ctx, query, likePattern(term))
}

func (r *CustomerRepo) EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM klanten WHERE email = $1 AND id <> $2)`, email, excludeID)
}

func (r *CustomerRepo) CustomerNumberInUse(ctx context.Context, number string, excludeID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM klanten WHERE klantnummer = $1 AND id <> $2)`, number, excludeID)
}

func (r *CustomerRepo) exists(ctx context.Context, query, value string, excludeID int64) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, query, value, excludeID).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists klant: %w", err)
	}
	return ok, nil
}

// Update reemplaza todos los campos de la klant.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE klanten SET voornaam = $2, achternaam = $3, straatnaam = $4, huisnummer = $5,
			postcode = $6, woonplaats = $7, email = $8, telefoon = $9, klantnummer = $10,
			klanttype = $11, registratiedatum = $12
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.FirstName, c.LastName, c.Street, c.HouseNumber, c.PostalCode, c.City,
		c.Email, c.Phone, c.CustomerNumber, string(c.CustomerType), c.RegistrationDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return mapUniqueViolation(err)
		}
		return fmt.Errorf("update klant: %w", err)
	}
	return nil
}

func (r *CustomerRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM klanten WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete klant: %w", err)
	}
	return nil
}

func (r *CustomerRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list klanten: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan klant: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var klanttype string
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Street, &c.HouseNumber, &c.PostalCode, &c.City,
		&c.Email, &c.Phone, &c.CustomerNumber, &klanttype, &c.RegistrationDate)
	if err != nil {
		return nil, err
	}
	c.CustomerType = entity.CustomerType(klanttype)
	return &c, nil
}
