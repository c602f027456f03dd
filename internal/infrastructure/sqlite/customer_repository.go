package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// CustomerRepository implementa repository.CustomerRepository.
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository construye el repositorio.
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

var customerSearchColumns = []string{
	"voornaam", "achternaam", "straatnaam", "huisnummer", "woonplaats",
	"postcode", "email", "telefoon", "klantnummer", "klanttype",
}

// Create inserta la klant y asigna su ID.
func (r *CustomerRepository) Create(ctx context.Context, c *entity.Customer) error {
	m := customerToModel(c)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return mapError(err)
	}
	c.ID = m.ID
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	var list []customerModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&list).Error; err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0].toEntity(), nil
}

func (r *CustomerRepository) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	var list []customerModel
	if err := r.db.WithContext(ctx).Order("id").Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		return nil, err
	}
	return customersToEntities(list), nil
}

// Search usa unicode_lower(col) LIKE para que la comparación no distinga mayúsculas,
// también fuera de ASCII.
func (r *CustomerRepository) Search(ctx context.Context, term string) ([]*entity.Customer, error) {
	q := r.db.WithContext(ctx).Model(&customerModel{})
	if term != "" {
		pattern := likePattern(term)
		cond := r.db.Where("1 = 0")
		for _, col := range customerSearchColumns {
			cond = cond.Or("unicode_lower(COALESCE("+col+`, '')) LIKE ? ESCAPE '\'`, pattern)
		}
		q = q.Where(cond)
	}
	var list []customerModel
	if err := q.Order("achternaam").Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	return customersToEntities(list), nil
}

func (r *CustomerRepository) EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error) {
	return r.exists(ctx, "email", email, excludeID)
}

func (r *CustomerRepository) CustomerNumberInUse(ctx context.Context, number string, excludeID int64) (bool, error) {
	return r.exists(ctx, "klantnummer", number, excludeID)
}

func (r *CustomerRepository) exists(ctx context.Context, column, value string, excludeID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&customerModel{}).
		Where(column+" = ? AND id <> ?", value, excludeID).
		Count(&n).Error
	return n > 0, err
}

// Update reemplaza todas las columnas, incluidas las vacías.
func (r *CustomerRepository) Update(ctx context.Context, c *entity.Customer) error {
	m := customerToModel(c)
	err := r.db.WithContext(ctx).Model(&customerModel{}).
		Where("id = ?", c.ID).Select("*").Omit("id").Updates(&m).Error
	return mapError(err)
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&customerModel{}, id).Error
}

func customersToEntities(list []customerModel) []*entity.Customer {
	out := make([]*entity.Customer, 0, len(list))
	for i := range list {
		out = append(out, list[i].toEntity())
	}
	return out
}
