package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/ports"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/domain/validation"
)

// CustomerUseCase casos de uso de klanten: validación de formato y unicidad de
// email/klantnummer antes de cualquier escritura.
type CustomerUseCase struct {
	repo repository.CustomerRepository
	tx   ports.TxRunner
	now  func() time.Time
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, tx ports.TxRunner) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, tx: tx, now: time.Now}
}

// Create crea una klant. Si no se indica registratiedatum se usa la fecha de hoy.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	customer := customerFromRequest(in)
	if customer.RegistrationDate.IsZero() {
		customer.RegistrationDate = dto.NewDate(uc.now()).Time
	}
	if err := validation.ValidateCustomer(customer); err != nil {
		return nil, err
	}
	if err := uc.checkUnique(ctx, customer, 0); err != nil {
		return nil, err
	}
	// La restricción UNIQUE del almacén cubre la carrera entre la comprobación y el insert.
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List devuelve como máximo limit klanten a partir de skip.
func (uc *CustomerUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, err
	}
	return toCustomerResponses(list), nil
}

// GetByID devuelve la klant o domain.ErrNotFound.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// Search busca term como subcadena en todos los campos; orden por achternaam.
// Un término vacío devuelve todas las klanten.
func (uc *CustomerUseCase) Search(ctx context.Context, term string) ([]*dto.CustomerResponse, error) {
	list, err := uc.repo.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	return toCustomerResponses(list), nil
}

// Update reemplaza todos los campos de la klant. La unicidad se comprueba excluyendo
// su propio id. registratiedatum solo cambia si se envía.
func (uc *CustomerUseCase) Update(ctx context.Context, id int64, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	updated := customerFromRequest(in)
	updated.ID = id
	if err := validation.ValidateCustomer(updated); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	if updated.RegistrationDate.IsZero() {
		updated.RegistrationDate = existing.RegistrationDate
	}
	if err := uc.checkUnique(ctx, updated, id); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, updated); err != nil {
		return nil, err
	}
	return toCustomerResponse(updated), nil
}

// Delete elimina la klant. Si no existe no hace nada. Si algún project la referencia
// devuelve domain.ErrCustomerHasProjects y no borra.
func (uc *CustomerUseCase) Delete(ctx context.Context, id int64) error {
	return uc.tx.Run(ctx, func(repos repository.Set) error {
		customer, err := repos.Customers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if customer == nil {
			return nil
		}
		n, err := repos.Projects.CountByCustomer(ctx, id)
		if err != nil {
			return fmt.Errorf("count projects: %w", err)
		}
		if n > 0 {
			return domain.ErrCustomerHasProjects
		}
		return repos.Customers.Delete(ctx, id)
	})
}

func (uc *CustomerUseCase) checkUnique(ctx context.Context, c *entity.Customer, excludeID int64) error {
	inUse, err := uc.repo.EmailInUse(ctx, c.Email, excludeID)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrEmailInUse
	}
	inUse, err = uc.repo.CustomerNumberInUse(ctx, c.CustomerNumber, excludeID)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrCustomerNumberInUse
	}
	return nil
}

func customerFromRequest(in dto.CustomerRequest) *entity.Customer {
	c := &entity.Customer{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Street:         in.Street,
		HouseNumber:    in.HouseNumber,
		PostalCode:     in.PostalCode,
		City:           in.City,
		Email:          in.Email,
		Phone:          in.Phone,
		CustomerNumber: in.CustomerNumber,
		CustomerType:   entity.CustomerType(in.CustomerType),
	}
	if t := in.RegistrationDate.TimePtr(); t != nil {
		c.RegistrationDate = *t
	}
	return c
}

// ToCustomerResponse expone el mapeo para otros casos de uso (detalle de project).
func ToCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return toCustomerResponse(c)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:               c.ID,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		Street:           c.Street,
		HouseNumber:      c.HouseNumber,
		PostalCode:       c.PostalCode,
		City:             c.City,
		Email:            c.Email,
		Phone:            c.Phone,
		CustomerNumber:   c.CustomerNumber,
		CustomerType:     string(c.CustomerType),
		RegistrationDate: dto.NewDate(c.RegistrationDate),
	}
}

func toCustomerResponses(list []*entity.Customer) []*dto.CustomerResponse {
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out
}
