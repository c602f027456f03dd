package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/sqlite"
)

func newCustomerUC(t *testing.T) (*usecase.CustomerUseCase, repository.Set) {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "klanten.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })
	repos := sqlite.NewRepositorySet(db)
	return usecase.NewCustomerUseCase(repos.Customers, sqlite.NewTxRunner(db)), repos
}

func request(email, number string) dto.CustomerRequest {
	return dto.CustomerRequest{
		FirstName:      "Jan",
		LastName:       "Jansen",
		PostalCode:     "1234AB",
		Email:          email,
		Phone:          "+31612345678",
		CustomerNumber: number,
		CustomerType:   "zakelijk",
	}
}

func TestCustomerUseCase_CreateRejectsDuplicates(t *testing.T) {
	uc, _ := newCustomerUC(t)
	ctx := context.Background()

	first, err := uc.Create(ctx, request("jan@example.com", "KLT-0001"))
	require.NoError(t, err)
	assert.False(t, first.RegistrationDate.IsZero())

	_, err = uc.Create(ctx, request("jan@example.com", "KLT-0002"))
	assert.True(t, errors.Is(err, domain.ErrEmailInUse))

	_, err = uc.Create(ctx, request("piet@example.com", "KLT-0001"))
	assert.True(t, errors.Is(err, domain.ErrCustomerNumberInUse))
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestCustomerUseCase_CreateCollectsFieldErrors(t *testing.T) {
	uc, _ := newCustomerUC(t)

	in := request("geen-email", "K-1")
	in.FirstName = " "
	_, err := uc.Create(context.Background(), in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidFormat))

	var fields []string
	for _, fe := range domain.FieldErrors(err) {
		fields = append(fields, fe.Field)
	}
	assert.Equal(t, []string{"voornaam", "klantnummer", "email"}, fields)
}

func TestCustomerUseCase_UpdateKeepsOwnEmail(t *testing.T) {
	uc, _ := newCustomerUC(t)
	ctx := context.Background()

	jan, err := uc.Create(ctx, request("jan@example.com", "KLT-0001"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, request("piet@example.com", "KLT-0002"))
	require.NoError(t, err)

	in := request("jan@example.com", "KLT-0001")
	in.City = "Amersfoort"
	updated, err := uc.Update(ctx, jan.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Amersfoort", updated.City)
	assert.Equal(t, jan.RegistrationDate, updated.RegistrationDate)

	_, err = uc.Update(ctx, jan.ID, request("piet@example.com", "KLT-0001"))
	assert.True(t, errors.Is(err, domain.ErrEmailInUse))

	_, err = uc.Update(ctx, 999, request("nieuw@example.com", "KLT-0009"))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCustomerUseCase_DeleteBlockedByProjects(t *testing.T) {
	uc, repos := newCustomerUC(t)
	ctx := context.Background()

	jan, err := uc.Create(ctx, request("jan@example.com", "KLT-0001"))
	require.NoError(t, err)
	require.NoError(t, repos.Projects.Create(ctx, &entity.Project{
		Name: "Warmtepomp", CustomerID: jan.ID, Status: entity.ProjectStatusScheduled,
	}))

	err = uc.Delete(ctx, jan.ID)
	assert.True(t, errors.Is(err, domain.ErrCustomerHasProjects))

	_, err = uc.GetByID(ctx, jan.ID)
	assert.NoError(t, err)

	// Una klant inexistente no es un error.
	assert.NoError(t, uc.Delete(ctx, 999))
}

func TestCustomerUseCase_ListPaging(t *testing.T) {
	uc, _ := newCustomerUC(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, request("a@example.com", "KLT-0001"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, request("b@example.com", "KLT-0002"))
	require.NoError(t, err)

	page, err := uc.List(ctx, dto.PageRequest{Skip: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b@example.com", page[0].Email)
}
