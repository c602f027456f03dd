package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/sqlite"
)

func newRepos(t *testing.T) (repository.Set, *sqlite.TxRunner) {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })
	return sqlite.NewRepositorySet(db), sqlite.NewTxRunner(db)
}

func customer(last, email, number string) *entity.Customer {
	return &entity.Customer{
		FirstName: "Jan", LastName: last, PostalCode: "1234 AB", City: "Utrecht",
		Email: email, Phone: "0612345678", CustomerNumber: number,
		CustomerType:     entity.CustomerTypeIndividual,
		RegistrationDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCustomerRepository_CRUD(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	c := customer("Jansen", "jan@example.com", "KLT-0001")
	require.NoError(t, repos.Customers.Create(ctx, c))
	assert.Equal(t, int64(1), c.ID)

	got, err := repos.Customers.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Jansen", got.LastName)
	assert.True(t, got.RegistrationDate.Equal(c.RegistrationDate))

	c.City = ""
	require.NoError(t, repos.Customers.Update(ctx, c))
	got, err = repos.Customers.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, got.City)

	require.NoError(t, repos.Customers.Delete(ctx, c.ID))
	got, err = repos.Customers.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCustomerRepository_UniqueViolations(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Customers.Create(ctx, customer("Jansen", "jan@example.com", "KLT-0001")))

	err := repos.Customers.Create(ctx, customer("Bakker", "jan@example.com", "KLT-0002"))
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, errors.Is(err, domain.ErrEmailInUse))

	err = repos.Customers.Create(ctx, customer("Bakker", "piet@example.com", "KLT-0001"))
	assert.True(t, errors.Is(err, domain.ErrCustomerNumberInUse))

	inUse, err := repos.Customers.EmailInUse(ctx, "jan@example.com", 0)
	require.NoError(t, err)
	assert.True(t, inUse)
	inUse, err = repos.Customers.EmailInUse(ctx, "jan@example.com", 1)
	require.NoError(t, err)
	assert.False(t, inUse)
}

func TestCustomerRepository_Search(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Customers.Create(ctx, customer("Visser", "a@example.com", "KLT-0001")))
	require.NoError(t, repos.Customers.Create(ctx, customer("Jansen", "b@example.com", "KLT-0002")))
	require.NoError(t, repos.Customers.Create(ctx, customer("de Jansen", "c@example.com", "KLT-0003")))

	list, err := repos.Customers.Search(ctx, "JANSEN")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Jansen", list[0].LastName)
	assert.Equal(t, "de Jansen", list[1].LastName)

	list, err = repos.Customers.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, list, 3)

	list, err = repos.Customers.Search(ctx, "100%")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCustomerRepository_SearchFoldsNonASCII(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Customers.Create(ctx, customer("Özdemir", "a@example.com", "KLT-0001")))
	require.NoError(t, repos.Customers.Create(ctx, customer("Çelik", "b@example.com", "KLT-0002")))

	for _, term := range []string{"özdemir", "ÖZDEMIR", "Öz"} {
		list, err := repos.Customers.Search(ctx, term)
		require.NoError(t, err)
		require.Len(t, list, 1, term)
		assert.Equal(t, "Özdemir", list[0].LastName, term)
	}

	list, err := repos.Customers.Search(ctx, "çel")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Çelik", list[0].LastName)
}

func TestFolderRepository_NameUniquePerProject(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	a := &entity.Project{Name: "a", Status: entity.ProjectStatusScheduled}
	b := &entity.Project{Name: "b", Status: entity.ProjectStatusScheduled}
	require.NoError(t, repos.Projects.Create(ctx, a))
	require.NoError(t, repos.Projects.Create(ctx, b))

	require.NoError(t, repos.Folders.Create(ctx, &entity.DocumentFolder{ProjectID: a.ID, Name: "Offertes"}))
	err := repos.Folders.Create(ctx, &entity.DocumentFolder{ProjectID: a.ID, Name: "Offertes"})
	assert.True(t, errors.Is(err, domain.ErrFolderNameInUse))
	require.NoError(t, repos.Folders.Create(ctx, &entity.DocumentFolder{ProjectID: b.ID, Name: "Offertes"}))

	facturen := &entity.DocumentFolder{ProjectID: a.ID, Name: "Facturen"}
	require.NoError(t, repos.Folders.Create(ctx, facturen))
	facturen.Name = "Offertes"
	assert.True(t, errors.Is(repos.Folders.Update(ctx, facturen), domain.ErrFolderNameInUse))
}

func TestProjectRepository_ListOrdersByStartDate(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	day := func(d int) *time.Time {
		v := time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
		return &v
	}
	for _, p := range []*entity.Project{
		{Name: "zonder datum", Status: entity.ProjectStatusScheduled},
		{Name: "later", Status: entity.ProjectStatusScheduled, StartDate: day(20)},
		{Name: "eerder", Status: entity.ProjectStatusScheduled, StartDate: day(2)},
	} {
		require.NoError(t, repos.Projects.Create(ctx, p))
	}

	list, err := repos.Projects.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"eerder", "later", "zonder datum"}, []string{list[0].Name, list[1].Name, list[2].Name})

	list, err = repos.Projects.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "later", list[0].Name)
}

func TestTxRunner_RollbackOnError(t *testing.T) {
	repos, tx := newRepos(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := tx.Run(ctx, func(r repository.Set) error {
		p := &entity.Project{Name: "x", Status: entity.ProjectStatusScheduled}
		if err := r.Projects.Create(ctx, p); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, err := repos.Projects.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDocumentRepository_LatestByFilename(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	p := &entity.Project{Name: "x", Status: entity.ProjectStatusScheduled}
	require.NoError(t, repos.Projects.Create(ctx, p))
	f := &entity.DocumentFolder{ProjectID: p.ID, Name: "offertes"}
	require.NoError(t, repos.Folders.Create(ctx, f))

	require.NoError(t, repos.Documents.Create(ctx, &entity.Document{ProjectID: p.ID, Filename: "a.pdf", Path: "project_1/a.pdf"}))
	require.NoError(t, repos.Documents.Create(ctx, &entity.Document{ProjectID: p.ID, FolderID: &f.ID, Filename: "a.pdf", Path: "project_1/offertes/a.pdf"}))

	d, err := repos.Documents.LatestByFilename(ctx, p.ID, "a.pdf")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "project_1/offertes/a.pdf", d.Path)

	d, err = repos.Documents.LatestByFilename(ctx, p.ID, "b.pdf")
	require.NoError(t, err)
	assert.Nil(t, d)

	inFolder, err := repos.Documents.ListByFolder(ctx, f.ID)
	require.NoError(t, err)
	assert.Len(t, inFolder, 1)

	require.NoError(t, repos.Documents.DeleteByFolder(ctx, f.ID))
	all, err := repos.Documents.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
