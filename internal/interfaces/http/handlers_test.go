package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/project"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/pdf"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp monta la API completa sobre SQLite y un almacén local temporales.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(filepath.Join(dir, "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	store, err := storage.NewLocalStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	log := logger.Nop()
	repos, tx := sqlite.NewRepositorySet(db), sqlite.NewTxRunner(db)

	app := fiber.New()
	app.Use(apphttp.AccessLog(log))
	apphttp.Router(app, apphttp.RouterDeps{
		CustomerUC:  usecase.NewCustomerUseCase(repos.Customers, tx),
		ProjectUC:   project.NewProjectUseCase(repos, tx, store, log),
		DocumentUC:  project.NewDocumentUseCase(repos, tx, store, log),
		WorkOrderUC: project.NewWorkOrderUseCase(repos, pdf.NewMarotoPDFGenerator("Installatiebedrijf Test")),
		Log:         log,
	})
	return app
}

// doJSON lanza una petición con cuerpo JSON (nil = sin cuerpo).
func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func janJansen() map[string]any {
	return map[string]any{
		"voornaam":    "Jan",
		"achternaam":  "Jansen",
		"straatnaam":  "Dorpsstraat",
		"huisnummer":  "12",
		"postcode":    "1234 AB",
		"woonplaats":  "Utrecht",
		"email":       "jan@example.com",
		"telefoon":    "0612345678",
		"klantnummer": "KLT-0001",
		"klanttype":   "particulier",
	}
}

func createCustomer(t *testing.T, app *fiber.App) dto.CustomerResponse {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/klanten/", janJansen())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[dto.CustomerResponse](t, resp)
}

func createProject(t *testing.T, app *fiber.App, customerID int64, body map[string]any) dto.ProjectResponse {
	t.Helper()
	body["klant_id"] = customerID
	if _, ok := body["projectnaam"]; !ok {
		body["projectnaam"] = "Zonnepanelen"
	}
	resp := doJSON(t, app, http.MethodPost, "/api/projecten/", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[dto.ProjectResponse](t, resp)
}

func upload(t *testing.T, app *fiber.App, projectID int64, filename string, content []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("project_id", fmt.Sprint(projectID)))
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documenten/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Klanten
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomers_CreateAndDuplicateEmail(t *testing.T) {
	app := buildTestApp(t)

	got := createCustomer(t, app)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Jansen", got.LastName)
	assert.Equal(t, time.Now().Format(dto.DateLayout), got.RegistrationDate.Format(dto.DateLayout))

	dup := janJansen()
	dup["klantnummer"] = "KLT-0002"
	resp := doJSON(t, app, http.MethodPost, "/api/klanten/", dup)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "CONFLICT", body.Code)
	require.Len(t, body.Fields, 1)
	assert.Equal(t, "email", body.Fields[0].Field)
}

func TestCustomers_ValidationListsEveryField(t *testing.T) {
	app := buildTestApp(t)

	in := janJansen()
	in["telefoon"] = "12345"
	in["postcode"] = "1234"
	in["klanttype"] = "onbekend"
	resp := doJSON(t, app, http.MethodPost, "/api/klanten/", in)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	var fields []string
	for _, f := range body.Fields {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"telefoon", "postcode", "klanttype"}, fields)
}

func TestCustomers_SearchGetAndDelete(t *testing.T) {
	app := buildTestApp(t)
	c := createCustomer(t, app)

	resp := doJSON(t, app, http.MethodGet, "/api/klanten/zoek?query=jansen", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decode[[]dto.CustomerResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)

	resp = doJSON(t, app, http.MethodGet, "/api/klanten/zoek?query=pietersen", nil)
	assert.Empty(t, decode[[]dto.CustomerResponse](t, resp))

	resp = doJSON(t, app, http.MethodGet, "/api/klanten/abc", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/klanten/%d", c.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/klanten/%d", c.ID), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCustomers_DeleteBlockedByProject(t *testing.T) {
	app := buildTestApp(t)
	c := createCustomer(t, app)
	createProject(t, app, c.ID, map[string]any{})

	resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/klanten/%d", c.ID), nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Projecten
// ──────────────────────────────────────────────────────────────────────────────

func TestProjects_CreateWithChildrenAndCascadeDelete(t *testing.T) {
	app := buildTestApp(t)
	c := createCustomer(t, app)

	p := createProject(t, app, c.ID, map[string]any{
		"startdatum": "2024-05-01",
		"taken": []map[string]any{
			{"titel": "Dak inmeten", "datum": "2024-05-01"},
			{"titel": "Panelen plaatsen", "datum": "2024-05-02", "kleur": "#FF0000", "status": "bezig"},
		},
		"afspraken": []map[string]any{
			{"titel": "Intake", "datum": "2024-04-20", "notities": "Sleutel bij de buren"},
		},
	})
	assert.Equal(t, "ingepland", p.Status)
	require.Len(t, p.Tasks, 2)
	assert.Equal(t, "#000000", p.Tasks[0].Color)
	assert.Equal(t, "open", p.Tasks[0].Status)
	require.Len(t, p.Appointments, 1)

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/projecten/%d", p.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	detail := decode[dto.ProjectResponse](t, resp)
	require.NotNil(t, detail.Customer)
	assert.Equal(t, "Jansen", detail.Customer.LastName)
	assert.Len(t, detail.Tasks, 2)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/projecten/%d", p.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/projecten/%d", p.ID), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Las taken del project eliminado ya no existen.
	resp = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/taken/%d", p.Tasks[0].ID), map[string]any{"titel": "x"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// El project ya no bloquea el borrado de la klant.
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/klanten/%d", c.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProjects_UnknownCustomer(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodPost, "/api/projecten/", map[string]any{"projectnaam": "Dakkapel", "klant_id": 99})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProjects_StatusAndTaskUpdates(t *testing.T) {
	app := buildTestApp(t)
	c := createCustomer(t, app)
	p := createProject(t, app, c.ID, map[string]any{})
	path := fmt.Sprintf("/api/projecten/%d", p.ID)

	resp := doJSON(t, app, http.MethodPut, path+"/status", map[string]any{"status": "bezig"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "bezig", decode[dto.ProjectResponse](t, resp).Status)

	resp = doJSON(t, app, http.MethodPut, path+"/status", map[string]any{"status": "gepauzeerd"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, path+"/installateurs", map[string]any{"installateurs": "Piet, Kees"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Piet, Kees", decode[dto.ProjectResponse](t, resp).Installers)

	resp = doJSON(t, app, http.MethodPost, path+"/taken", map[string]any{"titel": "Omvormer", "datum": "2024-06-01"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	task := decode[dto.TaskResponse](t, resp)

	resp = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/taken/%d", task.ID), map[string]any{"uitvoerder": "Piet"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	patched := decode[dto.TaskResponse](t, resp)
	assert.Equal(t, "Piet", patched.Executor)
	assert.Equal(t, "Omvormer", patched.Title)

	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/taken/%d/status", task.ID), map[string]any{"status": "afgerond"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "afgerond", decode[dto.TaskResponse](t, resp).Status)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/taken/%d", task.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	// Borrar una taak inexistente no es un error.
	resp = doJSON(t, app, http.MethodDelete, "/api/taken/999", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, path+"/afspraken", map[string]any{"titel": "Oplevering"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProjects_WorkOrderPDF(t *testing.T) {
	app := buildTestApp(t)
	c := createCustomer(t, app)
	p := createProject(t, app, c.ID, map[string]any{
		"taken": []map[string]any{{"titel": "Dak inmeten", "datum": "2024-05-01"}},
	})

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/projecten/%d/werkbon", p.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), fmt.Sprintf("werkbon_project_%d.pdf", p.ID))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp = doJSON(t, app, http.MethodGet, "/api/projecten/999/werkbon", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Documenten
// ──────────────────────────────────────────────────────────────────────────────

func TestDocuments_UploadAndDownload(t *testing.T) {
	app := buildTestApp(t)
	c := createCustomer(t, app)
	p := createProject(t, app, c.ID, map[string]any{})

	content := []byte("%PDF-1.4\n% offerte\n")
	resp := upload(t, app, p.ID, "invoice.pdf", content)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	doc := decode[dto.DocumentResponse](t, resp)
	assert.Equal(t, fmt.Sprintf("project_%d/invoice.pdf", p.ID), doc.Path)
	assert.Equal(t, "application/pdf", doc.ContentType)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/documenten/download/%d/invoice.pdf", p.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "application/pdf"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "invoice.pdf")
	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/documenten/download/%d/missing.pdf", p.ID), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = upload(t, app, 999, "invoice.pdf", content)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDocuments_FoldersLifecycle(t *testing.T) {
	app := buildTestApp(t)
	c := createCustomer(t, app)
	p := createProject(t, app, c.ID, map[string]any{})

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/projecten/%d/mappen", p.ID), map[string]any{"naam": "Tekeningen"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	folder := decode[dto.FolderResponse](t, resp)

	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/projecten/%d/mappen", p.ID), map[string]any{"naam": "a/b"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/documenten/", map[string]any{
		"bestandsnaam": "plattegrond.pdf",
		"pad":          fmt.Sprintf("project_%d/Tekeningen/plattegrond.pdf", p.ID),
		"project_id":   p.ID,
		"map_id":       folder.ID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/mappen/%d/documenten", folder.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.DocumentResponse](t, resp), 1)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/projecten/%d/mappen", p.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	folders := decode[[]dto.FolderResponse](t, resp)
	require.Len(t, folders, 1)
	assert.Len(t, folders[0].Documents, 1)

	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/mappen/%d", folder.ID), map[string]any{"naam": "Vergunningen"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Vergunningen", decode[dto.FolderResponse](t, resp).Name)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/mappen/%d", folder.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/mappen/%d", folder.ID), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDocuments_PathOutsideStoreRejected(t *testing.T) {
	app := buildTestApp(t)
	c := createCustomer(t, app)
	p := createProject(t, app, c.ID, map[string]any{})

	secret := filepath.Join(t.TempDir(), "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("TOPSECRET"), 0o600))

	for _, pad := range []string{secret, "../../secret.txt", fmt.Sprintf("project_%d/../../secret.txt", p.ID)} {
		resp := doJSON(t, app, http.MethodPost, "/api/documenten/", map[string]any{
			"bestandsnaam": "secret.txt",
			"pad":          pad,
			"project_id":   p.ID,
		})
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, pad)
		body := decode[dto.ErrorResponse](t, resp)
		require.Len(t, body.Fields, 1, pad)
		assert.Equal(t, "pad", body.Fields[0].Field, pad)
	}

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/documenten/download/%d/secret.txt", p.ID), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/projecten/%d", p.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got, err := os.ReadFile(secret)
	require.NoError(t, err)
	assert.Equal(t, "TOPSECRET", string(got))
}

func TestDocuments_DuplicateFolderNameConflict(t *testing.T) {
	app := buildTestApp(t)
	c := createCustomer(t, app)
	p := createProject(t, app, c.ID, map[string]any{})
	url := fmt.Sprintf("/api/projecten/%d/mappen", p.ID)

	resp := doJSON(t, app, http.MethodPost, url, map[string]any{"naam": "Offertes"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPost, url, map[string]any{"naam": "Offertes"})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "CONFLICT", body.Code)
	require.Len(t, body.Fields, 1)
	assert.Equal(t, "naam", body.Fields[0].Field)

	resp = doJSON(t, app, http.MethodPost, url, map[string]any{"naam": "Facturen"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	facturen := decode[dto.FolderResponse](t, resp)
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/mappen/%d", facturen.ID), map[string]any{"naam": "Offertes"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestDocuments_DownloadEscapedFilenames(t *testing.T) {
	app := buildTestApp(t)
	c := createCustomer(t, app)
	p := createProject(t, app, c.ID, map[string]any{})

	for _, name := range []string{"rapport%41.txt", "100%.txt", "a+b.txt", "offerte 2024.txt"} {
		resp := upload(t, app, p.ID, name, []byte("inhoud "+name))
		require.Equal(t, fiber.StatusCreated, resp.StatusCode, name)
	}

	get := func(rawPath string) (int, string) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RequestURI = fmt.Sprintf("/api/documenten/download/%d/%s", p.ID, rawPath)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(b)
	}

	for raw, want := range map[string]string{
		"rapport%2541.txt":   "rapport%41.txt",
		"100%25.txt":         "100%.txt",
		"100%.txt":           "100%.txt",
		"a+b.txt":            "a+b.txt",
		"offerte%202024.txt": "offerte 2024.txt",
	} {
		status, body := get(raw)
		require.Equal(t, fiber.StatusOK, status, raw)
		assert.Equal(t, "inhoud "+want, body, raw)
	}

	// Sin escapar, %41 se decodifica como "A".
	status, _ := get("rapport%41.txt")
	assert.Equal(t, fiber.StatusNotFound, status)
}
