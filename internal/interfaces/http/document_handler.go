package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/project"
	"github.com/jhoicas/backoffice-api/internal/domain"
)

// DocumentHandler maneja documentmappen, documenten, subidas y descargas.
type DocumentHandler struct {
	uc *project.DocumentUseCase
	errorWriter
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *project.DocumentUseCase, ew errorWriter) *DocumentHandler {
	return &DocumentHandler{uc: uc, errorWriter: ew}
}

// CreateFolder POST /api/projecten/:id/mappen
func (h *DocumentHandler) CreateFolder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.write(c, err)
	}
	var in dto.FolderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateFolder(c.Context(), id, in)
	if err != nil {
		return h.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListFolders GET /api/projecten/:id/mappen
func (h *DocumentHandler) ListFolders(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.write(c, err)
	}
	list, err := h.uc.ListFolders(c.Context(), id)
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(list)
}

// UpdateFolder PUT /api/mappen/:id
func (h *DocumentHandler) UpdateFolder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.write(c, err)
	}
	var in dto.FolderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateFolder(c.Context(), id, in)
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

// DeleteFolder DELETE /api/mappen/:id
func (h *DocumentHandler) DeleteFolder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.write(c, err)
	}
	if err := h.uc.DeleteFolder(c.Context(), id); err != nil {
		return h.write(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Map verwijderd"})
}

// ListFolderDocuments GET /api/mappen/:id/documenten
func (h *DocumentHandler) ListFolderDocuments(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.write(c, err)
	}
	list, err := h.uc.ListDocumentsInFolder(c.Context(), id)
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(list)
}

// Create POST /api/documenten (solo registro; los bytes ya están en el store)
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddDocument(c.Context(), in)
	if err != nil {
		return h.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Upload godoc
// @Summary      Document uploaden
// @Tags         documenten
// @Accept       multipart/form-data
// @Produce      json
// @Param        project_id  formData  int   true   "project id"
// @Param        map_id      formData  int   false  "map id"
// @Param        file        formData  file  true   "bestand"
// @Success      201  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/documenten/upload [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	projectID, err := strconv.ParseInt(c.FormValue("project_id"), 10, 64)
	if err != nil || projectID <= 0 {
		return h.write(c, &domain.FieldError{Field: "project_id", Message: "Ongeldig id."})
	}
	var folderID *int64
	if raw := strings.TrimSpace(c.FormValue("map_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return h.write(c, &domain.FieldError{Field: "map_id", Message: "Ongeldig id."})
		}
		folderID = &id
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return h.write(c, &domain.FieldError{Field: "file", Message: "Veld is verplicht."})
	}
	f, err := fh.Open()
	if err != nil {
		return h.write(c, fmt.Errorf("%w: open upload: %v", domain.ErrIO, err))
	}
	defer f.Close()

	out, err := h.uc.Upload(c.Context(), dto.UploadDocumentRequest{
		ProjectID: projectID,
		FolderID:  folderID,
		Filename:  fh.Filename,
		Content:   f,
	})
	if err != nil {
		return h.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Download godoc
// @Summary      Document downloaden (meest recente met deze naam)
// @Tags         documenten
// @Produce      octet-stream
// @Param        projectID  path  int     true  "project id"
// @Param        filename   path  string  true  "bestandsnaam"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documenten/download/{projectID}/{filename} [get]
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	projectID, err := paramID(c, "projectID")
	if err != nil {
		return h.write(c, err)
	}
	// Params llega sin decodificar; un '%' que no forma un escape válido se toma literal.
	filename := c.Params("filename")
	if decoded, err := url.PathUnescape(filename); err == nil {
		filename = decoded
	}
	out, err := h.uc.Download(c.Context(), projectID, filename)
	if err != nil {
		return h.write(c, err)
	}
	c.Attachment(out.Filename)
	c.Set(fiber.HeaderContentType, out.ContentType)
	return c.SendStream(out.Body)
}

// Delete DELETE /api/documenten/:id
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.write(c, err)
	}
	if err := h.uc.DeleteDocument(c.Context(), id); err != nil {
		return h.write(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: fmt.Sprintf("Document %d verwijderd", id)})
}
