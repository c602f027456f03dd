package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/project"
)

// ProjectHandler maneja projecten, taken, afspraken y la werkbon.
type ProjectHandler struct {
	uc        *project.ProjectUseCase
	workOrder *project.WorkOrderUseCase
	errorWriter
}

// NewProjectHandler construye el handler.
func NewProjectHandler(uc *project.ProjectUseCase, workOrder *project.WorkOrderUseCase, ew errorWriter) *ProjectHandler {
	return &ProjectHandler{uc: uc, workOrder: workOrder, errorWriter: ew}
}

// Create godoc
// @Summary      Project aanmaken met taken, afspraken en documenten
// @Tags         projecten
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateProjectRequest  true  "project"
// @Success      201   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/projecten [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return h.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/projecten?skip=0&limit=100 (orden por startdatum)
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), pageFromQuery(c))
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/projecten/:id
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.write(c, err)
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/projecten/:id
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.write(c, err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return h.write(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Project verwijderd"})
}

// UpdateStatus PUT /api/projecten/:id/status
func (h *ProjectHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.write(c, err)
	}
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStatus(c.Context(), id, in.Status)
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

// UpdateInstallers PUT /api/projecten/:id/installateurs
func (h *ProjectHandler) UpdateInstallers(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.write(c, err)
	}
	var in dto.InstallersRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateInstallers(c.Context(), id, in.Installers)
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

// WorkOrder godoc
// @Summary      Werkbon (PDF) van een project
// @Tags         projecten
// @Produce      application/pdf
// @Param        id   path      int  true  "project id"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projecten/{id}/werkbon [get]
func (h *ProjectHandler) WorkOrder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.write(c, err)
	}
	pdf, filename, err := h.workOrder.DownloadWorkOrderPDF(c.Context(), id)
	if err != nil {
		return h.write(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(pdf)
}

// AddTask POST /api/projecten/:id/taken
func (h *ProjectHandler) AddTask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.write(c, err)
	}
	var in dto.CreateTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddTask(c.Context(), id, in)
	if err != nil {
		return h.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateTaskStatus PUT /api/taken/:id/status
func (h *ProjectHandler) UpdateTaskStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.write(c, err)
	}
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateTaskStatus(c.Context(), id, in.Status)
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

// UpdateTask PATCH /api/taken/:id (solo los campos enviados)
func (h *ProjectHandler) UpdateTask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.write(c, err)
	}
	var in dto.UpdateTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateTask(c.Context(), id, in)
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

// DeleteTask DELETE /api/taken/:id
func (h *ProjectHandler) DeleteTask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.write(c, err)
	}
	if err := h.uc.DeleteTask(c.Context(), id); err != nil {
		return h.write(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: fmt.Sprintf("Taak %d verwijderd", id)})
}

// AddAppointment POST /api/projecten/:id/afspraken
func (h *ProjectHandler) AddAppointment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.write(c, err)
	}
	var in dto.CreateAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddAppointment(c.Context(), id, in)
	if err != nil {
		return h.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteAppointment DELETE /api/afspraken/:id
func (h *ProjectHandler) DeleteAppointment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.write(c, err)
	}
	if err := h.uc.DeleteAppointment(c.Context(), id); err != nil {
		return h.write(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: fmt.Sprintf("Afspraak %d verwijderd", id)})
}
