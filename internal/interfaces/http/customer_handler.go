package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
)

// CustomerHandler maneja las peticiones HTTP de klanten.
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
	errorWriter
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase, ew errorWriter) *CustomerHandler {
	return &CustomerHandler{uc: uc, errorWriter: ew}
}

// Create godoc
// @Summary      Klant aanmaken
// @Tags         klanten
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CustomerRequest  true  "klant"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/klanten [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return h.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/klanten?skip=0&limit=100
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), pageFromQuery(c))
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(list)
}

// Search godoc
// @Summary      Klanten zoeken (substring, ongevoelig voor hoofdletters)
// @Tags         klanten
// @Produce      json
// @Param        query  query     string  false  "zoekterm"
// @Success      200    {array}   dto.CustomerResponse
// @Router       /api/klanten/zoek [get]
func (h *CustomerHandler) Search(c *fiber.Ctx) error {
	list, err := h.uc.Search(c.Context(), c.Query("query"))
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/klanten/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
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

// Update PUT /api/klanten/:id (reemplaza todos los campos)
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.write(c, err)
	}
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/klanten/:id
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.write(c, err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return h.write(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Klant verwijderd"})
}
