package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

// errorWriter traduce errores de dominio a respuestas HTTP y registra los 500.
type errorWriter struct {
	log *logger.Logger
}

func (w errorWriter) write(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidFormat), errors.Is(err, domain.ErrInvalidInput):
		resp := dto.ErrorResponse{Code: "VALIDATION", Message: "Ongeldige invoer"}
		for _, fe := range domain.FieldErrors(err) {
			resp.Fields = append(resp.Fields, dto.FieldIssue{Field: fe.Field, Message: fe.Message})
		}
		if len(resp.Fields) == 1 {
			resp.Message = resp.Fields[0].Message
		}
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	case errors.Is(err, domain.ErrConflict):
		resp := dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
		var ce *domain.ConflictError
		if errors.As(err, &ce) {
			resp.Message = ce.Message
			resp.Fields = []dto.FieldIssue{{Field: ce.Field, Message: ce.Message}}
		}
		return c.Status(fiber.StatusConflict).JSON(resp)
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrIO):
		w.log.Error().Err(err).Str("path", c.Path()).Msg("fout bij bestandsopslag")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "Bestandsopslag niet beschikbaar"})
	default:
		w.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("interne fout")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "Interne fout"})
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Ongeldige body"})
}

// paramID lee un id entero positivo de la ruta.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.FieldError{Field: name, Message: "Ongeldig id."}
	}
	return id, nil
}

// pageFromQuery lee skip y limit; valores no numéricos se tratan como ausentes.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Skip: c.QueryInt("skip", 0), Limit: c.QueryInt("limit", 100)}
}
