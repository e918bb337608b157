package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nicklvs1307/stockfy/internal/application/dto"
	"github.com/nicklvs1307/stockfy/internal/domain"
)

// writeError traduce errores de dominio a status HTTP.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func invalidParams(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: msg})
}

// dateRange lee dataInicio/dataFim de la query. Un fin solo-fecha cubre el día completo.
func dateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if s := strings.TrimSpace(c.Query("dataInicio")); s != "" {
		t, err := dto.ParseTimestamp(s)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if s := strings.TrimSpace(c.Query("dataFim")); s != "" {
		t, err := dto.ParseTimestamp(s)
		if err != nil {
			return nil, nil, err
		}
		if _, perr := time.Parse(time.DateOnly, s); perr == nil {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		to = &t
	}
	return from, to, nil
}

// refDate fecha de referencia (?ref=) o ahora.
func refDate(c *fiber.Ctx) (time.Time, error) {
	s := strings.TrimSpace(c.Query("ref"))
	if s == "" {
		return time.Now(), nil
	}
	return dto.ParseTimestamp(s)
}
