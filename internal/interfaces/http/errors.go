package http

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/ports"
	"github.com/jhoicas/Taller-api/internal/domain"
)

// errorMapping traduce un error de dominio a estado HTTP y código.
type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa: los errores tipados envuelven más de un sentinel.
var errorMappings = []errorMapping{
	{domain.ErrInvalidBackupFormat, fiber.StatusBadRequest, "INVALID_BACKUP"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrSequenceUnavailable, fiber.StatusServiceUnavailable, "SEQUENCE_UNAVAILABLE"},
	{ports.ErrLLMNotConfigured, fiber.StatusServiceUnavailable, "AI_UNAVAILABLE"},
	{domain.ErrBackupFailed, fiber.StatusInternalServerError, "BACKUP_FAILED"},
	{domain.ErrRestoreFailed, fiber.StatusInternalServerError, "RESTORE_FAILED"},
	{context.DeadlineExceeded, fiber.StatusRequestTimeout, "TIMEOUT"},
}

// respondError escribe dto.ErrorResponse con el estado que corresponde a err.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func notFound(c *fiber.Ctx, what string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: what + " no encontrado"})
}

// bounds convierte el rango de fechas; un rango inválido es domain.ErrInvalidInput.
func bounds(q dto.DateRangeQuery) (from, to *time.Time, err error) {
	from, to, err = q.Bounds()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return from, to, nil
}
