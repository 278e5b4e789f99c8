package http

import (
	"bytes"
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Taller-api/internal/application/analytics"
	"github.com/jhoicas/Taller-api/internal/application/backup"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain/document"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// SettingsHandler maneja los datos del establecimiento y el backup/restore.
type SettingsHandler struct {
	settings  *usecase.SettingsUseCase
	engine    *backup.Engine
	dashboard *appanalytics.DashboardUseCase
	onRestore func(ctx context.Context)
	log       *logger.Logger

	// restoring impide dos restores simultáneos.
	restoring atomic.Bool
}

// NewSettingsHandler construye el handler. onRestore (opcional) corre tras un restore exitoso.
func NewSettingsHandler(
	settings *usecase.SettingsUseCase,
	engine *backup.Engine,
	dashboard *appanalytics.DashboardUseCase,
	onRestore func(ctx context.Context),
	log *logger.Logger,
) *SettingsHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &SettingsHandler{
		settings:  settings,
		engine:    engine,
		dashboard: dashboard,
		onRestore: onRestore,
		log:       log.Component("settings"),
	}
}

// GetEstablishment GET /api/settings/establishment
func (h *SettingsHandler) GetEstablishment(c *fiber.Ctx) error {
	out, err := h.settings.GetEstablishment(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SaveEstablishment PUT /api/settings/establishment
func (h *SettingsHandler) SaveEstablishment(c *fiber.Ctx) error {
	var in dto.EstablishmentRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.settings.SaveEstablishment(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Backup godoc
// @Summary      Descargar backup completo
// @Description  Exporta todas las colecciones en el formato JSON de backup (timestamps con __datatype__).
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/settings/backup [get]
func (h *SettingsHandler) Backup(c *fiber.Ctx) error {
	bundle, err := h.engine.Export(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	data, err := backup.Marshal(bundle)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, backup.FileName(time.Now())))
	return c.Send(data)
}

// Restore godoc
// @Summary      Restaurar backup
// @Description  Reemplaza TODAS las colecciones por el contenido del archivo. Exige confirm=true.
// @Description  No es atómico: si falla a mitad de camino los datos quedan parcialmente restaurados.
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        confirm  query  bool    true  "debe ser true"
// @Param        body     body   object  true  "archivo de backup"
// @Success      200  {object}  dto.RestoreResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/settings/restore [post]
func (h *SettingsHandler) Restore(c *fiber.Ctx) error {
	if !c.QueryBool("confirm") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "CONFIRMATION_REQUIRED", Message: "el restore reemplaza todos los datos; envía confirm=true",
		})
	}
	bundle, err := document.ParseBundle(bytes.NewReader(c.Body()))
	if err != nil {
		return respondError(c, err)
	}
	summary, err := h.engine.Inspect(bundle)
	if err != nil {
		return respondError(c, err)
	}

	if !h.restoring.CompareAndSwap(false, true) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "RESTORE_IN_PROGRESS", Message: "ya hay un restore en curso",
		})
	}
	defer h.restoring.Store(false)

	h.log.Warn().Str("user_id", GetUserID(c)).Interface("collections", summary.Counts).Msg("restore solicitado")
	err = h.engine.Import(c.Context(), bundle)
	// Con restore parcial los datos también cambiaron.
	h.dashboard.Invalidate()
	if err != nil {
		return respondError(c, err)
	}
	if h.onRestore != nil {
		h.onRestore(c.Context())
	}

	ignored := summary.Unknown
	if ignored == nil {
		ignored = []string{}
	}
	return c.JSON(dto.RestoreResponse{Restored: summary.Counts, Ignored: ignored})
}
