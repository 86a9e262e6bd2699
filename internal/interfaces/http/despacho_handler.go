package http

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/despachos-api/internal/application/dto"
	"github.com/jhoicas/despachos-api/internal/domain"
	"github.com/jhoicas/despachos-api/internal/domain/entity"
)

// despachoService consultas del pipeline de conciliación.
type despachoService interface {
	GetAll(ctx context.Context) dto.Envelope[[]entity.ReconciledLine]
	Refresh(ctx context.Context) dto.Envelope[[]entity.ReconciledLine]
	FindByDocument(ctx context.Context, code string) dto.Envelope[[]entity.ReconciledLine]
}

type lineExporter interface {
	Export(lines []entity.ReconciledLine, generatedAt time.Time) ([]byte, error)
}

type dispatchSheetGenerator interface {
	Generate(ctx context.Context, document string, lines []entity.ReconciledLine, generatedAt time.Time) ([]byte, error)
}

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// DespachoHandler expone la vista conciliada al escáner y al panel.
type DespachoHandler struct {
	svc      despachoService
	exporter lineExporter
	sheets   dispatchSheetGenerator
}

// NewDespachoHandler construye el handler.
func NewDespachoHandler(svc despachoService, exporter lineExporter, sheets dispatchSheetGenerator) *DespachoHandler {
	return &DespachoHandler{svc: svc, exporter: exporter, sheets: sheets}
}

// List godoc
// @Summary      Líneas conciliadas
// @Description  Vista completa; se sirve de la caché mientras esté vigente.
// @Tags         despachos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Envelope[[]entity.ReconciledLine]
// @Failure      502  {object}  dto.Envelope[[]entity.ReconciledLine]
// @Router       /api/despachos [get]
func (h *DespachoHandler) List(c *fiber.Ctx) error {
	return envelopeJSON(c, h.svc.GetAll(c.Context()))
}

// Find godoc
// @Summary      Buscar por código escaneado
// @Description  Coincide con documento, factura o lote, sin distinguir mayúsculas.
// @Tags         despachos
// @Produce      json
// @Security     BearerAuth
// @Param        codigo  path  string  true  "Documento, factura o lote"
// @Success      200  {object}  dto.Envelope[[]entity.ReconciledLine]
// @Failure      502  {object}  dto.Envelope[[]entity.ReconciledLine]
// @Router       /api/despachos/buscar/{codigo} [get]
func (h *DespachoHandler) Find(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Params("codigo"))
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "código requerido"})
	}
	return envelopeJSON(c, h.svc.FindByDocument(c.Context(), code))
}

// Refresh godoc
// @Summary      Forzar conciliación
// @Tags         despachos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Envelope[[]entity.ReconciledLine]
// @Failure      502  {object}  dto.Envelope[[]entity.ReconciledLine]
// @Router       /api/despachos/refrescar [post]
func (h *DespachoHandler) Refresh(c *fiber.Ctx) error {
	return envelopeJSON(c, h.svc.Refresh(c.Context()))
}

// ExportXLSX godoc
// @Summary      Exportar a Excel
// @Tags         despachos
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/despachos/export.xlsx [get]
func (h *DespachoHandler) ExportXLSX(c *fiber.Ctx) error {
	env := h.svc.GetAll(c.Context())
	if !env.Success && env.Data == nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "FETCH_FAILED", Message: env.Error})
	}
	b, err := h.exporter.Export(env.Data, env.Timestamp)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Attachment("despachos-" + env.Timestamp.Format("20060102-1504") + ".xlsx")
	c.Set(fiber.HeaderContentType, mimeXLSX)
	return c.Send(b)
}

// DispatchSheet godoc
// @Summary      Planilla de despacho en PDF
// @Tags         despachos
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        documento  path  string  true  "Documento de despacho, ej. REC500"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/despachos/{documento}/planilla.pdf [get]
func (h *DespachoHandler) DispatchSheet(c *fiber.Ctx) error {
	document := strings.TrimSpace(c.Params("documento"))
	env := h.svc.FindByDocument(c.Context(), document)
	if !env.Success && env.Data == nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "FETCH_FAILED", Message: env.Error})
	}
	lines := make([]entity.ReconciledLine, 0, len(env.Data))
	for _, l := range env.Data {
		if strings.EqualFold(l.OrderDocument, document) {
			lines = append(lines, l)
		}
	}
	b, err := h.sheets.Generate(c.Context(), document, lines, env.Timestamp)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento sin líneas conciliadas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Attachment("planilla-" + document + ".pdf")
	c.Set(fiber.HeaderContentType, mimePDF)
	return c.Send(b)
}

// envelopeJSON responde 200 si la pasada fue exitosa y 502 si falló la lectura
// de fuentes; el cuerpo es siempre el sobre, con la vista en caché si existe.
func envelopeJSON(c *fiber.Ctx, env dto.Envelope[[]entity.ReconciledLine]) error {
	if !env.Success {
		return c.Status(fiber.StatusBadGateway).JSON(env)
	}
	return c.JSON(env)
}
