package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/dto"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/picking"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain"
)

// PickingHandler maneja escaneos y el reset por pedido.
type PickingHandler struct {
	uc *picking.UseCase
}

// NewPickingHandler construye el handler.
func NewPickingHandler(uc *picking.UseCase) *PickingHandler {
	return &PickingHandler{uc: uc}
}

// RecordScan godoc
// @Summary      Registrar un escaneo contra una línea de pedido
// @Tags         picking
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordScanRequest  true  "Línea y barcode escaneado"
// @Success      200   {object}  dto.RecordScanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/picking/scans [post]
func (h *PickingHandler) RecordScan(c *fiber.Ctx) error {
	var in dto.RecordScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RecordScan(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "order_item_id y barcode son requeridos"})
		case errors.Is(err, domain.ErrItemNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ITEM_NOT_FOUND", Message: err.Error()})
		case errors.Is(err, domain.ErrBarcodeMismatch):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "BARCODE_MISMATCH", Message: err.Error()})
		case errors.Is(err, domain.ErrOverPick):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "OVER_PICK", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(out)
}

// ResetOrder godoc
// @Summary      Reset administrativo del picking de un pedido
// @Tags         picking
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.ResetOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/reset [post]
func (h *PickingHandler) ResetOrder(c *fiber.Ctx) error {
	out, err := h.uc.ResetOrder(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
