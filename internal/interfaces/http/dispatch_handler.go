package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/dispatch"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/dto"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain"
)

// DispatchHandler maneja la creación y reversión de remisiones y el reset masivo.
type DispatchHandler struct {
	uc *dispatch.UseCase
}

// NewDispatchHandler construye el handler.
func NewDispatchHandler(uc *dispatch.UseCase) *DispatchHandler {
	return &DispatchHandler{uc: uc}
}

// Create godoc
// @Summary      Crear la remisión Netsis de un pedido preparado
// @Tags         dispatch
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.DispatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/dispatch [post]
func (h *DispatchHandler) Create(c *fiber.Ctx) error {
	out, err := h.uc.Create(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		case errors.Is(err, domain.ErrNotFulfilled):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NOT_FULFILLED", Message: err.Error()})
		case errors.Is(err, domain.ErrAlreadyDispatched):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_DISPATCHED", Message: err.Error()})
		case errors.Is(err, domain.ErrErpRejected):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "ERP_REJECTED", Message: err.Error()})
		case errors.Is(err, domain.ErrErpUnreachable):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "ERP_UNREACHABLE", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Revertir la remisión de un pedido (rollback administrativo)
// @Tags         dispatch
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.ClearDispatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/dispatch [delete]
func (h *DispatchHandler) Clear(c *fiber.Ctx) error {
	out, err := h.uc.Clear(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		case errors.Is(err, domain.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_DISPATCH", Message: "el pedido no tiene remisión que revertir"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(out)
}

// ResetAll godoc
// @Summary      Reset administrativo masivo (todos los pedidos)
// @Tags         dispatch
// @Produce      json
// @Success      200  {object}  dto.ResetAllResponse
// @Router       /api/admin/reset-all [post]
func (h *DispatchHandler) ResetAll(c *fiber.Ctx) error {
	out, err := h.uc.ResetAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
