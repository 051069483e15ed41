package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nangulu/pos-api/internal/application/dto"
	"github.com/nangulu/pos-api/internal/application/inventory"
	"github.com/nangulu/pos-api/internal/domain"
)

// InventoryHandler maneja ingresos de stock, consultas de ledger/stock y catálogo.
type InventoryHandler struct {
	purchaseUC *inventory.PurchaseUseCase
	stockUC    *inventory.StockUseCase
	catalogUC  *inventory.CatalogUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(purchaseUC *inventory.PurchaseUseCase, stockUC *inventory.StockUseCase, catalogUC *inventory.CatalogUseCase) *InventoryHandler {
	return &InventoryHandler{purchaseUC: purchaseUC, stockUC: stockUC, catalogUC: catalogUC}
}

// RecordPurchase POST /api/inventory/purchases (solo admin)
func (h *InventoryHandler) RecordPurchase(c *fiber.Ctx) error {
	var in dto.RecordPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.purchaseUC.RecordPurchase(c.Context(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidQuantity) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "kg y costo deben ser mayores a cero"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "se requiere item_id o name"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetStock GET /api/inventory/items/:id/stock
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	out, err := h.stockUC.GetStock(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetLedger GET /api/inventory/items/:id/ledger
func (h *InventoryHandler) GetLedger(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	out, err := h.stockUC.GetLedger(c.Context(), c.Params("id"), page)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"entries": out, "count": len(out)})
}

// ListAlerts GET /api/inventory/alerts
func (h *InventoryHandler) ListAlerts(c *fiber.Ctx) error {
	out, err := h.stockUC.ListAlerts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"alerts": out, "count": len(out)})
}

// ListItems GET /api/inventory/items
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	out, err := h.catalogUC.ListActive(c.Context(), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"items": out, "count": len(out)})
}

// UpdatePrice PUT /api/inventory/items/:id/price (solo admin)
func (h *InventoryHandler) UpdatePrice(c *fiber.Ctx) error {
	var in dto.UpdatePriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.catalogUC.UpdatePrice(c.Context(), c.Params("id"), in.PricePerKg)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPrice) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PRICE", Message: "el precio debe ser mayor a cero"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DeactivateItem DELETE /api/inventory/items/:id (solo admin; soft delete)
func (h *InventoryHandler) DeactivateItem(c *fiber.Ctx) error {
	if err := h.catalogUC.Deactivate(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "artículo desactivado"})
}
