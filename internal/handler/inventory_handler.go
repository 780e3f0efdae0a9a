package handler

import (
	"errors"
	"log"

	"go-inventory-shop/internal/model"
	"go-inventory-shop/internal/repository"
	"go-inventory-shop/internal/service"
	"go-inventory-shop/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
	devMode bool
}

// NewInventoryHandler builds the /api/inventory handlers.
// In devMode internal error text is returned to the client.
func NewInventoryHandler(s service.InventoryService, devMode bool) *InventoryHandler {
	return &InventoryHandler{service: s, devMode: devMode}
}

func (h *InventoryHandler) GetItems(c *fiber.Ctx) error {
	// q is validated and sanitized before matching; an over-long query is a 400
	search := validator.ValidateSearchQuery(c.Query("q"))
	if !search.IsValid {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": search.Error,
		})
	}

	filter := model.ItemFilter{
		Q:        search.Cleaned,
		Category: c.Query("category"),
		MinPrice: c.Query("minPrice"),
		MaxPrice: c.Query("maxPrice"),
	}

	result, err := h.service.ListItems(filter)
	if err != nil {
		return h.internalError(c, "Failed to retrieve inventory", err)
	}

	if result.Cached {
		return c.JSON(fiber.Map{
			"success": true,
			"data":    result.Items,
			"cached":  true,
			"total":   len(result.Items),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result.Items,
		"total":   len(result.Items),
		"filters": filter,
	})
}

func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validator.IsValidID(id) {
		return invalidID(c)
	}

	item, err := h.service.GetItem(id)
	if errors.Is(err, repository.ErrItemNotFound) {
		return itemNotFound(c)
	}
	if err != nil {
		return h.internalError(c, "Failed to retrieve item", err)
	}

	return c.JSON(fiber.Map{"success": true, "data": item})
}

func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	payload, err := parsePayload(c)
	if err != nil {
		return invalidJSON(c)
	}

	if result := validator.ValidateItemData(payload, true); !result.IsValid {
		return validationFailed(c, result.Errors)
	}

	item, err := h.service.CreateItem(bindItemInput(payload))
	if err != nil {
		return h.internalError(c, "Failed to create item", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Item created successfully",
		"data":    item,
	})
}

func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validator.IsValidID(id) {
		return invalidID(c)
	}

	payload, err := parsePayload(c)
	if err != nil {
		return invalidJSON(c)
	}

	if result := validator.ValidateItemData(payload, false); !result.IsValid {
		return validationFailed(c, result.Errors)
	}

	item, err := h.service.UpdateItem(id, bindItemInput(payload))
	if errors.Is(err, repository.ErrItemNotFound) {
		return itemNotFound(c)
	}
	if err != nil {
		return h.internalError(c, "Failed to update item", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Item updated successfully",
		"data":    item,
	})
}

func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validator.IsValidID(id) {
		return invalidID(c)
	}

	err := h.service.DeleteItem(id)
	if errors.Is(err, repository.ErrItemNotFound) {
		return itemNotFound(c)
	}
	if err != nil {
		return h.internalError(c, "Failed to delete item", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Item deleted successfully",
	})
}

func (h *InventoryHandler) internalError(c *fiber.Ctx, message string, err error) error {
	log.Printf("%s: %v", message, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": message,
		"error":   errorDetail(err, h.devMode),
	})
}

// parsePayload decodes the JSON body into a generic map so that absent keys
// can be told apart from zero values during partial updates.
func parsePayload(c *fiber.Ctx) (map[string]interface{}, error) {
	payload := map[string]interface{}{}
	if len(c.Body()) == 0 {
		return payload, nil
	}
	if err := c.BodyParser(&payload); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = map[string]interface{}{}
	}
	return payload, nil
}

// bindItemInput converts a validated payload; keys outside the item schema are ignored
func bindItemInput(payload map[string]interface{}) model.ItemInput {
	var input model.ItemInput
	if v, ok := payload["name"].(string); ok {
		input.Name = &v
	}
	if v, ok := payload["description"].(string); ok {
		input.Description = &v
	}
	if v, ok := payload["category"].(string); ok {
		input.Category = &v
	}
	if v, ok := validator.ParseNumber(payload["price"]); ok {
		input.Price = &v
	}
	if v, ok := validator.ParseInteger(payload["quantity"]); ok {
		input.Quantity = &v
	}
	if v, ok := payload["sku"].(string); ok {
		input.SKU = &v
	}
	return input
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Invalid item ID format",
	})
}

func invalidJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Invalid JSON payload",
	})
}

func itemNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"message": "Item not found",
	})
}

func validationFailed(c *fiber.Ctx, errs []string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Validation failed",
		"errors":  errs,
	})
}
