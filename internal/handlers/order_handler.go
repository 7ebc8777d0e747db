package handlers

import (
	"strconv"

	"github.com/dommaster/backend/internal/apperr"
	"github.com/dommaster/backend/internal/dto"
	"github.com/dommaster/backend/internal/services"
	"github.com/dommaster/backend/internal/session"
	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	ident, err := session.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	order, err := h.orders.Create(ident.UserID, services.CreateOrderInput{
		ServiceItemID: req.ServiceItemID,
		Quantity:      req.Quantity,
		Phone:         req.Phone,
		Address:       req.Address,
		Note:          req.Note,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Order placed",
		"order_id": order.ID,
	})
}

func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	ident, err := session.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	orders, err := h.orders.ListForUser(ident.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewOrderListResponse(orders))
}

func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	ident, err := session.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	orderID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "order not found",
		})
	}

	if err := h.orders.Cancel(ident.UserID, uint(orderID)); err != nil {
		// The cancel contract reports a missing order as a client
		// error, not a 404.
		if apperr.KindOf(err) == apperr.KindNotFound {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Order cancelled"})
}
