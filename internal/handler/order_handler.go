package handler

import (
	"go-market-orders/internal/model"
	"go-market-orders/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req model.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	buyerID, err := actorID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	order, err := h.service.CreateOrder(&req, buyerID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Order placed", "data": order})
}

func (h *OrderHandler) AcceptOrder(c *fiber.Ctx) error {
	return h.transition(c, h.service.AcceptOrder, "Order accepted")
}

func (h *OrderHandler) RejectOrder(c *fiber.Ctx) error {
	return h.transition(c, h.service.RejectOrder, "Order rejected")
}

func (h *OrderHandler) DeliverOrder(c *fiber.Ctx) error {
	return h.transition(c, h.service.DeliverOrder, "Order delivered")
}

func (h *OrderHandler) transition(c *fiber.Ctx, fn func(orderID, actorID uuid.UUID) (*model.Order, error), message string) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	actor, err := actorID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	order, err := fn(orderID, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": message, "data": order})
}

func (h *OrderHandler) GetPurchases(c *fiber.Ctx) error {
	buyerID, err := actorID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	orders, err := h.service.ListBuyerOrders(buyerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

func (h *OrderHandler) GetSales(c *fiber.Ctx) error {
	sellerID, err := actorID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	orders, err := h.service.ListSellerOrders(sellerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}
