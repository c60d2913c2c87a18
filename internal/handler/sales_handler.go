package handler

import (
	"go-market-orders/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SalesHandler struct {
	service service.SalesService
}

func NewSalesHandler(s service.SalesService) *SalesHandler {
	return &SalesHandler{service: s}
}

func (h *SalesHandler) GetToday(c *fiber.Ctx) error {
	sellerID, err := actorID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	sale, err := h.service.GetToday(sellerID)
	if err != nil {
		return respondError(c, err)
	}
	if sale == nil {
		return c.JSON(nil)
	}
	return c.JSON(sale)
}

func (h *SalesHandler) GetHistory(c *fiber.Ctx) error {
	sellerID, err := actorID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	sales, err := h.service.GetHistory(sellerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales)
}

func (h *SalesHandler) GetROI(c *fiber.Ctx) error {
	sellerID, err := actorID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	report, err := h.service.GetROI(sellerID, c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

func (h *SalesHandler) CloseDay(c *fiber.Ctx) error {
	var req struct {
		Date  string              `json:"date"`
		Items []service.WasteItem `json:"items"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sellerID, err := actorID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	sale, err := h.service.CloseDay(sellerID, req.Date, req.Items)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Day closed", "data": sale})
}
