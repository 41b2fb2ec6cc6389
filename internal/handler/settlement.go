package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yuetlam/splitter/internal/ledger"
)

// Balances handles GET /api/v1/trips/:id/balances?currency=D.
func (h *TripHandler) Balances(c *fiber.Ctx) error {
	balances, err := h.svc.Balances(c.Context(), c.Params("id"), c.Query("currency"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"currency": displayCode(c),
		"balances": balances,
	})
}

// Debts handles GET /api/v1/trips/:id/debts?currency=D.
func (h *TripHandler) Debts(c *fiber.Ctx) error {
	debts, err := h.svc.SuggestedDebts(c.Context(), c.Params("id"), c.Query("currency"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"currency": displayCode(c),
		"debts":    debts,
	})
}

// SettledHistory handles GET /api/v1/trips/:id/settlements?currency=D.
func (h *TripHandler) SettledHistory(c *fiber.Ctx) error {
	records, err := h.svc.SettledHistory(c.Context(), c.Params("id"), c.Query("currency"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"currency": displayCode(c),
		"settled":  records,
	})
}

type toggleRequest struct {
	ExpenseID string `json:"expenseId"`
	UserID    string `json:"userId"`
}

// ToggleSettlement handles POST /api/v1/trips/:id/settlements/toggle.
func (h *TripHandler) ToggleSettlement(c *fiber.Ctx) error {
	var req toggleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	trip, err := h.svc.ToggleSettlement(c.Context(), c.Params("id"), req.ExpenseID, req.UserID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(trip)
}

type settleAllRequest struct {
	UserID string `json:"userId"`
}

// SettleAll handles POST /api/v1/trips/:id/settlements/settle-all.
func (h *TripHandler) SettleAll(c *fiber.Ctx) error {
	var req settleAllRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	trip, err := h.svc.SettleAllFor(c.Context(), c.Params("id"), req.UserID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(trip)
}

type settleBetweenRequest struct {
	FromID        string `json:"fromId"`
	ToID          string `json:"toId"`
	PaymentMethod string `json:"paymentMethod"`
}

// SettleBetween handles POST /api/v1/trips/:id/settlements/settle.
func (h *TripHandler) SettleBetween(c *fiber.Ctx) error {
	var req settleBetweenRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	trip, err := h.svc.SettleBetween(c.Context(), c.Params("id"), req.FromID, req.ToID, req.PaymentMethod)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(trip)
}

// UnsettleBetween handles POST /api/v1/trips/:id/settlements/unsettle.
func (h *TripHandler) UnsettleBetween(c *fiber.Ctx) error {
	var req settleBetweenRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	trip, err := h.svc.UnsettleBetween(c.Context(), c.Params("id"), req.FromID, req.ToID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(trip)
}

// Currencies handles GET /api/v1/currencies.
func (h *TripHandler) Currencies(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"base":  ledger.BaseCurrency,
		"rates": h.svc.Rates(),
	})
}

func displayCode(c *fiber.Ctx) string {
	if code := c.Query("currency"); code != "" {
		return code
	}
	return ledger.BaseCurrency
}
