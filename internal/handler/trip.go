package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yuetlam/splitter/internal/ai"
	"github.com/yuetlam/splitter/internal/service"
)

// TripHandler serves trip, expense and settlement endpoints.
type TripHandler struct {
	svc    *service.TripService
	parser ai.Parser // nil when the AI collaborator is not configured
}

// NewTripHandler creates a TripHandler. parser may be nil.
func NewTripHandler(svc *service.TripService, parser ai.Parser) *TripHandler {
	return &TripHandler{svc: svc, parser: parser}
}

type createTripRequest struct {
	Name    string   `json:"name"`
	Icon    string   `json:"icon"`
	Members []string `json:"members"`
}

// CreateTrip handles POST /api/v1/trips.
func (h *TripHandler) CreateTrip(c *fiber.Ctx) error {
	var req createTripRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	trip, err := h.svc.CreateTrip(c.Context(), req.Name, req.Icon, req.Members)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(trip)
}

// ListTrips handles GET /api/v1/trips.
func (h *TripHandler) ListTrips(c *fiber.Ctx) error {
	trips, err := h.svc.ListTrips(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"trips": trips})
}

// GetTrip handles GET /api/v1/trips/:id.
func (h *TripHandler) GetTrip(c *fiber.Ctx) error {
	trip, err := h.svc.GetTrip(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(trip)
}

type updateTripRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// UpdateTrip handles PUT /api/v1/trips/:id.
func (h *TripHandler) UpdateTrip(c *fiber.Ctx) error {
	var req updateTripRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	trip, err := h.svc.UpdateTrip(c.Context(), c.Params("id"), req.Name, req.Icon)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(trip)
}

// DeleteTrip handles DELETE /api/v1/trips/:id.
func (h *TripHandler) DeleteTrip(c *fiber.Ctx) error {
	if err := h.svc.DeleteTrip(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type addParticipantRequest struct {
	Name string `json:"name"`
}

// AddParticipant handles POST /api/v1/trips/:id/participants.
func (h *TripHandler) AddParticipant(c *fiber.Ctx) error {
	var req addParticipantRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	trip, err := h.svc.AddParticipant(c.Context(), c.Params("id"), req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(trip)
}

// RemoveParticipant handles DELETE /api/v1/trips/:id/participants/:userId.
func (h *TripHandler) RemoveParticipant(c *fiber.Ctx) error {
	trip, err := h.svc.RemoveParticipant(c.Context(), c.Params("id"), c.Params("userId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(trip)
}

type expenseRequest struct {
	Description    string   `json:"description"`
	Amount         float64  `json:"amount"`
	Currency       string   `json:"currency"`
	ExchangeRate   float64  `json:"exchangeRate"`
	PayerID        string   `json:"payerId"`
	ParticipantIDs []string `json:"participantIds"`
	Date           int64    `json:"date"`
}

func (r *expenseRequest) input() service.ExpenseInput {
	return service.ExpenseInput{
		Description:    r.Description,
		Amount:         r.Amount,
		Currency:       r.Currency,
		ExchangeRate:   r.ExchangeRate,
		PayerID:        r.PayerID,
		ParticipantIDs: r.ParticipantIDs,
		Date:           r.Date,
	}
}

// AddExpense handles POST /api/v1/trips/:id/expenses.
func (h *TripHandler) AddExpense(c *fiber.Ctx) error {
	var req expenseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	trip, err := h.svc.AddExpense(c.Context(), c.Params("id"), req.input())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(trip)
}

// UpdateExpense handles PUT /api/v1/trips/:id/expenses/:expenseId.
func (h *TripHandler) UpdateExpense(c *fiber.Ctx) error {
	var req expenseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	trip, err := h.svc.UpdateExpense(c.Context(), c.Params("id"), c.Params("expenseId"), req.input())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(trip)
}

// DeleteExpense handles DELETE /api/v1/trips/:id/expenses/:expenseId.
func (h *TripHandler) DeleteExpense(c *fiber.Ctx) error {
	trip, err := h.svc.DeleteExpense(c.Context(), c.Params("id"), c.Params("expenseId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(trip)
}

type suggestExpenseRequest struct {
	Prompt string `json:"prompt"`
}

// AddExpenseFromPrompt handles POST /api/v1/trips/:id/expenses/suggested.
// The prompt goes through the AI parsing collaborator; the resulting
// suggestion is converted into an expense via the normal construction
// rules.
func (h *TripHandler) AddExpenseFromPrompt(c *fiber.Ctx) error {
	if h.parser == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "expense parsing is not configured")
	}

	var req suggestExpenseRequest
	if err := c.BodyParser(&req); err != nil || req.Prompt == "" {
		return fiber.NewError(fiber.StatusBadRequest, "prompt required")
	}

	trip, err := h.svc.GetTrip(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	names := make([]string, len(trip.Participants))
	for i, p := range trip.Participants {
		names[i] = p.Name
	}

	suggestion, err := h.parser.Parse(c.Context(), req.Prompt, names)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "failed to parse expense: "+err.Error())
	}

	updated, err := h.svc.AddExpenseFromSuggestion(c.Context(), trip.ID, suggestion)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(updated)
}
