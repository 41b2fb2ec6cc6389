package handler

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yuetlam/splitter/internal/auth"
	"github.com/yuetlam/splitter/internal/middleware"
)

// RegisterRoutes mounts all API routes on the app. Trip routes sit behind
// JWT auth; auth, health and metrics endpoints are public.
func RegisterRoutes(app *fiber.App, authH *AuthHandler, tripH *TripHandler, jwtManager *auth.JWTManager) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", authH.Register)
	authGroup.Post("/login", authH.Login)

	api.Get("/currencies", tripH.Currencies)

	trips := api.Group("/trips", middleware.RequireAuth(jwtManager))
	trips.Get("/", tripH.ListTrips)
	trips.Post("/", tripH.CreateTrip)
	trips.Get("/:id", tripH.GetTrip)
	trips.Put("/:id", tripH.UpdateTrip)
	trips.Delete("/:id", tripH.DeleteTrip)

	trips.Post("/:id/participants", tripH.AddParticipant)
	trips.Delete("/:id/participants/:userId", tripH.RemoveParticipant)

	trips.Post("/:id/expenses", tripH.AddExpense)
	trips.Post("/:id/expenses/suggested", tripH.AddExpenseFromPrompt)
	trips.Put("/:id/expenses/:expenseId", tripH.UpdateExpense)
	trips.Delete("/:id/expenses/:expenseId", tripH.DeleteExpense)

	trips.Get("/:id/balances", tripH.Balances)
	trips.Get("/:id/debts", tripH.Debts)
	trips.Get("/:id/settlements", tripH.SettledHistory)
	trips.Post("/:id/settlements/toggle", tripH.ToggleSettlement)
	trips.Post("/:id/settlements/settle-all", tripH.SettleAll)
	trips.Post("/:id/settlements/settle", tripH.SettleBetween)
	trips.Post("/:id/settlements/unsettle", tripH.UnsettleBetween)
}
