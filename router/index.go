package router

import (
	"gastro_vision/handler"
	"gastro_vision/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(app *fiber.App, h *handler.Handler) {
	app.Get("/", handler.Index)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Use("/ws", handler.UpgradeWebsocket)
	app.Get("/ws", websocket.New(h.Events))

	tables := app.Group("/tables", logger.New())
	tables.Post("/", validate.CreateTable(), h.CreateTable)
	tables.Get("/", h.GetTables)
	tables.Post("/update_status", validate.UpdateTableStatus(), h.UpdateTableStatus)
	tables.Post("/auto_assign", h.AutoAssignTables)
	app.Post("/reset_table", logger.New(), validate.ResetTable(), h.ResetTable)

	waiters := app.Group("/waiters", logger.New())
	waiters.Post("/", validate.CreateWaiter(), h.CreateWaiter)
	waiters.Get("/", h.GetWaiters)
	waiters.Post("/update_interest", validate.UpdateInterest(), h.UpdateInterest)
	waiters.Get("/:waiterId/qr", validate.WaiterQR(), h.WaiterQR)

	foods := app.Group("/foods", logger.New())
	foods.Post("/", validate.CreateFood(), h.CreateFood)
	foods.Get("/", h.GetFoods)

	orders := app.Group("/orders", logger.New())
	orders.Post("/", validate.CreateOrder(), h.CreateOrder)
	orders.Get("/", validate.OrderFilter(), h.GetOrders)

	api := app.Group("/api", logger.New())
	camera := api.Group("/camera")
	camera.Post("/food_detected", validate.CameraFood(), h.FoodDetected)
	camera.Post("/waiter_detected", validate.WaiterDetected(), h.WaiterDetected)
	api.Get("/reports/summary", h.ReportSummary)

	stagingLog := logger.New()
	app.Get("/pending_order", stagingLog, h.GetPendingOrder)
	app.Post("/confirm_order", stagingLog, h.ConfirmOrder)
	app.Post("/reject_order", stagingLog, h.RejectOrder)
	app.Get("/last_qr", h.LastQR)
	app.Get("/last_food", h.LastFood)
	app.Get("/video_feed", h.VideoFeed)
}
