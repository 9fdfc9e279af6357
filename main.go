package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"gastro_vision/camera"
	"gastro_vision/config"
	"gastro_vision/database"
	"gastro_vision/detection"
	"gastro_vision/gate"
	"gastro_vision/handler"
	"gastro_vision/monitoring"
	"gastro_vision/notify"
	"gastro_vision/order"
	"gastro_vision/pipeline"
	"gastro_vision/router"
	"gastro_vision/sla"
	"gastro_vision/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jonboulle/clockwork"
)

const replayFPS = 10

func openStore(settings *config.Settings) store.Store {
	if settings.StoreDriver == "memory" {
		log.Println("Using in-memory store")
		return store.NewMemoryStore()
	}
	return store.NewGormStore(database.ConnectDB())
}

// openBroadcaster dựng kênh phát sự kiện; lỗi kết nối thì lùi về phát cục bộ.
func openBroadcaster(ctx context.Context, settings *config.Settings, hub *notify.Hub) (notify.Broadcaster, func()) {
	switch settings.BroadcastDriver {
	case "redis":
		client, err := database.NewRedisClient(settings.RedisURL)
		if err != nil {
			log.Printf("Redis unavailable (%v), falling back to local broadcast", err)
			break
		}
		b := notify.NewRedisBroadcaster(client)
		go b.Run(ctx, hub)
		return b, func() { client.Close() }
	case "amqp":
		b, err := notify.DialAMQP(settings.AMQPURL)
		if err != nil {
			log.Printf("RabbitMQ unavailable (%v), falling back to local broadcast", err)
			break
		}
		go func() {
			if err := b.Run(ctx, hub); err != nil {
				log.Printf("[NOTIFY] amqp consumer stopped: %v", err)
			}
		}()
		return b, b.Close
	}
	return notify.NewLocalBroadcaster(hub), func() {}
}

func main() {
	settings := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := openStore(settings)
	if settings.SeedCatalog {
		if _, err := database.SeedFoodCatalog(ctx, st); err != nil {
			log.Printf("Seed food catalog failed: %v", err)
		}
	}

	hub := notify.NewHub()
	broadcaster, closeBroadcaster := openBroadcaster(ctx, settings, hub)
	defer closeBroadcaster()

	clock := clockwork.NewRealClock()
	detector := detection.NewRemoteDetector(settings.DetectorURL, 5*time.Second)
	detector.Probe()

	orders := order.NewService(st, broadcaster, clock, order.Options{
		PenaltyEnabled: settings.OrderPenaltyEnabled,
		PenaltyAfter:   settings.OrderPenaltyAfter,
	})
	pendingGate := gate.New(orders)

	scheduler, err := sla.NewGocronScheduler(clock)
	if err != nil {
		log.Fatal(err)
	}
	defer scheduler.Shutdown()
	slaService := sla.NewService(st, broadcaster, scheduler, clock, settings.SLADelay)

	collector := monitoring.NewCollector(st)
	if err := collector.Start("@every 30s"); err != nil {
		log.Printf("Metrics collector not started: %v", err)
	}
	defer collector.Stop()

	h := &handler.Handler{
		Store:    st,
		Orders:   orders,
		SLA:      slaService,
		Gate:     pendingGate,
		Detector: detector,
		Latest:   &pipeline.Latest{},
		Hub:      hub,
		OpenSource: func() (camera.Source, error) {
			if settings.CameraURL != "" {
				return camera.NewMJPEGSource(settings.CameraURL), nil
			}
			return camera.NewDirSource(settings.CameraDir, replayFPS, true)
		},
		Pipeline: pipeline.Options{Threshold: settings.ConfidenceThreshold},
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024,
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins: settings.CorsOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       600,
	}))
	router.SetupRoutes(app, h)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down")
		_ = app.ShutdownWithTimeout(5 * time.Second)
	}()
	if err := app.Listen(":" + settings.Port); err != nil {
		log.Fatal(err)
	}
}
