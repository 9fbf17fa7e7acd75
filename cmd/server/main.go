package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking-bot/internal/availability"
	"github.com/iliyamo/venue-booking-bot/internal/booking"
	"github.com/iliyamo/venue-booking-bot/internal/clock"
	"github.com/iliyamo/venue-booking-bot/internal/config"
	"github.com/iliyamo/venue-booking-bot/internal/database"
	"github.com/iliyamo/venue-booking-bot/internal/handler"
	"github.com/iliyamo/venue-booking-bot/internal/model"
	"github.com/iliyamo/venue-booking-bot/internal/queue"
	"github.com/iliyamo/venue-booking-bot/internal/repository"
	"github.com/iliyamo/venue-booking-bot/internal/router"
	queue_publisher "github.com/iliyamo/venue-booking-bot/internal/service"
	"github.com/iliyamo/venue-booking-bot/internal/session"
	"github.com/iliyamo/venue-booking-bot/internal/slot"
	"github.com/iliyamo/venue-booking-bot/internal/sweeper"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	venueClock, err := clock.NewVenueClock(cfg.VenueTZ)
	if err != nil {
		log.Fatal(err)
	}
	policy, err := slot.NewPolicy(cfg.OpenHour, cfg.CloseHour)
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatal(err)
	}

	repo := repository.NewBookingRepo(db)
	index := availability.NewIndex(repo, policy, venueClock)

	// Sessions prefer Redis; fall back to in-process storage when Redis is
	// absent or unreachable.
	draftTTL := time.Duration(cfg.SessionTTLMin) * time.Minute
	var sessions session.Store
	if client := config.NewRedisClient(); client != nil {
		sessions = session.NewRedisStore(client, draftTTL)
		log.Printf("sessions: using redis store")
	} else {
		mem := session.NewMemoryStore(draftTTL)
		defer mem.Close()
		sessions = mem
		log.Printf("sessions: using in-memory store")
	}

	var notifier booking.Notifier
	if cfg.RabbitURL != "" {
		notifier = queue_publisher.ReservationNotifier{URL: cfg.RabbitURL}
		go func() {
			if err := queue.StartReservationConsumer(cfg.RabbitURL); err != nil {
				log.Printf("reservation consumer stopped: %v", err)
			}
		}()
	}

	var location *booking.Location
	if cfg.HasLocation {
		location = &booking.Location{Latitude: cfg.VenueLat, Longitude: cfg.VenueLon}
	}

	engine := booking.NewEngine(sessions, repo, index, venueClock, notifier, location)

	sw := &sweeper.Sweeper{Repo: repo, Clock: venueClock, Interval: time.Hour}
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go func() {
		if err := sw.Run(sweepCtx); err != nil && err != context.Canceled {
			log.Printf("sweeper stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterBooking(e, handler.NewBookingHandler(engine), cfg.GatewaySecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, venue tz=%s, slots %02d..%02d, locales %s/%s/%s)",
		addr, cfg.Env, cfg.VenueTZ, cfg.OpenHour, cfg.CloseHour,
		model.LocaleArmenian, model.LocaleRussian, model.LocaleEnglish)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
