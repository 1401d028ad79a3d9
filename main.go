package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/SangBejoo/kingston-parking/api"
	"github.com/SangBejoo/kingston-parking/assistant"
	"github.com/SangBejoo/kingston-parking/config"
	"github.com/SangBejoo/kingston-parking/dashboard"
	"github.com/SangBejoo/kingston-parking/models"
	"github.com/SangBejoo/kingston-parking/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	catalog, err := models.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	log.Printf("catalog: loaded %d locations", catalog.Len())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := dashboard.NewHub()
	go hub.Run(ctx)

	server := dashboard.NewServer(catalog, assistant.NewEngine(), hub, cfg.Location)

	// Simulated drift for locations without sensors
	if cfg.DriftSchedule != "" {
		drift := services.NewDrift(catalog, time.Now().UnixNano())
		c := cron.New()
		_, err = c.AddFunc(cfg.DriftSchedule, func() {
			if drift.Step() > 0 {
				server.Publish()
			}
		})
		if err != nil {
			log.Fatalf("drift: failed to schedule %q: %v", cfg.DriftSchedule, err)
		}
		c.Start()
		defer c.Stop()
	}

	if cfg.SensorFeedURL != "" {
		feed := api.NewFeedClient(cfg.SensorFeedURL, cfg.SensorPollInterval)
		poller := services.NewScheduler(feed, catalog, cfg.SensorPollInterval, server.Publish, cfg.Debug)
		poller.Start()
		defer poller.Stop()
		log.Printf("sensor-feed: polling %s every %s", cfg.SensorFeedURL, cfg.SensorPollInterval)
	}

	if cfg.SensorAMQPURL != "" {
		consumer := api.NewSensorConsumer(cfg.SensorAMQPURL, cfg.SensorQueue, func(observations map[string]int) {
			server.ApplyObservations(observations)
		})
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("sensor-amqp: consumer stopped: %v", err)
			}
		}()
	}

	srv := server.HTTPServer(":" + cfg.ServerPort)
	go func() {
		log.Printf("Server started at %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http: forced shutdown: %v", err)
	}
}
