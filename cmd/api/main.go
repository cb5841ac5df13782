package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medidesk/frontdesk-api/internal/config"
	"github.com/medidesk/frontdesk-api/internal/handler"
	appointmentHandler "github.com/medidesk/frontdesk-api/internal/handler/appointment"
	patientHandler "github.com/medidesk/frontdesk-api/internal/handler/patient"
	"github.com/medidesk/frontdesk-api/internal/repository/postgres"
	"github.com/medidesk/frontdesk-api/internal/router"
	appointmentService "github.com/medidesk/frontdesk-api/internal/service/appointment"
	patientService "github.com/medidesk/frontdesk-api/internal/service/patient"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// The store handle is built exactly once here and injected everywhere.
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	patientSvc := patientService.NewService(patientRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo)

	h := handler.NewHandler(db)
	patientH := patientHandler.NewHandler(patientSvc, outboxRepo)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc, outboxRepo)

	routerCfg := router.DefaultConfig()
	if cfg.RateLimit.RPS > 0 {
		routerCfg.RateLimitRPS = cfg.RateLimit.RPS
		routerCfg.RateLimitBurst = cfg.RateLimit.Burst
	}

	r := router.NewRouter(patientH, appointmentH, h, routerCfg)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
