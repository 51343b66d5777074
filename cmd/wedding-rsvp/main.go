package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"wedding-rsvp/internal/config"
	"wedding-rsvp/internal/handler"
	"wedding-rsvp/internal/storage"
	"wedding-rsvp/internal/whatsapp"
)

func main() {
	seed := flag.Bool("seed", false, "load demo venue, gifts and guests into an empty database")
	flag.Parse()

	cfg := config.LoadConfig()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.LogPretty {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	store, err := storage.Open(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	if err := store.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	ctx := context.Background()
	if err := store.SeedAdmin(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed admin account")
	}
	if *seed {
		if err := store.SeedDemo(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed demo data")
		}
	}

	venueCache := storage.NewVenueCache(store.GetVenue)

	sender := whatsapp.NewService(whatsapp.Config{
		AccountSID: cfg.TwilioAccountSID,
		AuthToken:  cfg.TwilioAuthToken,
		FromNumber: cfg.TwilioFromNumber,
	}, log)

	h := handler.New(store, venueCache, sender, handler.Config{
		SessionSecret: cfg.SessionSecret,
		PublicURL:     cfg.PublicURL,
	}, log)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      h,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("wedding-rsvp listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown error")
	}
}
