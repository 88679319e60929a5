// Command server runs the drawing-and-guessing session engine: the HTTP
// session-creation API for the room service and the websocket endpoint for
// game clients.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	httpapi "sketchguess/internal/api/http"
	"sketchguess/internal/config"
	"sketchguess/internal/identity"
	"sketchguess/internal/session"
	"sketchguess/internal/words"
	"sketchguess/internal/ws"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if cfg.Debug {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	store := session.NewStore(session.Settings{
		TurnDuration:   cfg.TurnDuration,
		SettleDelay:    cfg.SettleDelay,
		TurnsPerPlayer: cfg.TurnsPerPlayer,
		PickWord:       words.Pick,
	}, log)

	resolver := identity.NewClient(cfg.UserServiceURL)
	wsh := ws.NewHandler(store, resolver, log)
	router := httpapi.SetupRouter(store, wsh, cfg)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("game engine listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("shutdown")
	}
	log.Info().Msg("server stopped")
}
