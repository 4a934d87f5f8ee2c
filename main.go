package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/jamo-archer/apps/go-server/internal/httpserver"
	"github.com/robalobadob/jamo-archer/apps/go-server/internal/sentences"
	"github.com/robalobadob/jamo-archer/apps/go-server/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := sentences.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load sentences")
	}
	bank := sentences.Default()
	n, jamo := bank.Stats()
	log.Info().Int("sentences", n).Int("jamo", jamo).Msg("sentence bank loaded")

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, bank)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting go-server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(ctx, ":"+port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
