package main

import (
	"os"
	"os/signal"
	"syscall"

	"hamburgueseria-backend/internal/config"
	"hamburgueseria-backend/internal/database"
	"hamburgueseria-backend/internal/logging"
	"hamburgueseria-backend/internal/server"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.AppEnv)

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo conectar a la base de datos")
	}

	app := server.New(cfg, db)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		log.Info().Msg("señal recibida, apagando el servidor")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("error durante el apagado")
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	log.Info().Str("puerto", cfg.HTTPPort).Str("ambiente", cfg.AppEnv).Msg("servidor escuchando")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal().Err(err).Msg("el servidor terminó con error")
	}
}
