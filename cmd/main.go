package main

import (
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/varaher/prana/internal/api/v1/handlers"
	"github.com/varaher/prana/internal/config"
	"github.com/varaher/prana/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found")
	}
	configureLogging()

	svcs, err := services.InitializeServices()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}

	r := setupRouter(svcs)

	port := config.GetPort()
	log.Info().Str("port", port).Msg("Server starting")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal().Err(err).Msg("ListenAndServe error")
	}
}

func configureLogging() {
	switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
	case "TRACE":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "DEBUG":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "WARN":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "ERROR":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func setupRouter(svcs *services.Services) *mux.Router {
	r := mux.NewRouter()
	handlers.RegisterV1Routes(r, svcs)
	return r
}
