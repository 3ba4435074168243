package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"catalog-backend/pkg/logger"
)

func main() {
	// .env is a local convenience; deployed environments inject real
	// variables.
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file, reading process environment")
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Init(env)

	Serve()
}
