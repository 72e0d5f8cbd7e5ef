package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload" // Load .env before config reads the environment

	"github.com/adeyemi/siwes-portal/internal/pkg/logger"
	"github.com/adeyemi/siwes-portal/internal/server"
)

// @title SIWES Portal API
// @version 1.0
// @description Backend for the Student Industrial Work Experience Scheme tracking portal: attendance, logbooks, supervisor assignment and notifications.

// @contact.name API Support
// @contact.email support@siwes-portal.edu.ng

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT access token, prefixed with "Bearer "

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
