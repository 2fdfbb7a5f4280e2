package main

import (
	"os"

	"github.com/yigit/phdportal/internal/pkg/logger" // Still needed for initial error logging
	"github.com/yigit/phdportal/internal/server"
)

// @title PhD Scholar Portal API
// @version 1.0
// @description API for managing PhD scholar admissions, eligibility and supervisor assignments

// @contact.name API Support
// @contact.email support@phdportal.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// Initialize the server with all its dependencies
	srv, err := server.NewServer()
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
