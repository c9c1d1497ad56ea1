package main

import (
	"github.com/Maskquerade/Maskquerade/agent/go-service/maskscore"
	"github.com/rs/zerolog/log"
)

func registerAll() {
	// Register all custom components from each package
	maskscore.Register()

	log.Info().
		Msg("All custom components registered successfully")
}
