package main

import (
	"os"

	"github.com/danmuck/reportctl/internal/observability"
	"github.com/rs/zerolog/log"
)

func main() {
	observability.InitLogger("reportctl")
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("reportctl failed")
		os.Exit(1)
	}
}
