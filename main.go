package main

import (
	"os"
	"time"

	"github.com/lumberg/petitions/cmd"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(os.Stderr)

	cmd.Execute()
}
