package main

import (
	"flag"
	"salon/config"
	"salon/helper"
	"salon/shared/logger"

	"github.com/rs/zerolog/log"
)

const usage = "usage: migrate up|down|step-up|drop|version|force <version>"

func main() {
	flag.Parse()

	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)

	args := flag.Args()
	if len(args) == 0 {
		log.Fatal().Msg(usage)
	}

	var err error

	switch args[0] {
	case "version":
		err = helper.Version(cfg)
	case "force":
		if len(args) < 2 {
			log.Fatal().Msg(usage)
		}

		err = helper.Force(cfg, args[1])
	default:
		err = helper.Runner(cfg, args[0])
	}

	if err != nil {
		log.Fatal().Err(err).Str("action", args[0]).Msg("Migration failed")
	}
}
