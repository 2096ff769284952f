package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/megactl/internal/crossmint"
	"github.com/danmuck/megactl/internal/observability"
	"github.com/danmuck/megactl/internal/reconcile"
)

func main() {
	logger := observability.InitLogger("megactl")

	configPath := flag.String("config", "", "optional TOML config path")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	cfg := defaultRunConfig()
	if *configPath != "" {
		loaded, err := loadRunConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		cfg = loaded
		log.Info().Str("path", *configPath).Msg("loaded config")
	}
	cfg.Client.CandidateID = strings.TrimSpace(flag.Arg(0))

	client, err := crossmint.New(cfg.Client, crossmint.WithLogger(logger))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize megaverse client")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := reconcile.NewServiceWithConfig(client, cfg.Reconcile)
	report, err := svc.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("reconciliation aborted")
	}

	for _, f := range report.Failures {
		log.Error().
			Err(f.Err).
			Str("action", f.Mutation.Action).
			Str("object", f.Mutation.Object.GoalValue()).
			Stringer("position", f.Mutation.Position).
			Msg("unresolved mutation")
	}
	if !report.Converged() {
		log.Error().
			Int("failed", report.Failed).
			Msg("megaverse did not converge; re-run to retry divergent cells")
		os.Exit(1)
	}
	log.Info().Msg("megaverse matches goal map")
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: megactl [-config path] <candidate_id>")
}
