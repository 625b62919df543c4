package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/zatekoja/ncrm/internal/cli"
	"github.com/zatekoja/ncrm/internal/infrastructure/observability"
	"github.com/zatekoja/ncrm/pkg/config"
)

func main() {
	command := new(cli.CLI)
	parser, err := cli.New(command)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	cfg, err := config.Load()
	parser.FatalIfErrorf(err)

	observability.InitLoggerTo(os.Stderr, "ncrm", "development")
	if !command.Verbose {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	storage := cfg.Storage
	if command.DataDir != "" {
		storage.DataDir = command.DataDir
	}

	app := cli.NewApp(afero.NewOsFs(), storage.HospitalPath(), storage.NotesPath(), os.Stdout)
	if cfg.App.SeedDefaultHospital {
		_, err := app.Directory.Seed(context.Background())
		ctx.FatalIfErrorf(err)
	}
	ctx.FatalIfErrorf(ctx.Run(app))
}
