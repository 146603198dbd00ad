package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/pharmadmin/internal/buildinfo"
	"github.com/dmitrijs2005/pharmadmin/internal/client/cli"
	"github.com/dmitrijs2005/pharmadmin/internal/client/config"
	"github.com/dmitrijs2005/pharmadmin/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout, "pharmadmin")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := logging.NewText(os.Stderr, cfg.LogLevel)
	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
