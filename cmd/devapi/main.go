package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/pharmadmin/internal/buildinfo"
	"github.com/dmitrijs2005/pharmadmin/internal/devapi"
	"github.com/dmitrijs2005/pharmadmin/internal/devapi/config"
	"github.com/dmitrijs2005/pharmadmin/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout, "pharmadmin-devapi")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := context.Background()
	logger := logging.NewJSON(os.Stdout, cfg.LogLevel)
	app, err := devapi.NewApp(ctx, cfg, logger)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
