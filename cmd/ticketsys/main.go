package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/ticketsys/internal/cli"
	"github.com/dmitrijs2005/ticketsys/internal/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
