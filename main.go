package main

import (
	"context"
	"flag"
	"log"

	"github.com/open-mic-club/encore/app"
	"github.com/open-mic-club/encore/config"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}
	defer application.Close()

	if err := application.Start(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
