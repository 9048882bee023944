package main

import (
	"flag"
	"log"

	"accounthub/internal/app"
	"accounthub/internal/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	app.RunAuthService(cfg)
}
