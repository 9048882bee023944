package main

import (
	"flag"
	"log"

	"accounthub/internal/app"
	"accounthub/internal/config"
)

// @title           AccountHub API Gateway
// @version         1.0
// @description     Public entrypoint for registration, authentication and user profiles.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	app.RunGateway(cfg)
}
