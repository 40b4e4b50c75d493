package main

import (
	"log"

	"esimprocessor/config"
	"esimprocessor/internal/app"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Config error: %s", err)
	}

	if err := app.Run(cfg); err != nil {
		log.Fatalf("Processor terminated: %s", err)
	}
}
