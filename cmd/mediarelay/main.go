package main

import (
	"fmt"
	"log"
	"os"

	"mediarelay/internal/app"
	"mediarelay/internal/config"
	"mediarelay/internal/resources"
	"mediarelay/internal/ui"
)

const version = "v1.0.0"

func main() {
	log.Printf("MediaRelay %s starting...", version)

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	iconData, err := resources.GetIcon()
	if err != nil {
		log.Printf("Warning: Failed to load embedded icon: %v", err)
	}
	ui.InitGlobalNotifications(cfg.UseNotifications, app.AppName, iconData)

	application := app.New(cfg, version)

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", r)
			os.Exit(1)
		}
	}()

	application.Run()
}
