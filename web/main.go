package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/whitted-raytracer/pkg/config"
	"github.com/df07/whitted-raytracer/web/server"
)

func main() {
	// Parse command line flags
	envFile := flag.String("env", "", "Path to a .env file (default .env)")
	port := flag.Int("port", 0, "Port to serve on (default from RAYTRACER_PORT or 8080)")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Port = *port
	}

	// Create and start web server
	webServer, err := server.NewServer(cfg)
	if err != nil {
		log.Printf("Error creating server: %v", err)
		os.Exit(1)
	}

	log.Printf("Whitted Raytracer Web Server")
	log.Printf("Try http://localhost:%d/api/render?scene=%s", cfg.Port, cfg.Scene)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
