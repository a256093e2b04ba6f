package main

import (
	"context"
	"os"

	"github.com/Egham-7/models-helper/internal/config"
	"github.com/Egham-7/models-helper/pkg/server"

	fiberlog "github.com/gofiber/fiber/v2/log"
)

const defaultConfigPath = "config.yaml"

func main() {
	// stdout carries the MCP protocol on the stdio transport
	fiberlog.SetOutput(os.Stderr)

	// Load environment files explicitly
	envFiles := []string{".env.local", ".env.development", ".env"}
	config.LoadEnvFiles(envFiles)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fiberlog.Fatalf("Failed to load config: %v", err)
	}

	srv, err := server.New(cfg)
	if err != nil {
		fiberlog.Fatalf("Failed to build server: %v", err)
	}

	if err := srv.Run(context.Background()); err != nil {
		fiberlog.Fatalf("Server failed: %v", err)
	}
}
