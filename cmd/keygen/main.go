package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/arnavshah/shift-roster-go/pkg/auth"
	"github.com/arnavshah/shift-roster-go/pkg/config"
)

func main() {
	config.LoadEnvFiles()

	if len(os.Args) < 2 || strings.TrimSpace(os.Args[1]) == "" {
		fmt.Println("Usage: keygen <userID>")
		os.Exit(1)
	}
	userID := strings.TrimSpace(os.Args[1])

	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Auth.APIMasterSecret == "" {
		fmt.Println("Error: API_MASTER_SECRET not found in environment or .env")
		os.Exit(1)
	}

	apiKey := auth.New(cfg.Auth).GenerateHMACKey(userID)
	fmt.Printf("Generated Key for %s:\n%s\n", userID, apiKey)
}
