package main

import (
	"fmt"
	"os"

	"github.com/localrivet/aristotlemcp/internal/config"
)

// Manual harness: verifies that config loading writes nothing to stdout.
// Stdout belongs to the MCP stdio transport, so any stray print during
// startup corrupts the protocol stream. Run with stdout redirected to a
// file and confirm only the lines below appear.
func main() {
	fmt.Println("=== Starting stdout cleanliness test ===")

	cfg, err := config.LoadConfigWithPath(config.DefaultConfigFilename)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== Config Loaded Successfully ===")
	fmt.Printf("Ledger Path: %s\n", cfg.Ledger.SQLitePath)
	fmt.Printf("Log Level: %s\n", cfg.Logging.Level)
	fmt.Printf("API Key Present: %v\n", cfg.Aristotle.APIKey != "")

	fmt.Println("\n=== Test Complete ===")
}
