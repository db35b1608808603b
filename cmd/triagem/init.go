package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lewtec/triagem/internal/repository"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init <folder>",
	Short: "Initialize a new triage project",
	Long: `Initialize a triage project folder by creating:
- A sample configuration file (config.yaml)
- An empty SQLite library index (triagem.db)
- A library directory for the ingested images

Example:
  triagem init ./my-photos`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder := args[0]
		if err := os.MkdirAll(folder, 0755); err != nil {
			return fmt.Errorf("failed to create project folder: %w", err)
		}

		configFile := filepath.Join(folder, "config.yaml")
		if _, err := os.Stat(configFile); os.IsNotExist(err) {
			fmt.Printf("Creating sample configuration file: %s\n", configFile)
			if err := createSampleConfig(configFile); err != nil {
				return fmt.Errorf("failed to create config file: %w", err)
			}
		} else {
			fmt.Printf("Configuration file already exists: %s\n", configFile)
		}

		databaseFile := filepath.Join(folder, "triagem.db")
		fmt.Printf("Creating library index: %s\n", databaseFile)
		db, err := repository.Open(databaseFile)
		if err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
		defer db.Close()

		libraryDir := filepath.Join(folder, "library")
		if err := os.MkdirAll(libraryDir, 0755); err != nil {
			return fmt.Errorf("failed to create library directory: %w", err)
		}

		fmt.Println("Initialization complete!")
		fmt.Println("\nNext steps:")
		fmt.Printf("  1. Ingest some images:  triagem ingest ~/Pictures %s\n", folder)
		fmt.Printf("  2. Start triaging:      triagem %s\n", folder)
		fmt.Println("\nThen open http://localhost:8080 in your browser")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func createSampleConfig(filename string) error {
	sampleConfig := `# triagem configuration file

meta:
  description: |
    Personal photo library triage.
    Edit this description to say what this library holds.

library:
  # Snapshot cap for the screenshots, recents and random categories.
  # Year and month categories are never capped.
  fetch_limit: 100

server:
  addr: ":8080"
`

	return os.WriteFile(filename, []byte(sampleConfig), 0644)
}
