package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v6/osfs"
	"github.com/spf13/cobra"

	"github.com/lewtec/triagem/internal/library"
	"github.com/lewtec/triagem/internal/repository"
	"github.com/lewtec/triagem/triagem"
)

// project holds the resolved file layout of a triage project.
type project struct {
	ConfigFile   string
	DatabaseFile string
	LibraryDir   string
}

// resolveProject turns the folder-or-config argument (or the explicit
// flags) into the project layout. In folder mode a missing config,
// database or library directory is created; created reports whether the
// folder had to be initialized.
func resolveProject(cmd *cobra.Command, args []string) (p project, created bool, err error) {
	if len(args) == 1 {
		arg := args[0]

		if stat, statErr := os.Stat(arg); statErr == nil && stat.IsDir() {
			log.Printf("Detected folder argument: %s", arg)
			p.ConfigFile = filepath.Join(arg, "config.yaml")
			p.DatabaseFile = filepath.Join(arg, "triagem.db")
			p.LibraryDir = filepath.Join(arg, "library")

			if _, statErr := os.Stat(p.ConfigFile); os.IsNotExist(statErr) {
				log.Printf("Creating default config: %s", p.ConfigFile)
				if err := createSampleConfig(p.ConfigFile); err != nil {
					return p, false, fmt.Errorf("failed to create config: %w", err)
				}
				created = true
			} else {
				log.Printf("Config file already exists: %s", p.ConfigFile)
			}
			if _, statErr := os.Stat(p.DatabaseFile); os.IsNotExist(statErr) {
				log.Printf("Creating empty database: %s", p.DatabaseFile)
				db, err := repository.Open(p.DatabaseFile)
				if err != nil {
					return p, false, fmt.Errorf("failed to create database: %w", err)
				}
				db.Close()
			}
			if _, statErr := os.Stat(p.LibraryDir); os.IsNotExist(statErr) {
				log.Printf("Creating library directory: %s", p.LibraryDir)
				if err := os.MkdirAll(p.LibraryDir, 0755); err != nil {
					return p, false, fmt.Errorf("failed to create library directory: %w", err)
				}
			}
			return p, created, nil
		}

		// Assume it's a config file; the database and library live
		// next to it unless overridden.
		p.ConfigFile = arg
		p.DatabaseFile, err = cmd.Flags().GetString("database")
		if err != nil || p.DatabaseFile == "" {
			p.DatabaseFile = filepath.Join(filepath.Dir(arg), "triagem.db")
		}
		p.LibraryDir, err = cmd.Flags().GetString("library")
		if err != nil || p.LibraryDir == "" {
			p.LibraryDir = filepath.Join(filepath.Dir(arg), "library")
		}
		return p, false, nil
	}

	p.ConfigFile, err = cmd.Flags().GetString("config")
	if err != nil || p.ConfigFile == "" {
		return p, false, fmt.Errorf("either provide a folder/config argument or use --config flag")
	}
	p.DatabaseFile, err = cmd.Flags().GetString("database")
	if err != nil || p.DatabaseFile == "" {
		return p, false, fmt.Errorf("--database flag is required")
	}
	p.LibraryDir, err = cmd.Flags().GetString("library")
	if err != nil || p.LibraryDir == "" {
		return p, false, fmt.Errorf("--library flag is required")
	}
	return p, false, nil
}

// openApp loads the config and wires the web app over the project.
func openApp(p project) (*triagem.App, *triagem.Config, error) {
	config, err := triagem.LoadConfig(p.ConfigFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	db, err := repository.Open(p.DatabaseFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	repo := repository.NewLibraryRepository(db)
	fs := osfs.New(p.LibraryDir)

	app := triagem.NewApp(
		config,
		repo,
		library.NewRenderer(fs),
		library.NewSource(repo, config.Library.FetchLimit),
		library.NewDeleter(repo, fs),
	)
	return app, config, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "triagem [folder|config.yaml]",
	Short: "Triage a photo library one image at a time",
	Long: strings.TrimSpace(`
Walk a local photo library category by category, deciding keep or delete
for each image, with undo and a staged-deletion review step before
anything is permanently removed.
    `),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, created, err := resolveProject(cmd, args)
		if err != nil {
			return err
		}
		if created {
			log.Printf("Project initialized in folder. Review %s, ingest images, then rerun.", p.ConfigFile)
			return nil
		}

		app, config, err := openApp(p)
		if err != nil {
			return err
		}

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = config.Server.Addr
		}

		log.Printf("Configuration: %s", p.ConfigFile)
		log.Printf("Database: %s", p.DatabaseFile)
		log.Printf("Library: %s", p.LibraryDir)
		log.Printf("Starting server on: %s", addr)

		return http.ListenAndServe(addr, app.GetHTTPHandler())
	},
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}

func init() {
	// Optional flags (only used when not providing a folder argument)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file for the project")
	rootCmd.PersistentFlags().StringP("database", "d", "", "Database file path")
	rootCmd.PersistentFlags().StringP("library", "l", "", "Library directory path")
	rootCmd.Flags().StringP("addr", "a", "", "Address to bind the webserver (overrides config)")
}
