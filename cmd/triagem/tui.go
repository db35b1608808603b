package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-git/go-billy/v6/osfs"
	"github.com/spf13/cobra"

	"github.com/lewtec/triagem/internal/library"
	"github.com/lewtec/triagem/internal/repository"
	"github.com/lewtec/triagem/internal/triage"
	"github.com/lewtec/triagem/internal/tui"
	"github.com/lewtec/triagem/triagem"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui [folder|config.yaml]",
	Short: "Triage the library in the terminal",
	Long:  `Run the interactive terminal triage instead of the web server, against the same project layout.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, created, err := resolveProject(cmd, args)
		if err != nil {
			return err
		}
		if created {
			fmt.Printf("Project initialized. Ingest some images first:\n  triagem ingest ~/Pictures %s\n", args[0])
			return nil
		}

		config, err := triagem.LoadConfig(p.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		db, err := repository.Open(p.DatabaseFile)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		repo := repository.NewLibraryRepository(db)
		fs := osfs.New(p.LibraryDir)

		engine := triage.NewEngine(library.NewSource(repo, config.Library.FetchLimit), nil)
		reviewer := triage.NewReviewer(engine.Store(), library.NewDeleter(repo, fs))

		program := tea.NewProgram(tui.NewModel(engine, reviewer, repo), tea.WithAltScreen())
		_, err = program.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
