package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-git/go-billy/v6/osfs"
	"github.com/spf13/cobra"

	"github.com/lewtec/triagem/internal/domain"
	"github.com/lewtec/triagem/internal/library"
	"github.com/lewtec/triagem/internal/repository"
)

func decodeImageFile(filepath string) (image.Image, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return m, err
}

// foundImage is the unit of work flowing through the ingest pipeline.
type foundImage struct {
	img       image.Image
	createdAt time.Time
}

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest <input dir>... <project folder>",
	Short: "Ingest folders of image files into the library",
	Long: `Crawl the input directories, decode every image found, and store it in
the project's library normalized to PNG and named by content hash. The
creation time is taken from the file's modification time unless
--taken-at overrides it.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(2)(cmd, args); err != nil {
			return err
		}
		for i, input := range args[:len(args)-1] {
			fileInfo, err := os.Stat(input)
			if err != nil {
				return fmt.Errorf("on %dth argument: %w", i+1, err)
			}
			if !fileInfo.IsDir() {
				return fmt.Errorf("on %dth argument: must be a directory", i+1)
			}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs := args[0 : len(args)-1]
		folder := args[len(args)-1]

		p, _, err := resolveProject(cmd, []string{folder})
		if err != nil {
			return err
		}
		db, err := repository.Open(p.DatabaseFile)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		repo := repository.NewLibraryRepository(db)
		ingestor := library.NewIngestor(repo, osfs.New(p.LibraryDir))

		source, _ := cmd.Flags().GetString("source")
		var takenAt time.Time
		if v, _ := cmd.Flags().GetString("taken-at"); v != "" {
			takenAt, err = time.Parse("2006-01-02", v)
			if err != nil {
				return fmt.Errorf("while parsing --taken-at: %w", err)
			}
		}

		crawledImages := make(chan foundImage, 10) // pipeline

		var wg sync.WaitGroup
		ingestWorker := func(queue chan foundImage) {
			defer wg.Done()
			for found := range queue {
				_, err := ingestor.Ingest(cmd.Context(), found.img, source, found.createdAt)
				if err != nil {
					log.Printf("Ingesting image error: %s", err)
				}
			}
		}
		defer wg.Wait()
		for i := uint(0); i < jobs; i++ {
			wg.Add(1)
			go ingestWorker(crawledImages)
		}
		defer close(crawledImages)

		for _, input := range inputs {
			err := filepath.WalkDir(input, func(path string, info fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if info.IsDir() {
					return nil
				}
				img, err := decodeImageFile(path)
				if err != nil {
					return nil
				}
				createdAt := takenAt
				if createdAt.IsZero() {
					if fileInfo, err := info.Info(); err == nil {
						createdAt = fileInfo.ModTime()
					} else {
						createdAt = time.Now()
					}
				}
				log.Printf("found image '%s'", path)
				crawledImages <- foundImage{img: img, createdAt: createdAt}
				return nil
			})
			if err != nil {
				return fmt.Errorf("while crawling '%s': %w", input, err)
			}
		}
		return nil
	},
}

var (
	jobs uint
)

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().UintVarP(&jobs, "jobs", "j", 1, "Amount of concurrent ingestors")
	ingestCmd.Flags().StringP("source", "s", domain.SourceLibrary, "Source label recorded for the ingested images")
	ingestCmd.Flags().String("taken-at", "", "Creation date (YYYY-MM-DD) recorded instead of the file mtime")
}
