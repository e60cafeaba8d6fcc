package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/hlop3z/typesmith/internal/ui"
	"github.com/hlop3z/typesmith/pkg/typesmith"
)

// generateCmd runs the full pipeline and writes the declaration file.
func generateCmd() *cobra.Command {
	var (
		schemaFlag string
		outFlag    string
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the TypeScript declaration file",
		Long:  `Generate reads the schema document, runs the generation pipeline, and writes the declaration file. With --watch it keeps running and regenerates whenever the schema or a transformer script changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(schemaFlag, outFlag)
			if err != nil {
				return err
			}

			if err := runGenerate(client); err != nil {
				if !watch {
					return err
				}
				// In watch mode a broken schema is a state to recover
				// from, not a reason to exit.
				fmt.Fprint(os.Stderr, ui.FormatError(err))
			}

			if watch {
				return watchAndRegenerate(client)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaFlag, "schema", "", "Path to the schema document (overrides config)")
	cmd.Flags().StringVar(&outFlag, "out", "", "Output file path (overrides config)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Regenerate on schema or transformer changes")
	return cmd
}

// runGenerate performs one generation run and prints the summary.
func runGenerate(client *typesmith.Client) error {
	start := time.Now()
	res, err := client.Generate()
	if err != nil {
		return err
	}

	fmt.Print(ui.FormatSuccess(fmt.Sprintf("wrote %s (%s, %s, %s)",
		res.OutputPath,
		ui.FormatCount(res.Collections, "collection", "collections"),
		ui.FormatCount(res.Enums, "enum", "enums"),
		time.Since(start).Round(time.Millisecond),
	)))
	return nil
}

// watchAndRegenerate blocks, regenerating on changes to the schema file or
// any configured transformer script. Events are debounced since editors
// fire several per save.
func watchAndRegenerate(client *typesmith.Client) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("file watcher failed: %w", err)
	}
	defer watcher.Close()

	cfg := client.Config()

	// Watch directories rather than files: renames through temp files
	// (the common editor save pattern) drop file-level watches.
	watched := map[string]struct{}{}
	interesting := map[string]struct{}{}
	for _, path := range append([]string{cfg.SchemaPath}, cfg.TransformerPaths...) {
		if path == "" {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		interesting[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := watched[dir]; !ok {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("cannot watch %s: %w", dir, err)
			}
			watched[dir] = struct{}{}
		}
	}

	fmt.Print(ui.FormatNote(fmt.Sprintf("watching %s for changes, Ctrl+C to stop", cfg.SchemaPath)))

	const debounce = 200 * time.Millisecond
	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, ok := interesting[abs]; !ok {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case <-pending:
			if err := runGenerate(client); err != nil {
				fmt.Fprint(os.Stderr, ui.FormatError(err))
			}

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprint(os.Stderr, ui.FormatWarning(watchErr.Error()))
		}
	}
}
