/*
Copyright © 2025 Halcyon Authors
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/halcyonhq/halcyon/internal/ui"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live-update recommendations as history changes",
	Long: `Watch the data directory and re-render the current recommendations
whenever the observation history changes, for example when 'halcyon mood'
or 'halcyon done' runs in another terminal. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	rootDir := GetConfig().Project.RootDir
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", rootDir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(rootDir); err != nil {
		return fmt.Errorf("watch %s: %w", rootDir, err)
	}

	historyName := filepath.Base(GetHistoryFilePath())

	renderNow := func() {
		engine, hs, err := newEngine()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			return
		}
		defer func() { _ = hs.Close() }()
		cmd.Println()
		cmd.Print(ui.RenderRecommendations(engine.CurrentRecommendations(), time.Now()))
	}

	cmd.Printf("%s Watching %s (Ctrl-C to stop)\n", ui.StylePrimary.Render("◉"), rootDir)
	renderNow()

	// Writers replace the file via tmp+rename, so a single save produces a
	// burst of events. Debounce before re-rendering.
	var mu sync.Mutex
	var timer *time.Timer
	scheduleRender := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(500*time.Millisecond, renderNow)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != historyName {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if isVerbose() {
				cmd.Printf("%s %s\n", ui.StyleSubtle.Render("change:"), event.Op)
			}
			scheduleRender()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Warning: watch error: %v\n", err)

		case <-sigCh:
			cmd.Println("\nStopped watching.")
			return nil
		}
	}
}
