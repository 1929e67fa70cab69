package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"deviceprofile/log"
)

// fileWatcher calls onChange when any of a set of files is written or
// replaced. Editors often save with several events in a row, so changes are
// debounced.
type fileWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
	onChange func()

	mu      sync.Mutex
	pending time.Time
	dirty   bool
}

// newFileWatcher watches the directories of paths. Watching the directory
// instead of the file survives editors that save by rename.
func newFileWatcher(paths []string, debounce time.Duration, onChange func()) (*fileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	fw := &fileWatcher{
		watcher:  w,
		files:    make(map[string]bool),
		debounce: debounce,
		onChange: onChange,
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			w.Close()
			return nil, err
		}
		fw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		log.InfoLog.Printf("watching directory: %s", dir)
	}
	return fw, nil
}

// Run processes events until ctx is done or the watcher is closed.
func (fw *fileWatcher) Run(ctx context.Context) error {
	defer fw.watcher.Close()

	ticker := time.NewTicker(max(fw.debounce/4, time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			fw.handleEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			log.ErrorLog.Printf("watcher error: %v", err)

		case <-ticker.C:
			fw.flush()
		}
	}
}

func (fw *fileWatcher) handleEvent(event fsnotify.Event) {
	abs, err := filepath.Abs(event.Name)
	if err != nil || !fw.files[abs] {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	log.Debug("watch: %s %s", event.Op, abs)

	fw.mu.Lock()
	fw.pending = time.Now()
	fw.dirty = true
	fw.mu.Unlock()
}

// flush fires onChange once the files have been quiet for the debounce
// period.
func (fw *fileWatcher) flush() {
	fw.mu.Lock()
	ready := fw.dirty && time.Since(fw.pending) >= fw.debounce
	if ready {
		fw.dirty = false
	}
	fw.mu.Unlock()
	if ready {
		fw.onChange()
	}
}

func newWatchCmd(o *options) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the profile whenever the grid or devices file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, o)
			if err != nil {
				return err
			}
			var paths []string
			for _, p := range []string{e.cfg.GridFile, e.cfg.DevicesFile} {
				if p != "" {
					paths = append(paths, p)
				}
			}
			if len(paths) == 0 {
				return fmt.Errorf("nothing to watch: set --grid-file or --devices-file")
			}

			out := cmd.OutOrStdout()
			rebuild := func() {
				if err := rebuildOnce(cmd, o, out); err != nil {
					fmt.Fprintf(out, "# build failed: %v\n", err)
				}
			}

			fw, err := newFileWatcher(paths, debounce, rebuild)
			if err != nil {
				return err
			}
			rebuild()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return fw.Run(ctx)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "Quiet period before a rebuild")
	return cmd
}

// rebuildOnce reloads the files and prints a fresh dump.
func rebuildOnce(cmd *cobra.Command, o *options, out io.Writer) error {
	e, err := loadEnv(cmd, o)
	if err != nil {
		return err
	}
	p, err := e.build(o)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "# rebuilt at %s\n", time.Now().Format(time.TimeOnly))
	return writeProfile(out, p, false, true, false)
}
