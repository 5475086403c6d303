package tasks

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/dkoosis/qakit/pkg/pipeline"
)

// watchSuffixes are the file types whose changes trigger a docs rebuild.
var watchSuffixes = []string{".py", ".rst", ".md", ".txt"}

const (
	debounceWindow = 500 * time.Millisecond
	debounceTick   = 100 * time.Millisecond
)

// Watch rebuilds the local HTML docs whenever the docs source or the
// Python sources settle after a change. It blocks until ctx is done.
func Watch(ctx context.Context, r *pipeline.Runner, cfg Config) error {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dirs := append([]string{cfg.Docs.Source}, cfg.Sources...)
	watching := 0
	for _, dir := range dirs {
		abs := cfg.Abs(dir)
		if _, err := os.Stat(abs); err != nil {
			log.Warn("skipping missing watch dir", zap.String("dir", abs))
			continue
		}
		if err := watcher.Add(abs); err != nil {
			log.Warn("watch failed", zap.String("dir", abs), zap.Error(err))
			continue
		}
		watching++
		log.Info("watching", zap.String("dir", abs))
	}
	if watching == 0 {
		return fmt.Errorf("nothing to watch under %s", cfg.Root)
	}

	// Batch rapid saves; editors fire several events per write.
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounceTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watchRelevant(event) {
				continue
			}
			pending[event.Name] = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))

		case <-ticker.C:
			if !settled(pending) {
				continue
			}
			clear(pending)

			steps, _ := DocsSteps(cfg, []string{"html"})
			if _, err := r.Run(ctx, steps...); err != nil {
				log.Warn("rebuild failed", zap.Error(err))
			}
		}
	}
}

func watchRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	for _, suffix := range watchSuffixes {
		if strings.HasSuffix(event.Name, suffix) {
			return true
		}
	}
	return false
}

// settled reports whether there are pending changes and all of them are
// older than the debounce window.
func settled(pending map[string]time.Time) bool {
	if len(pending) == 0 {
		return false
	}
	now := time.Now()
	for _, at := range pending {
		if now.Sub(at) < debounceWindow {
			return false
		}
	}
	return true
}
