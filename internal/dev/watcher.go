package dev

import (
	"context"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ChangeType represents the type of file change.
type ChangeType int

const (
	ChangeGo ChangeType = iota
	ChangeStyle
	ChangeStatic
)

func (t ChangeType) String() string {
	switch t {
	case ChangeGo:
		return "go"
	case ChangeStyle:
		return "style"
	default:
		return "static"
	}
}

// Change represents a detected file change.
type Change struct {
	Path    string
	Type    ChangeType
	Removed bool
}

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Paths are the files and directories to watch.
	Paths []string

	// Ignore lists patterns to skip. A pattern without a slash matches a
	// path segment or, with glob characters, the base name. A pattern with
	// a slash matches consecutive segments or, with glob characters, the
	// whole path.
	Ignore []string

	// Interval is the polling interval.
	Interval time.Duration
}

// DefaultIgnore contains default patterns to ignore.
var DefaultIgnore = []string{
	"*_test.go",
	".git",
	"node_modules",
	"build",
	"*.bundle",
	"*.tmp",
	"*.swp",
	"*~",
}

// Watcher polls files for changes. Changes found in one poll are delivered
// together.
type Watcher struct {
	config     WatcherConfig
	onChange   func([]Change)
	mu         sync.Mutex
	running    bool
	stopCh     chan struct{}
	scanned    bool
	timestamps map[string]time.Time
}

// NewWatcher creates a new file watcher.
func NewWatcher(config WatcherConfig) *Watcher {
	if config.Interval == 0 {
		config.Interval = 100 * time.Millisecond
	}
	if config.Ignore == nil {
		config.Ignore = DefaultIgnore
	}

	return &Watcher{
		config:     config,
		timestamps: make(map[string]time.Time),
	}
}

// OnChange sets the callback for file changes.
func (w *Watcher) OnChange(fn func([]Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start records the current state of the watched paths, then polls until
// ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stop := w.stopCh
	w.mu.Unlock()

	w.Poll()

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return ctx.Err()
		case <-stop:
			return nil
		case <-ticker.C:
			changes := w.Poll()
			w.mu.Lock()
			fn := w.onChange
			w.mu.Unlock()
			if len(changes) > 0 && fn != nil {
				fn(changes)
			}
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

// IsRunning returns whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Poll scans the watched paths once and returns what changed since the
// previous scan. The first scan only records timestamps.
func (w *Watcher) Poll() []Change {
	w.mu.Lock()
	defer w.mu.Unlock()

	first := !w.scanned
	w.scanned = true
	seen := make(map[string]bool, len(w.timestamps))
	var changes []Change

	for _, root := range w.config.Paths {
		filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			rel, err := filepath.Rel(root, p)
			if err != nil {
				rel = p
			}
			if w.shouldIgnore(rel) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			seen[p] = true
			last, ok := w.timestamps[p]
			if !ok || info.ModTime().After(last) {
				w.timestamps[p] = info.ModTime()
				if !first {
					changes = append(changes, Change{Path: p, Type: classifyChange(p)})
				}
			}
			return nil
		})
	}

	for p := range w.timestamps {
		if !seen[p] {
			delete(w.timestamps, p)
			changes = append(changes, Change{Path: p, Type: classifyChange(p), Removed: true})
		}
	}
	return changes
}

// shouldIgnore checks if a path, relative to its watched root, should be
// ignored.
func (w *Watcher) shouldIgnore(fullPath string) bool {
	name := filepath.Base(fullPath)
	normalized := filepath.ToSlash(fullPath)

	for _, pattern := range w.config.Ignore {
		pattern = filepath.ToSlash(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		if name == pattern {
			return true
		}

		hasSlash := strings.Contains(pattern, "/")
		if strings.ContainsAny(pattern, "*?[") {
			target := name
			if hasSlash {
				target = normalized
			}
			if matched, _ := path.Match(pattern, target); matched {
				return true
			}
			continue
		}
		if containsSegments(splitSegments(normalized), splitSegments(pattern)) {
			return true
		}
	}
	return false
}

// containsSegments reports whether want occurs as consecutive segments of
// parts.
func containsSegments(parts, want []string) bool {
	if len(want) == 0 || len(want) > len(parts) {
		return false
	}
	for i := 0; i+len(want) <= len(parts); i++ {
		match := true
		for j := range want {
			if parts[i+j] != want[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func splitSegments(p string) []string {
	var out []string
	for _, part := range strings.Split(p, "/") {
		if part != "" && part != "." {
			out = append(out, part)
		}
	}
	return out
}

// classifyChange determines the type of change based on file extension.
func classifyChange(p string) ChangeType {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".go", ".mod", ".sum":
		return ChangeGo
	case ".css":
		return ChangeStyle
	default:
		return ChangeStatic
	}
}
