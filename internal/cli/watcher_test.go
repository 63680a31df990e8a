package cli

import (
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"

	"github.com/delegen/delegen/internal/utils"
)

func TestWatcherRelevant(t *testing.T) {
	watcher := NewWatcher(NewGenerator(false), utils.NewQuietDiagnostics())

	tests := []struct {
		name     string
		event    fsnotify.Event
		expected bool
	}{
		{
			name:     "source write",
			event:    fsnotify.Event{Name: filepath.Join("pkg", "proxy.go"), Op: fsnotify.Write},
			expected: true,
		},
		{
			name:     "source created",
			event:    fsnotify.Event{Name: "proxy.go", Op: fsnotify.Create},
			expected: true,
		},
		{
			name:     "source removed",
			event:    fsnotify.Event{Name: "proxy.go", Op: fsnotify.Remove},
			expected: true,
		},
		{
			name:     "generated file ignored to break the feedback loop",
			event:    fsnotify.Event{Name: filepath.Join("pkg", "autogen_proxy_delegate.go"), Op: fsnotify.Write},
			expected: false,
		},
		{
			name:     "non-Go file",
			event:    fsnotify.Event{Name: "README.md", Op: fsnotify.Write},
			expected: false,
		},
		{
			name:     "permission-only change",
			event:    fsnotify.Event{Name: "proxy.go", Op: fsnotify.Chmod},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, watcher.relevant(tt.event))
		})
	}
}

func TestWatcherStopsCleanly(t *testing.T) {
	moduleDir := t.TempDir()
	writeFile(t, filepath.Join(moduleDir, "go.mod"), "module example.com/fixture\n\ngo 1.21\n")
	writeFile(t, filepath.Join(moduleDir, "proxy.go"), proxySource)

	diagnostics := utils.NewQuietDiagnostics()
	watcher := NewWatcher(NewGeneratorWithDiagnostics(false, diagnostics), diagnostics)

	stop := make(chan struct{})
	close(stop)

	config := Config{Directories: []string{moduleDir}, ModuleName: "example.com/fixture", Watch: true}
	err := watcher.Watch(config, stop)
	assert.NoError(t, err)
}
