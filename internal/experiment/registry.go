package experiment

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/stickpoint/internal/config"
	"github.com/san-kum/stickpoint/internal/metrics"
	"github.com/san-kum/stickpoint/internal/sim"
)

// ResolveScene accepts a preset name or a path to a YAML scene file.
func ResolveScene(name string) (*config.Scene, error) {
	if isSceneFile(name) {
		return config.Load(name)
	}
	return config.MustPreset(name)
}

func isSceneFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".yaml" || ext == ".yml" {
		return true
	}
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}

func DefaultMetrics() []sim.Metric {
	return metrics.Defaults()
}
