// Package config manages roadplan configuration and filesystem paths.
//
// Configuration includes the editor settings consumed by the planner, the
// logging and preview options, and the locations of roadplan data
// directories. The default root is ~/.roadplan/ containing plans/, the
// committed stroke store and the config file; it can be moved with the
// ROADPLAN_ROOT environment variable.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the filesystem paths used by roadplan.
type Paths struct {
	// Root is the base directory for all roadplan data (default: ~/.roadplan)
	Root string

	// Plans is the directory containing plan session files
	Plans string

	// Built is the path to the committed stroke store
	Built string

	// Config is the path to the global config file
	Config string
}

// DefaultPaths returns the default paths for roadplan.
// Paths can be overridden with environment variables:
// - ROADPLAN_ROOT: Override the root directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("ROADPLAN_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".roadplan")
	}
	return PathsAt(root), nil
}

// PathsAt lays out the roadplan paths under root.
func PathsAt(root string) *Paths {
	return &Paths{
		Root:   root,
		Plans:  filepath.Join(root, "plans"),
		Built:  filepath.Join(root, "built.json"),
		Config: filepath.Join(root, "config.yaml"),
	}
}

// PlanFile returns the session file for the named plan.
func (p *Paths) PlanFile(name string) string {
	return filepath.Join(p.Plans, name+".json")
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.Root,
		p.Plans,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
