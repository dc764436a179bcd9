// Package config defines the single explicit configuration struct
// threaded through the orchestrator and CLI, replacing the source
// plugin's module-level globals (save_state_dir, max_nlines,
// save_in_progress) per the Design Notes.
package config

import (
	"time"

	"github.com/commons-systems/resurrect/internal/orchestrator"
	"github.com/commons-systems/resurrect/internal/panetree"
)

// Config is the configuration surface enumerated in spec §6.
type Config struct {
	// StateDir is the base directory for JSON artifacts; subdirectories
	// are created lazily by internal/persist.
	StateDir string

	// MaxLines bounds scrollback rows captured per pane.
	MaxLines int

	// Interval is the periodic-save cadence.
	Interval time.Duration

	SaveWorkspaces bool
	SaveWindows    bool
	SaveTabs       bool

	SpawnInWorkspace bool
	ResizeWindow     bool
	RestoreText      bool
	CloseOpenTabs    bool
	CloseOpenPanes   bool
	SizeMode         panetree.SizeMode
}

// Default returns the configuration's spec-recommended defaults: a
// 2000-line scrollback cap and a 15-minute periodic-save interval,
// saving every level, restoring with relative split sizes and text
// reinjection.
func Default(stateDir string) Config {
	return Config{
		StateDir:         stateDir,
		MaxLines:         2000,
		Interval:         15 * time.Minute,
		SaveWorkspaces:   true,
		SaveWindows:      true,
		SaveTabs:         true,
		SpawnInWorkspace: true,
		RestoreText:      true,
		SizeMode:         panetree.SizeRelative,
	}
}

// PeriodicSaveOptions projects the save-level flags onto the
// orchestrator's own options type.
func (c Config) PeriodicSaveOptions() orchestrator.PeriodicSaveOptions {
	return orchestrator.PeriodicSaveOptions{
		SaveWorkspace: c.SaveWorkspaces,
		SaveWindows:   c.SaveWindows,
		SaveTabs:      c.SaveTabs,
	}
}

// RestoreOptions projects the restore-related flags onto the
// orchestrator's own options type.
func (c Config) RestoreOptions() orchestrator.RestoreOptions {
	return orchestrator.RestoreOptions{
		SpawnInWorkspace: c.SpawnInWorkspace,
		ResizeWindow:     c.ResizeWindow,
		CloseOpenTabs:    c.CloseOpenTabs,
		CloseOpenPanes:   c.CloseOpenPanes,
		SizeMode:         c.SizeMode,
		RestoreText:      c.RestoreText,
	}
}
