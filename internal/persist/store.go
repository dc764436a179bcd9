// Package persist implements the directory layout, atomic JSON
// encode/write/read/delete operations, and current_state bookkeeping
// used to save and recall captured workspaces. File handling follows
// an every-exit-path-closes-its-handle, every-step's-error-is-wrapped
// discipline, and load/save failures are reported as both an error
// event and a stderr line.
package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/commons-systems/resurrect/internal/debug"
	"github.com/commons-systems/resurrect/internal/events"
	"github.com/commons-systems/resurrect/internal/fsutil"
)

// StateType is one of the three on-disk state directories.
type StateType string

const (
	TypeWorkspace StateType = "workspace"
	TypeWindow    StateType = "window"
	TypeTab       StateType = "tab"

	currentStateFile = "current_state"
)

func (t StateType) valid() bool {
	return t == TypeWorkspace || t == TypeWindow || t == TypeTab
}

// Store is the persistence layer for one base directory.
type Store struct {
	BaseDir string
	Bus     *events.Bus
}

// NewStore returns a Store rooted at baseDir, publishing lifecycle
// events on bus (which may be nil to disable event emission).
func NewStore(baseDir string, bus *events.Bus) *Store {
	return &Store{BaseDir: baseDir, Bus: bus}
}

func (s *Store) dirFor(t StateType) string {
	return filepath.Join(s.BaseDir, string(t))
}

func (s *Store) pathFor(t StateType, sanitizedName string) string {
	return filepath.Join(s.dirFor(t), sanitizedName+".json")
}

func (s *Store) publish(name, path string) {
	if s.Bus == nil {
		return
	}
	s.Bus.Publish(events.Event{Name: name, Path: path})
}

func (s *Store) reportError(path string, err error) {
	debug.Log("PERSIST_ERROR path=%s error=%v", path, err)
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	if s.Bus != nil {
		s.Bus.Publish(events.Event{Name: events.Error, Path: path, Message: err.Error()})
	}
}

// Write encodes value as JSON and writes it to
// <BaseDir>/<stateType>/<sanitized name>.json, creating the type
// subdirectory lazily and replacing any existing file atomically via a
// temp-file-plus-rename (see DESIGN.md for why this substitutes for the
// teacher's flock-based atomicity, which has no analogue here since save
// holds no lock).
func (s *Store) Write(t StateType, rawName string, value any) error {
	if !t.valid() {
		return fmt.Errorf("persist: unknown state type %q", t)
	}
	name := SanitizeFilename(rawName)
	path := s.pathFor(t, name)

	s.publish(events.WriteStateStart, path)
	defer s.publish(events.WriteStateFinished, path)

	if err := fsutil.EnsureDir(s.dirFor(t)); err != nil {
		werr := fmt.Errorf("%w: %v", ErrIO, err)
		s.reportError(path, werr)
		return werr
	}

	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		werr := fmt.Errorf("%w: %v", ErrSerialization, err)
		s.reportError(path, werr)
		return werr
	}

	if err := writeFileAtomic(path, encoded); err != nil {
		werr := fmt.Errorf("%w: %v", ErrIO, err)
		s.reportError(path, werr)
		return werr
	}
	return nil
}

// writeFileAtomic writes data to a temp file in the same directory as
// path, then renames it into place, so a concurrent reader never
// observes a partially-written file. The temp file's handle is closed on
// every exit path, matching lockfile.go's discipline.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

// Read opens <BaseDir>/<stateType>/<sanitized name>.json and decodes it
// into out. A missing file or a parse failure reports an error event and
// returns (false, nil) — callers see absence, not an exception.
func (s *Store) Read(t StateType, rawName string, out any) (bool, error) {
	name := SanitizeFilename(rawName)
	path := s.pathFor(t, name)

	s.publish(events.LoadStateStart, path)
	defer s.publish(events.LoadStateFinished, path)

	f, err := os.Open(path)
	if err != nil {
		s.reportError(path, fmt.Errorf("%w: %v", ErrIO, err))
		return false, nil
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(out); err != nil {
		s.reportError(path, fmt.Errorf("%w: %v", ErrSerialization, err))
		return false, nil
	}
	return true, nil
}

// Delete removes <BaseDir>/<stateType>/<sanitized name>.json.
func (s *Store) Delete(t StateType, rawName string) error {
	name := SanitizeFilename(rawName)
	path := s.pathFor(t, name)

	s.publish(events.DeleteStateStart, path)
	defer s.publish(events.DeleteStateFinished, path)

	if err := os.Remove(path); err != nil {
		werr := fmt.Errorf("%w: %v", ErrIO, err)
		s.reportError(path, werr)
		return werr
	}
	return nil
}

// List returns the sanitized names (without extension) of every state
// of the given type, sorted.
func (s *Store) List(t StateType) ([]string, error) {
	entries, err := os.ReadDir(s.dirFor(t))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// ModTime reports the last-modified time of a saved state, used by
// Prune to decide which states are oldest.
func (s *Store) ModTime(t StateType, rawName string) (time.Time, error) {
	name := SanitizeFilename(rawName)
	info, err := os.Stat(s.pathFor(t, name))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return info.ModTime(), nil
}

// WriteCurrentState records name/type as the two-line current_state
// file at the base directory.
func (s *Store) WriteCurrentState(name string, t StateType) error {
	if !t.valid() {
		return fmt.Errorf("persist: unknown state type %q", t)
	}
	if err := fsutil.EnsureDir(s.BaseDir); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	content := fmt.Sprintf("%s\n%s\n", name, t)
	path := filepath.Join(s.BaseDir, currentStateFile)
	if err := writeFileAtomic(path, []byte(content)); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

// ReadCurrentState reads the two-line current_state file. An invalid
// second line (not one of workspace|window|tab) yields a pair of empty
// values and ErrCorruptCurrentState.
func (s *Store) ReadCurrentState() (name string, t StateType, err error) {
	path := filepath.Join(s.BaseDir, currentStateFile)
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return "", "", fmt.Errorf("%w: %v", ErrIO, readErr)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		return "", "", ErrCorruptCurrentState
	}
	kind := StateType(lines[1])
	if !kind.valid() {
		return "", "", ErrCorruptCurrentState
	}
	return lines[0], kind, nil
}
