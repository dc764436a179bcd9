package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/commons-systems/resurrect/internal/events"
)

type sample struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, nil)

	in := sample{Label: "office", Count: 3}
	if err := s.Write(TypeWorkspace, "office", in); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var out sample
	ok, err := s.Read(TypeWorkspace, "office", &out)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !ok {
		t.Fatal("Read: want ok=true")
	}
	if out != in {
		t.Errorf("Read = %+v, want %+v", out, in)
	}

	want := filepath.Join(dir, "workspace", "office.json")
	if !fileExists(want) {
		t.Errorf("expected file at %s", want)
	}
}

func TestWriteSanitizesName(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, nil)

	if err := s.Write(TypeWindow, `C:\Users\foo`, sample{Label: "x"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := filepath.Join(dir, "window", "C_+Users+foo.json")
	if !fileExists(want) {
		t.Errorf("expected sanitized path %s", want)
	}
}

func TestReadMissingReturnsFalse(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, nil)

	var out sample
	ok, err := s.Read(TypeTab, "nope", &out)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if ok {
		t.Error("Read: want ok=false for missing file")
	}
}

func TestDeleteRemovesFile(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, nil)

	if err := s.Write(TypeTab, "scratch", sample{Label: "y"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Delete(TypeTab, "scratch"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var out sample
	ok, _ := s.Read(TypeTab, "scratch", &out)
	if ok {
		t.Error("expected file to be gone after Delete")
	}
}

func TestListSortedNames(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, nil)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := s.Write(TypeWorkspace, name, sample{Label: name}); err != nil {
			t.Fatalf("Write(%s): %v", name, err)
		}
	}

	names, err := s.List(TypeWorkspace)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("List = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestListEmptyDirReturnsNil(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, nil)

	names, err := s.List(TypeWorkspace)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if names != nil {
		t.Errorf("List on empty dir = %v, want nil", names)
	}
}

func TestCurrentStateRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, nil)

	if err := s.WriteCurrentState("office", TypeWorkspace); err != nil {
		t.Fatalf("WriteCurrentState: %v", err)
	}

	name, kind, err := s.ReadCurrentState()
	if err != nil {
		t.Fatalf("ReadCurrentState: %v", err)
	}
	if name != "office" || kind != TypeWorkspace {
		t.Errorf("ReadCurrentState = (%q, %q), want (office, workspace)", name, kind)
	}
}

func TestCurrentStateCorruptType(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, nil)

	path := filepath.Join(dir, currentStateFile)
	if err := writeFileAtomic(path, []byte("office\nbogus\n")); err != nil {
		t.Fatalf("setup writeFileAtomic: %v", err)
	}

	_, _, err := s.ReadCurrentState()
	if err != ErrCorruptCurrentState {
		t.Errorf("ReadCurrentState error = %v, want ErrCorruptCurrentState", err)
	}
}

func TestWritePublishesEvents(t *testing.T) {
	dir := t.TempDir()
	bus := events.NewBus()
	s := NewStore(dir, bus)

	var seen []string
	bus.Subscribe(events.WriteStateStart, func(e events.Event) { seen = append(seen, e.Name) })
	bus.Subscribe(events.WriteStateFinished, func(e events.Event) { seen = append(seen, e.Name) })

	if err := s.Write(TypeWorkspace, "office", sample{Label: "x"}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if len(seen) != 2 || seen[0] != events.WriteStateStart || seen[1] != events.WriteStateFinished {
		t.Errorf("events seen = %v, want [start finished]", seen)
	}
}

func TestReadPublishesEvents(t *testing.T) {
	dir := t.TempDir()
	bus := events.NewBus()
	s := NewStore(dir, bus)

	if err := s.Write(TypeWorkspace, "office", sample{Label: "x"}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var seen []string
	bus.Subscribe(events.LoadStateStart, func(e events.Event) { seen = append(seen, e.Name) })
	bus.Subscribe(events.LoadStateFinished, func(e events.Event) { seen = append(seen, e.Name) })

	var out sample
	if ok, err := s.Read(TypeWorkspace, "office", &out); err != nil || !ok {
		t.Fatalf("Read: ok=%v err=%v", ok, err)
	}

	if len(seen) != 2 || seen[0] != events.LoadStateStart || seen[1] != events.LoadStateFinished {
		t.Errorf("events seen = %v, want [start finished]", seen)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
