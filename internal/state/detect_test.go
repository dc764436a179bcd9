package state

import (
	"encoding/json"
	"testing"
)

func TestDetectStateType(t *testing.T) {
	cases := []struct {
		name string
		doc  map[string]any
		want Kind
	}{
		{"workspace", map[string]any{"workspace": "w", "window_states": []any{}}, KindWorkspace},
		{"window", map[string]any{"title": "t", "tabs": []any{}}, KindWindow},
		{"tab", map[string]any{"title": "t", "pane_tree": map[string]any{}}, KindTab},
		{"unknown", map[string]any{"foo": "bar"}, KindUnknown},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := DetectStateType(c.doc); got != c.want {
				t.Errorf("DetectStateType(%v) = %v, want %v", c.doc, got, c.want)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"workspace", "window", "tab"} {
		if _, err := ParseKind(s); err != nil {
			t.Errorf("ParseKind(%q) returned error: %v", s, err)
		}
	}
	if _, err := ParseKind("bogus"); err == nil {
		t.Error("ParseKind(\"bogus\") expected error, got nil")
	}
}

func TestDecodeAnyRoundTrip(t *testing.T) {
	ws := WorkspaceState{
		Workspace: "home",
		WindowStates: []WindowState{{
			Title: "main",
			Tabs: []TabState{{
				Title: "shell",
				PaneTree: PaneNode{
					Left: 0, Top: 0, Width: 160, Height: 48,
					Cwd:  "/project",
					Text: "$ ls\nfile1.txt\n$ ",
				},
			}},
		}},
	}
	raw, err := json.Marshal(ws)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	kind, value, err := DecodeAny(raw)
	if err != nil {
		t.Fatalf("DecodeAny: %v", err)
	}
	if kind != KindWorkspace {
		t.Fatalf("kind = %v, want KindWorkspace", kind)
	}
	got, ok := value.(WorkspaceState)
	if !ok {
		t.Fatalf("value is %T, want WorkspaceState", value)
	}
	if got.Workspace != ws.Workspace {
		t.Errorf("Workspace = %q, want %q", got.Workspace, ws.Workspace)
	}
	if len(got.WindowStates) != 1 || len(got.WindowStates[0].Tabs) != 1 {
		t.Fatalf("structure mismatch: %+v", got)
	}
	gotPane := got.WindowStates[0].Tabs[0].PaneTree
	wantPane := ws.WindowStates[0].Tabs[0].PaneTree
	if gotPane.Cwd != wantPane.Cwd || gotPane.Text != wantPane.Text {
		t.Errorf("pane mismatch: got %+v, want %+v", gotPane, wantPane)
	}
}

func TestDecodeAnyUnknownShape(t *testing.T) {
	if _, _, err := DecodeAny([]byte(`{"foo":"bar"}`)); err == nil {
		t.Error("expected ErrUnknownStateType for unrecognized shape")
	}
}
