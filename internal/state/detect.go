package state

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind identifies which of the three state variants a decoded JSON
// document represents.
type Kind int

const (
	KindUnknown Kind = iota
	KindWorkspace
	KindWindow
	KindTab
)

func (k Kind) String() string {
	switch k {
	case KindWorkspace:
		return "workspace"
	case KindWindow:
		return "window"
	case KindTab:
		return "tab"
	default:
		return "unknown"
	}
}

// ErrUnknownStateType is returned when a decoded document matches none of
// the workspace/window/tab shapes.
var ErrUnknownStateType = errors.New("state: unknown state type")

// ParseKind maps a state type string (as stored in current_state) to a
// Kind, rejecting anything unrecognized. Shape-based detection of a
// decoded document is DetectStateType; internal/persist validates the
// current_state type with its own StateType check, not with ParseKind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "workspace":
		return KindWorkspace, nil
	case "window":
		return KindWindow, nil
	case "tab":
		return KindTab, nil
	default:
		return KindUnknown, fmt.Errorf("%w: %q", ErrUnknownStateType, s)
	}
}

// DetectStateType inspects a decoded JSON value (as produced by
// json.Unmarshal into map[string]any) and reports which state variant it
// shapes like, the same duck-typing the source language used at runtime:
// presence of "window_states" means workspace, "tabs" means window,
// "pane_tree" means tab.
func DetectStateType(doc map[string]any) Kind {
	if _, ok := doc["window_states"]; ok {
		return KindWorkspace
	}
	if _, ok := doc["tabs"]; ok {
		return KindWindow
	}
	if _, ok := doc["pane_tree"]; ok {
		return KindTab
	}
	return KindUnknown
}

// DecodeAny decodes raw JSON into whichever of WorkspaceState, WindowState,
// or TabState its shape matches, returning ErrUnknownStateType otherwise.
// Unknown extra fields are ignored (lenient decoding, per the source's own
// ambiguity note — see DESIGN.md).
func DecodeAny(raw []byte) (kind Kind, value any, err error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return KindUnknown, nil, fmt.Errorf("state: decode: %w", err)
	}

	switch DetectStateType(doc) {
	case KindWorkspace:
		var ws WorkspaceState
		if err := json.Unmarshal(raw, &ws); err != nil {
			return KindUnknown, nil, fmt.Errorf("state: decode workspace: %w", err)
		}
		return KindWorkspace, ws, nil
	case KindWindow:
		var w WindowState
		if err := json.Unmarshal(raw, &w); err != nil {
			return KindUnknown, nil, fmt.Errorf("state: decode window: %w", err)
		}
		return KindWindow, w, nil
	case KindTab:
		var t TabState
		if err := json.Unmarshal(raw, &t); err != nil {
			return KindUnknown, nil, fmt.Errorf("state: decode tab: %w", err)
		}
		return KindTab, t, nil
	default:
		return KindUnknown, nil, ErrUnknownStateType
	}
}
