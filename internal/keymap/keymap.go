// Package keymap resolves key names to view actions. Bindings are
// remappable through a YAML file; the engine packages only ever see
// Action values.
package keymap

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lanternlab/lantern/pkg/logger"
)

// Action is an abstract command the graph view understands.
type Action string

const (
	ActionZoomIn         Action = "zoom-in"
	ActionZoomOut        Action = "zoom-out"
	ActionResetView      Action = "reset-view"
	ActionClearSelection Action = "clear-selection"
	ActionToggleFilters  Action = "toggle-filters"
	ActionToggleFocus    Action = "toggle-focus"
)

func (a Action) Valid() bool {
	switch a {
	case ActionZoomIn, ActionZoomOut, ActionResetView,
		ActionClearSelection, ActionToggleFilters, ActionToggleFocus:
		return true
	}
	return false
}

// Keymap maps key names to actions. Key names are whatever the input
// surface reports ("+", "escape", "ctrl+f"); the map treats them as
// opaque strings.
type Keymap struct {
	bindings map[string]Action
}

// Default returns the stock bindings.
func Default() *Keymap {
	return &Keymap{bindings: map[string]Action{
		"+":      ActionZoomIn,
		"=":      ActionZoomIn,
		"-":      ActionZoomOut,
		"0":      ActionResetView,
		"escape": ActionClearSelection,
		"f":      ActionToggleFilters,
		"space":  ActionToggleFocus,
	}}
}

// Lookup resolves a key to its bound action.
func (k *Keymap) Lookup(key string) (Action, bool) {
	action, ok := k.bindings[key]
	return action, ok
}

// Bindings returns a copy of the current key→action table.
func (k *Keymap) Bindings() map[string]Action {
	out := make(map[string]Action, len(k.bindings))
	for key, action := range k.bindings {
		out[key] = action
	}
	return out
}

type remapFile struct {
	Bindings map[string]string `yaml:"bindings"`
}

// Load reads a YAML remap file and applies it over the defaults. Keys
// bound to an unknown action are skipped with a warning; keys bound to
// an empty string are unbound.
func Load(r io.Reader) (*Keymap, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading keymap: %w", err)
	}

	var file remapFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing keymap: %w", err)
	}

	keymap := Default()
	for key, name := range file.Bindings {
		if name == "" {
			delete(keymap.bindings, key)
			continue
		}
		action := Action(name)
		if !action.Valid() {
			logger.Warn("[Keymap] Skipping binding to unknown action", "key", key, "action", name)
			continue
		}
		keymap.bindings[key] = action
	}
	return keymap, nil
}

// LoadFile loads bindings from path, falling back to the defaults when
// the file does not exist.
func LoadFile(path string) (*Keymap, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	defer file.Close()
	return Load(file)
}
