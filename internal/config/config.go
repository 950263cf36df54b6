package config

import (
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Defaults for fields a config file omits.
const (
	DefaultTabWidth    = 4
	DefaultAutosaveDir = "."
)

// Config holds the editing core's host-tunable knobs.
type Config struct {
	AutosaveDir string
	TabWidth    int
}

// Default returns a Config populated with package defaults.
func Default() Config {
	return Config{AutosaveDir: DefaultAutosaveDir, TabWidth: DefaultTabWidth}
}

// Load reads and parses the JSON document at path, falling back to
// package defaults for any field that is absent or of the wrong type.
// A missing file is not an error: it yields Default().
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if !gjson.ValidBytes(data) {
		return cfg, nil
	}

	root := gjson.ParseBytes(data)
	if v := root.Get("autosave_dir"); v.Type == gjson.String {
		cfg.AutosaveDir = v.String()
	}
	if v := root.Get("tab_width"); v.Type == gjson.Number {
		cfg.TabWidth = int(v.Int())
	}
	return cfg, nil
}

// SaveOption configures Save's output formatting.
type SaveOption func(*saveOptions)

type saveOptions struct {
	pretty bool
}

// WithPretty pretty-prints the written JSON.
func WithPretty() SaveOption {
	return func(o *saveOptions) { o.pretty = true }
}

// Save patches path's JSON document (or creates one) with cfg's fields via
// sjson, preserving any other keys already present in the file.
func Save(path string, cfg Config, opts ...SaveOption) error {
	var o saveOptions
	for _, opt := range opts {
		opt(&o)
	}

	existing, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		existing = []byte("{}")
	}

	out, err := sjson.SetBytes(existing, "autosave_dir", cfg.AutosaveDir)
	if err != nil {
		return err
	}
	out, err = sjson.SetBytes(out, "tab_width", cfg.TabWidth)
	if err != nil {
		return err
	}

	if o.pretty {
		out = pretty.Pretty(out)
	}
	return os.WriteFile(path, out, 0o644)
}
