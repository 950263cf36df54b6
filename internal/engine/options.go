package engine

// Default configuration values, used when a host passes no options. The tab
// width matches internal/config's default; an empty autosave directory means
// SaveToTmp writes next to the open document (or into "." for an untitled
// one).
const (
	DefaultTabWidth    = 4
	DefaultAutosaveDir = ""
)

// Option configures a Facade during creation.
type Option func(*Facade)

// WithTabWidth sets the indent-column width used when parsing a loaded
// document's tree-drawing text.
func WithTabWidth(width int) Option {
	return func(f *Facade) {
		if width > 0 {
			f.tabWidth = width
		}
	}
}

// WithAutosaveDir sets the directory SaveToTmp writes into, overriding the
// default of the open document's own directory (or "." for an untitled one).
func WithAutosaveDir(dir string) Option {
	return func(f *Facade) {
		if dir != "" {
			f.autosaveDir = dir
		}
	}
}

func applyOptions(f *Facade, opts []Option) {
	for _, opt := range opts {
		opt(f)
	}
}
