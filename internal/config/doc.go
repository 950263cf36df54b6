// Package config loads and persists the small JSON document that controls
// the editing core's host-tunable knobs (autosave directory, and the tab
// width used as the indent-column width when parsing a loaded document).
// Reads tolerate missing fields via gjson's
// path lookups with defaults; writes patch the file in place via sjson so a
// hand-edited config retains whatever extra keys a host added.
package config
