// Package macro exposes a narrow, read-only Lua scripting surface over the
// editor facade's rendering vocabulary (node_count, entry_line_length,
// entry_content, entry_prefix). Scripts can query the document; they cannot
// modify it or register hooks, and no general automation API is embedded. Adapted
// from the teacher's plugin/lua bridge shape, narrowed to this vocabulary:
// no LSP, debug, or task hooks, those are host concerns outside this
// package's domain.
package macro
