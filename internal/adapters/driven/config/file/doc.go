// Package file provides the TOML-backed configuration store.
//
// Settings live in ~/.bahith/config.toml by default. The desktop
// application writes the selected academic year into the same file, so
// a Watcher is provided to pick up external edits while the TUI runs.
package file
