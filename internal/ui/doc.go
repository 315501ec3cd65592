// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for the liked-videos migration:
//  1. [CollectView] : Watch the scroll-collection loop discover videos
//  2. [VideoListView] : Review the collected set before anything is mutated
//  3. [ConfirmView] : Confirm backup (and, when enabled, the destructive unlike pass)
//  4. [RunView] : Monitor the live append-only progress log
//  5. [ResultView] : Display the final counts and any failures
//
// The [Model] implements bubbletea's standard Init/Update/View pattern.
// Progress updates flow through a channel from the MigrationEngine, providing
// non-blocking status reporting during long-running loops.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
