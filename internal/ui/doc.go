// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for managing LinkedIn posts:
//  1. [FeedView] : Browse the member's published posts
//  2. [ComposeView] : Write post content with optional Gemini drafting
//  3. [ConfirmView] : Confirm before publishing
//  4. [PublishView] : Monitor real-time progress updates
//  5. [ResultView] : Display the new share ID or the failure
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving typed messages from command goroutines.
// Progress updates flow through a channel from the PostEngine, providing non-blocking status reporting during publishes.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
