// Package models defines provider-neutral view models for the lix post manager.
//
// The types here are lightweight structs shared by the web handlers, CLI
// output, exporters, and the TUI:
//   - [Profile] : The authenticated member's identity from the profile endpoint
//   - [Post] : A single feed share with its commentary text and timestamp
//   - [PostExport] : A profile with its fetched posts, bundled for archival
//
// Nothing in this package talks to the network or the database. Services
// map provider wire formats into these types; stores persist their own
// records keyed by [Profile.ID].
package models
