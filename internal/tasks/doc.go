// Package tasks orchestrates LinkedIn feed operations with real-time progress reporting.
//
// # Core Operations
//
// The [FeedEngine] interface defines three operations:
//
//  1. [FeedEngine.Draft] : Generate post text with Gemini
//     - Sends the member's prompt to the configured model
//     - Returns the generated draft for review before publishing
//
//  2. [FeedEngine.Publish] : Create a post on LinkedIn
//     - Optionally rewrites the text with Gemini first (falls back to the
//       original text when generation fails)
//     - Publishes via the Posts API and returns the new share ID
//
//  3. [FeedEngine.Export] : Archive every post to disk
//     - Fetches the member's full post history page by page
//     - Archives posts concurrently through a bounded worker pool
//     - Writes a manifest file summarizing the run
//
// # Progress Reporting
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Rate Limiting
//
// Export workers share a [rate.Limiter] so per-post work (Gemini summaries,
// file writes) never bursts past the configured operations per second.
//
// # Implementation
//
// [PostEngine] implements [FeedEngine] with dependencies on:
//   - [services.Service] : LinkedIn API client
//   - [services.Generator] : Optional Gemini client for drafts and summaries
package tasks
