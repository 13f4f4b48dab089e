// Package services defines the [Service] interface for post feed providers and implements it for LinkedIn, plus the [Generator] interface implemented for Gemini.
//
// # Service Interface
//
// Feed providers implement a common abstraction, so handlers, tasks, and the
// CLI drive post operations without knowing the provider.
//
// # LinkedIn Implementation
//
// [LinkedInService] uses OAuth2 (authorization-code flow) for member login.
// Unlike a single-user CLI client it holds no member token: every API call
// takes the bearer token for the member it acts for, so one service instance
// serves all web sessions.
//
// Shares are created and listed through the v2 ugcPosts endpoint. Write calls
// carry the X-Restli-Protocol-Version header the API requires.
//
// # Gemini Implementation
//
// [GeminiService] posts single generateContent requests to the Gemini REST
// API. There is no streaming and no conversation state; a prompt goes in,
// the first candidate's text comes out.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrMissingConfig] : provider credentials absent, URL construction refused
//   - [shared.ErrNotAuthenticated] : API call attempted without a bearer token
//   - [shared.ErrAuthFailed] : token exchange rejected
//   - [shared.ErrAPIRequest] : HTTP request failed, includes status and body detail
//   - [shared.ErrEmptyGeneration] : Gemini returned no candidate text
//
// # API Mappings
//
// [LinkedInService] converts provider JSON into view models:
//   - /me → [models.Profile] from the localized name fields
//   - ugcPosts elements → [models.Post] with commentary text and created.time,
//     author name fixed to "You"
package services
