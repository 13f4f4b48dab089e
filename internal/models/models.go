// package models defines the data model for the lix post manager
package models

import (
	"strings"
	"time"
)

// Profile identifies the authenticated LinkedIn member.
type Profile struct {
	ID        string `json:"id"`         // ID is the provider member identifier
	FirstName string `json:"first_name"` // FirstName is the localized first name
	LastName  string `json:"last_name"`  // LastName is the localized last name
}

// FullName joins the localized name parts, skipping empty ones.
func (p Profile) FullName() string {
	parts := []string{}
	if p.FirstName != "" {
		parts = append(parts, p.FirstName)
	}
	if p.LastName != "" {
		parts = append(parts, p.LastName)
	}
	return strings.Join(parts, " ")
}

// URN returns the author URN the content API expects for this member.
func (p Profile) URN() string {
	return "urn:li:person:" + p.ID
}

// Post is a single share fetched from or published to the feed.
type Post struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// Preview returns the first line of the post text truncated to max runes.
func (p Post) Preview(max int) string {
	text := p.Text
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	runes := []rune(text)
	if max > 0 && len(runes) > max {
		return string(runes[:max-1]) + "…"
	}
	return text
}

// PostExport bundles a member's profile with their fetched posts for archival.
type PostExport struct {
	Profile    Profile   `json:"profile"`
	Posts      []Post    `json:"posts"`
	ExportedAt time.Time `json:"exported_at"`
}
