// package formatter provides functions to export post archives to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/desertthunder/lix/internal/models"
	"github.com/desertthunder/lix/internal/shared"
)

// ArchiveToCSV converts a PostExport to CSV format with columns: ID, Author, Created, Text
func ArchiveToCSV(export *models.PostExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Author", "Created", "Text"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, post := range export.Posts {
		record := []string{
			post.ID,
			post.AuthorName,
			timestamp(post.CreatedAt),
			post.Text,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// PostToMarkdown converts a single post to Markdown format with an optional summary section
func PostToMarkdown(post models.Post, summary string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", post.Preview(60)))

	buf.WriteString(fmt.Sprintf("**Author**: %s\n", post.AuthorName))
	if !post.CreatedAt.IsZero() {
		buf.WriteString(fmt.Sprintf("**Posted**: %s\n", post.CreatedAt.Format("Jan 2, 2006 15:04")))
	}
	buf.WriteString("\n")

	buf.WriteString(post.Text)
	buf.WriteString("\n")

	if summary != "" {
		buf.WriteString("\n## Summary\n\n")
		buf.WriteString(summary)
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ArchiveToText converts a PostExport to plain text format
func ArchiveToText(export *models.PostExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Posts by %s (%s)\n", export.Profile.FullName(), export.Profile.URN()))
	if !export.ExportedAt.IsZero() {
		buf.WriteString(fmt.Sprintf("Exported: %s\n", export.ExportedAt.Format(time.RFC3339)))
	}
	buf.WriteString(fmt.Sprintf("Posts: %d\n\n", len(export.Posts)))

	for i, post := range export.Posts {
		if post.CreatedAt.IsZero() {
			buf.WriteString(fmt.Sprintf("%d.\n", i+1))
		} else {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, post.CreatedAt.Format("Jan 2, 2006 15:04")))
		}
		buf.WriteString(post.Text)
		buf.WriteString("\n\n")
	}

	return buf.Bytes(), nil
}

// ProfileJSON generates a JSON representation of the member profile
func ProfileJSON(profile models.Profile) ([]byte, error) {
	return shared.MarshalJSON(profile, true)
}

// PostBasename derives a filesystem-safe base name for a post's archive files.
//
// URN characters are flattened; posts without an ID fall back to their
// position in the archive.
func PostBasename(post models.Post, index int) string {
	if post.ID == "" {
		return fmt.Sprintf("post_%03d", index+1)
	}

	name := post.ID
	name = strings.ReplaceAll(name, ":", "_")
	name = strings.ReplaceAll(name, "/", "_")
	return name
}

// WritePostMarkdown writes a single post to a Markdown file at the given path.
func WritePostMarkdown(post models.Post, summary, path string) (string, error) {
	data, err := PostToMarkdown(post, summary)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return path, nil
}

// CSVArchiveResult contains the paths of files created by WriteCSVArchive
type CSVArchiveResult struct {
	PostsFile   string
	ProfileFile string
}

// WriteCSVArchive exports posts to CSV format with an accompanying profile JSON file.
//
// Defaults to the member ID as the base filename & creates {base}_posts.csv and {base}_profile.json
func WriteCSVArchive(export *models.PostExport, baseFilepath string) (*CSVArchiveResult, error) {
	if baseFilepath == "" {
		baseFilepath = export.Profile.ID
	}

	csvData, err := ArchiveToCSV(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	postsFile := baseFilepath + "_posts.csv"
	if err := os.WriteFile(postsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	profileJSON, err := ProfileJSON(export.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to generate profile JSON: %w", err)
	}

	profileFile := baseFilepath + "_profile.json"
	if err := os.WriteFile(profileFile, profileJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write profile file: %w", err)
	}

	return &CSVArchiveResult{
		PostsFile:   postsFile,
		ProfileFile: profileFile,
	}, nil
}

// WriteTextArchive exports posts to plain text format.
//
// Defaults to {memberID}_posts.txt as the filename.
func WriteTextArchive(export *models.PostExport, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_posts.txt", export.Profile.ID)
	}

	textData, err := ArchiveToText(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}

// WriteArchiveManifest writes the export manifest as pretty-printed JSON.
func WriteArchiveManifest(manifest any, path string) error {
	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return fmt.Errorf("failed to generate manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
