package tasks

import (
	"fmt"

	"github.com/desertthunder/lix/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	GenerateDraft Phase = iota
	PublishPost
	FetchPosts
	ExportPosts
	WriteArchive
)

func (p Phase) String() string {
	switch p {
	case GenerateDraft:
		return "generate_draft"
	case PublishPost:
		return "publish_post"
	case FetchPosts:
		return "fetch_posts"
	case ExportPosts:
		return "export_posts"
	case WriteArchive:
		return "write_archive"
	default:
		return ""
	}
}

func generatingDraftUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   GenerateDraft,
		Step:    step,
		Total:   total,
		Message: "Generating draft with Gemini...",
	}
}

func draftReadyUpdate(step, total int, text string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   GenerateDraft,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Draft ready (%d characters)", len(text)),
		Data:    text,
	}
}

func publishingUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PublishPost,
		Step:    step,
		Total:   total,
		Message: "Publishing post to LinkedIn...",
	}
}

func publishedUpdate(step, total int, shareID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PublishPost,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Post published (ID: %s)", shareID),
		Data:    shareID,
	}
}

func fetchingPostsUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPosts,
		Step:    step,
		Total:   total,
		Message: "Fetching posts from LinkedIn...",
	}
}

func foundPostsUpdate(step, total, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPosts,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Found %d posts", count),
		Data:    count,
	}
}

func exportingPostUpdate(step, total int, post models.Post) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPosts,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, post.Preview(48)),
	}
}

func exportCompletedUpdate(step, total int, preview string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPosts,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, preview, filesCount),
	}
}

func exportFailedUpdate(step, total int, preview, errMsg string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPosts,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %s", step, total, preview, errMsg),
	}
}

func writingArchiveUpdate(step, total int, format string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteArchive,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Writing %s archive...", format),
	}
}
