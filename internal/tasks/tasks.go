package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/lix/internal/models"
	"github.com/desertthunder/lix/internal/services"
	"github.com/desertthunder/lix/internal/shared"
)

// enhancePrompt asks the generator to rework member-written content before publishing.
const enhancePrompt = "Make this post more engaging for LinkedIn: "

// DraftResult contains the outcome of an AI draft generation.
type DraftResult struct {
	Prompt string // Prompt the member supplied
	Text   string // Generated post content
}

// PublishResult contains the outcome of a publish operation.
type PublishResult struct {
	ShareID  string // LinkedIn share URN returned by the API
	Text     string // Content that was actually published
	Enhanced bool   // Whether the generator reworked the content
}

// FeedEngine defines operations for publishing and archiving LinkedIn posts.
type FeedEngine interface {
	// Draft generates post content from a prompt using the configured generator.
	Draft(ctx context.Context, progress chan<- ProgressUpdate, prompt string) (*DraftResult, error)

	// Publish creates a LinkedIn post, optionally reworking the content with the generator first.
	Publish(ctx context.Context, progress chan<- ProgressUpdate, accessToken, authorURN, text string, enhance bool) (*PublishResult, error)

	// Export fetches every post for the member and writes an archive to disk.
	Export(ctx context.Context, progress chan<- ProgressUpdate, profile *models.Profile, accessToken string, opts ExportOpts) (*ArchiveResult, error)
}

// PostEngine implements FeedEngine for LinkedIn post operations.
// The generator is optional; draft and enhancement paths require it.
type PostEngine struct {
	service   services.Service
	generator services.Generator
}

// NewPostEngine creates a new PostEngine with the provided service and optional generator.
func NewPostEngine(service services.Service, generator services.Generator) *PostEngine {
	return &PostEngine{
		service:   service,
		generator: generator,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *PostEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Draft generates post content from a prompt.
func (e *PostEngine) Draft(ctx context.Context, progress chan<- ProgressUpdate, prompt string) (*DraftResult, error) {
	if e.generator == nil {
		return nil, fmt.Errorf("%w: Gemini generator not configured", shared.ErrServiceUnavailable)
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt is empty", shared.ErrInvalidInput)
	}

	e.sendProgress(progress, generatingDraftUpdate(1, 1))

	text, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, draftReadyUpdate(1, 1, text))

	return &DraftResult{Prompt: prompt, Text: text}, nil
}

// Publish creates a LinkedIn post.
//
// When enhance is set and a generator is configured, the content is reworked
// before publishing; enhancement failures fall back to the original text.
func (e *PostEngine) Publish(ctx context.Context, progress chan<- ProgressUpdate, accessToken, authorURN, text string, enhance bool) (*PublishResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: LinkedIn service not initialized", shared.ErrServiceUnavailable)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: post content is empty", shared.ErrInvalidInput)
	}

	result := &PublishResult{Text: text}
	steps := 1
	if enhance && e.generator != nil {
		steps = 2
	}

	if enhance && e.generator != nil {
		e.sendProgress(progress, generatingDraftUpdate(1, steps))

		enhanced, err := e.generator.Generate(ctx, enhancePrompt+text)
		if err == nil && strings.TrimSpace(enhanced) != "" {
			result.Text = strings.TrimSpace(enhanced)
			result.Enhanced = true
		}
	}

	e.sendProgress(progress, publishingUpdate(steps, steps))

	shareID, err := e.service.CreatePost(ctx, accessToken, authorURN, result.Text)
	if err != nil {
		return nil, err
	}

	result.ShareID = shareID
	e.sendProgress(progress, publishedUpdate(steps, steps, shareID))

	return result, nil
}
