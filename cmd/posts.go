package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/lix/internal/shared"
	"github.com/desertthunder/lix/internal/tasks"
	"github.com/urfave/cli/v3"
)

// PostsList fetches and prints the member's recent posts.
func (r *Runner) PostsList(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.service == nil {
		return fmt.Errorf("%w: LinkedIn service not initialized", shared.ErrServiceUnavailable)
	}

	record, err := r.resolveRecord(cmd.String("member"))
	if err != nil {
		return err
	}

	r.logger.Infof("listing posts for %v", record.MemberID)

	posts, err := r.service.FetchPosts(ctx, record.AccessToken, record.AuthorURN)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if limit > 0 && limit < len(posts) {
		posts = posts[:limit]
	}

	if useJSON {
		return r.writeJSON(posts, pretty)
	}

	if len(posts) == 0 {
		return r.writePlain("No posts found.\n")
	}

	r.writePlain("Found %d posts:\n\n", len(posts))
	for i, p := range posts {
		r.writePlain("%d. %s\n", i+1, p.Preview(72))
		r.writePlain("   ID: %s\n", p.ID)
		if !p.CreatedAt.IsZero() {
			r.writePlain("   Posted: %s\n", p.CreatedAt.Format("Jan 2, 2006 15:04"))
		}
		r.writePlain("\n")
	}

	return nil
}

// PostsCreate publishes a new post, optionally reworked by Gemini first.
func (r *Runner) PostsCreate(ctx context.Context, cmd *cli.Command) error {
	text := cmd.StringArg("text")
	enhance := cmd.Bool("enhance")

	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: post text is required", shared.ErrMissingArgument)
	}

	record, err := r.resolveRecord(cmd.String("member"))
	if err != nil {
		return err
	}

	r.logger.Info("publishing post", "member", record.MemberID, "enhance", enhance)
	r.writePlain("Publishing post...\n\n")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for update := range progressCh {
			switch update.Phase {
			case tasks.GenerateDraft:
				r.writePlain("✨ %s\n", update.Message)
			case tasks.PublishPost:
				r.writePlain("📤 %s\n", update.Message)
			}
		}
	}()

	result, err := r.engine.Publish(ctx, progressCh, record.AccessToken, record.AuthorURN, text, enhance)
	close(progressCh)
	<-drained

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Post Published!")
	r.writePlain("Share ID: %s\n", result.ShareID)
	r.writePlain("Characters: %d\n", len([]rune(result.Text)))
	if result.Enhanced {
		r.writePlain("Content was reworked by Gemini before publishing.\n")
	}

	return nil
}

// PostsDraft generates post content from a prompt without publishing it.
func (r *Runner) PostsDraft(ctx context.Context, cmd *cli.Command) error {
	prompt := cmd.StringArg("prompt")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.generator == nil {
		return fmt.Errorf("%w: Gemini is not configured, set GEMINI_API_KEY or credentials.gemini in config.toml", shared.ErrServiceUnavailable)
	}

	if strings.TrimSpace(prompt) == "" {
		return fmt.Errorf("%w: draft prompt is required", shared.ErrMissingArgument)
	}

	r.logger.Info("generating draft", "provider", r.generator.Name())

	result, err := r.engine.Draft(ctx, nil, prompt)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(result, pretty)
	}

	r.writePlainHeader("Draft")
	r.writePlain("%s\n\n", result.Text)
	r.writePlain("Publish it with: lix posts create %q\n", result.Text)

	return nil
}

// PostsExport archives the member's full post history to disk.
func (r *Runner) PostsExport(ctx context.Context, cmd *cli.Command) error {
	opts := tasks.ExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  float64(cmd.Int("rate")),
		PageSize:   cmd.Int("page-size"),
		Summarize:  cmd.Bool("summarize"),
	}

	if r.service == nil {
		return fmt.Errorf("%w: LinkedIn service not initialized", shared.ErrServiceUnavailable)
	}

	record, err := r.resolveRecord(cmd.String("member"))
	if err != nil {
		return err
	}

	profile, err := r.service.Profile(ctx, record.AccessToken)
	if err != nil {
		return fmt.Errorf("failed to fetch member profile: %w", err)
	}

	r.logger.Info("starting export", "member", record.MemberID, "format", opts.Format)
	r.writePlain("Archiving posts for %s...\n\n", profile.FullName())

	progressCh := make(chan tasks.ProgressUpdate, 50)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchPosts:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.ExportPosts:
				r.writePlain("   %s\n", update.Message)
			case tasks.WriteArchive:
				r.writePlain("\n📝 %s\n", update.Message)
			}
		}
	}()

	result, err := r.engine.Export(ctx, progressCh, profile, record.AccessToken, opts)
	close(progressCh)
	<-drained

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete!")
	r.writePlain("Posts: %d\n", result.TotalPosts)
	r.writePlain("Exported: %d\n", result.Exported)
	if result.Failed > 0 {
		r.writePlain("Failed: %d\n", result.Failed)
	}
	r.writePlain("Format: %s\n", result.Format)
	r.writePlain("Output: %s\n", result.OutputDirectory)
	r.writePlain("Manifest: %s\n", result.ManifestPath)

	if result.Failed > 0 {
		r.writePlain("\nFailed posts:\n")
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  - %s: %s\n", res.PostID, res.Error)
			}
		}
	}

	return nil
}
