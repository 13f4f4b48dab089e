package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/desertthunder/lix/internal/formatter"
	"github.com/desertthunder/lix/internal/models"
	"github.com/desertthunder/lix/internal/shared"
)

// ExportOpts contains configuration for bulk post archives.
type ExportOpts struct {
	Format     string  // Archive format: json, csv, markdown, txt
	OutputDir  string  // Base output directory (default: linkedin_export_{epoch})
	NumWorkers int     // Concurrent workers (default: 5)
	RateLimit  float64 // Per-post operations per second (default: 5)
	PageSize   int     // Posts per page when fetching (0 uses the service default)
	Summarize  bool    // Attach Gemini summaries to per-post archive files
}

// postExportJob carries one post through the worker pool.
type postExportJob struct {
	Index int
	Post  models.Post
}

// PostExportResult records the outcome of archiving a single post.
type PostExportResult struct {
	PostID  string   `json:"post_id"`
	Preview string   `json:"preview"`
	Files   []string `json:"files"`
	Summary string   `json:"summary,omitempty"`
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
}

// ArchiveResult contains all data from an export run.
type ArchiveResult struct {
	TotalPosts      int                `json:"total_posts"`
	Exported        int                `json:"exported"`
	Failed          int                `json:"failed"`
	Format          string             `json:"format"`
	OutputDirectory string             `json:"output_directory"`
	Files           []string           `json:"files,omitempty"` // Combined archive files (CSV, text)
	Results         []PostExportResult `json:"results"`
	ManifestPath    string             `json:"-"`
}

// postArchiveEntry is the JSON shape written for each post in json format.
type postArchiveEntry struct {
	models.Post
	Summary string `json:"summary,omitempty"`
}

// Export fetches every post for the member and writes an archive to disk.
//
// This method implements a worker pool pattern to archive posts concurrently.
// It respects rate limits on per-post work (Gemini summaries), handles partial
// failures gracefully, and generates a manifest file summarizing the results.
func (e *PostEngine) Export(
	ctx context.Context,
	progress chan<- ProgressUpdate,
	profile *models.Profile,
	accessToken string,
	opts ExportOpts,
) (*ArchiveResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: LinkedIn service not initialized", shared.ErrServiceUnavailable)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: profile is required", shared.ErrInvalidInput)
	}

	if opts.Format == "" {
		opts.Format = "json"
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("linkedin_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	e.sendProgress(progress, fetchingPostsUpdate(1, 1))

	posts, err := e.service.FetchAllPosts(ctx, accessToken, profile.URN(), opts.PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}

	e.sendProgress(progress, foundPostsUpdate(1, 1, len(posts)))

	export := &models.PostExport{
		Profile:    *profile,
		Posts:      posts,
		ExportedAt: time.Now(),
	}

	result := &ArchiveResult{
		TotalPosts:      len(posts),
		Format:          opts.Format,
		OutputDirectory: opts.OutputDir,
		Results:         make([]PostExportResult, 0, len(posts)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan postExportJob, len(posts))
	results := make(chan PostExportResult, len(posts))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.archiveWorker(ctx, &wg, limiter, jobs, results, opts)
	}

	for i, post := range posts {
		e.sendProgress(progress, exportingPostUpdate(i+1, len(posts), post))
		jobs <- postExportJob{Index: i, Post: post}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.Exported++
			e.sendProgress(progress, exportCompletedUpdate(completed, len(posts), res.Preview, len(res.Files)))
		} else {
			result.Failed++
			e.sendProgress(progress, exportFailedUpdate(completed, len(posts), res.Preview, res.Error))
		}
	}

	e.sendProgress(progress, writingArchiveUpdate(1, 1, opts.Format))

	switch opts.Format {
	case "csv":
		base := filepath.Join(opts.OutputDir, profile.ID)
		csvRes, err := formatter.WriteCSVArchive(export, base)
		if err != nil {
			return result, fmt.Errorf("failed to write CSV archive: %w", err)
		}
		result.Files = []string{csvRes.PostsFile, csvRes.ProfileFile}

	case "txt":
		path := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_posts.txt", profile.ID))
		written, err := formatter.WriteTextArchive(export, path)
		if err != nil {
			return result, fmt.Errorf("failed to write text archive: %w", err)
		}
		result.Files = []string{written}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := formatter.WriteArchiveManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	return result, nil
}

// archiveWorker is a worker goroutine that archives posts from the jobs channel.
func (e *PostEngine) archiveWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan postExportJob,
	results chan<- PostExportResult,
	opts ExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := limiter.Wait(ctx); err != nil {
			return
		}

		results <- e.archivePost(ctx, job, opts)
	}
}

// archivePost archives a single post in the requested format.
func (e *PostEngine) archivePost(ctx context.Context, job postExportJob, opts ExportOpts) PostExportResult {
	result := PostExportResult{
		PostID:  job.Post.ID,
		Preview: job.Post.Preview(48),
		Files:   []string{},
	}

	// Summaries are best effort; a failed call archives the post without one.
	if opts.Summarize && e.generator != nil {
		if summary, err := e.generator.Summarize(ctx, job.Post.Text); err == nil {
			result.Summary = summary
		}
	}

	basename := formatter.PostBasename(job.Post, job.Index)

	switch opts.Format {
	case "markdown":
		path := filepath.Join(opts.OutputDir, basename+".md")
		written, err := formatter.WritePostMarkdown(job.Post, result.Summary, path)
		if err != nil {
			result.Error = fmt.Sprintf("markdown export failed: %v", err)
			return result
		}
		result.Files = []string{written}

	case "csv", "txt":
		// Combined archive files are written after the pool drains.

	default: // json
		path := filepath.Join(opts.OutputDir, basename+".json")
		data, err := shared.MarshalJSON(postArchiveEntry{Post: job.Post, Summary: result.Summary}, true)
		if err != nil {
			result.Error = fmt.Sprintf("JSON marshal failed: %v", err)
			return result
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			result.Error = fmt.Sprintf("JSON write failed: %v", err)
			return result
		}
		result.Files = []string{path}
	}

	result.Success = true
	return result
}
