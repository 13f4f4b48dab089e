package ui

import (
	"github.com/desertthunder/lix/internal/models"
	"github.com/desertthunder/lix/internal/tasks"
)

// postsFetchedMsg delivers the member's posts after a feed fetch.
type postsFetchedMsg struct {
	posts []models.Post
	err   error
}

// draftReadyMsg delivers generated post content for the compose view.
type draftReadyMsg struct {
	draft *tasks.DraftResult
	err   error
}

// progressUpdateMsg wraps engine progress for the publish view.
type progressUpdateMsg tasks.ProgressUpdate

// publishCompleteMsg signals that the publish goroutine has finished.
type publishCompleteMsg struct {
	result *tasks.PublishResult
	err    error
}
