package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/lix/internal/models"
)

var (
	_ list.Item = postItem{}
)

// postItem wraps [models.Post] to implement [list.Item].
type postItem struct {
	post models.Post
}

func (i postItem) FilterValue() string { return i.post.Text }
func (i postItem) Title() string       { return i.post.Preview(60) }
func (i postItem) Description() string {
	if i.post.CreatedAt.IsZero() {
		return i.post.AuthorName
	}
	return fmt.Sprintf("%s • %s", i.post.AuthorName, i.post.CreatedAt.Format("Jan 2, 2006"))
}
